package models

import "time"

// Side "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type Signal struct {
	Symbol     string
	Side       Side
	Price      float64
	TakeProfit float64
	StopLoss   float64
	RSI        float64
	ATR        float64
	Time       time.Time
}
