package service

import "github.com/shopspring/decimal"

const (
	pricePlaces = 5
	rsiPlaces   = 2
)

// round округление для вывода, без хвостовых нулей: 50400.00000 -> "50400".
func round(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func px(v float64) string { return round(v, pricePlaces) }
