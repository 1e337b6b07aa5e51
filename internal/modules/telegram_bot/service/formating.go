package service

import (
	"fmt"

	"signal_bot/internal/models"
)

const startupText = "🤖 Bot active"

func formatStartup() string {
	return startupText
}

func formatSignal(sig models.Signal) string {
	if sig.Side == models.SideNone {
		return ""
	}

	var header, action, trend string
	switch sig.Side {
	case models.SideBuy:
		header, action, trend = "🟢🟢🟢 BUY SIGNAL", "📈 BUY", "📈 Uptrend"
	case models.SideSell:
		header, action, trend = "🔴🔴🔴 SELL SIGNAL", "📉 SELL", "📉 Downtrend"
	default:
		return ""
	}

	return fmt.Sprintf(
		"%s\n\n"+
			"%s\n"+
			"Asset: %s\n"+
			"Price: %s\n\n"+
			"📊 RSI: %s\n"+
			"%s\n"+
			"📊 Volume above average\n\n"+
			"🎯 TP: %s\n"+
			"🛑 SL: %s",
		header,
		action,
		sig.Symbol,
		px(sig.Price),
		round(sig.RSI, rsiPlaces),
		trend,
		px(sig.TakeProfit),
		px(sig.StopLoss),
	)
}
