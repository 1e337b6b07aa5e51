package service

import (
	"testing"

	"signal_bot/internal/models"
)

func TestFormatSignalBuy(t *testing.T) {
	got := formatSignal(models.Signal{
		Symbol:     "BTC/USDT",
		Side:       models.SideBuy,
		Price:      50000,
		TakeProfit: 50400.123456,
		StopLoss:   49800,
		RSI:        25.1234,
	})
	want := "🟢🟢🟢 BUY SIGNAL\n\n" +
		"📈 BUY\n" +
		"Asset: BTC/USDT\n" +
		"Price: 50000\n\n" +
		"📊 RSI: 25.12\n" +
		"📈 Uptrend\n" +
		"📊 Volume above average\n\n" +
		"🎯 TP: 50400.12346\n" +
		"🛑 SL: 49800"
	if got != want {
		t.Fatalf("message:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSignalSell(t *testing.T) {
	got := formatSignal(models.Signal{
		Symbol:     "ETH/USDT",
		Side:       models.SideSell,
		Price:      2500.5,
		TakeProfit: 2480.5,
		StopLoss:   2510.5,
		RSI:        75,
	})
	want := "🔴🔴🔴 SELL SIGNAL\n\n" +
		"📉 SELL\n" +
		"Asset: ETH/USDT\n" +
		"Price: 2500.5\n\n" +
		"📊 RSI: 75\n" +
		"📉 Downtrend\n" +
		"📊 Volume above average\n\n" +
		"🎯 TP: 2480.5\n" +
		"🛑 SL: 2510.5"
	if got != want {
		t.Fatalf("message:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSignalNone(t *testing.T) {
	for _, side := range []models.Side{models.SideNone, models.Side("HOLD")} {
		if got := formatSignal(models.Signal{Symbol: "BTC/USDT", Side: side, Price: 1}); got != "" {
			t.Fatalf("message for side %q = %q", side, got)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		v      float64
		places int32
		want   string
	}{
		{0.000012345, 5, "0.00001"},
		{1.23456789, 5, "1.23457"},
		{29.999, 2, "30"},
		{100, 5, "100"},
	}
	for _, c := range cases {
		if got := round(c.v, c.places); got != c.want {
			t.Fatalf("round(%v, %d) = %q, want %q", c.v, c.places, got, c.want)
		}
	}
}
