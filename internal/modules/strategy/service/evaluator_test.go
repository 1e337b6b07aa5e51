package service

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/pkg/errors"
)

func defaultThresholds() Thresholds {
	return Thresholds{RSIBuy: 30, RSISell: 70, TakeProfitATR: 2, StopLossATR: 1, MinCandles: 200}
}

func snapshot(rsi, emaFast, emaSlow, lastVol, volMA float64) models.IndicatorSnapshot {
	return models.IndicatorSnapshot{
		Points:     250,
		RSI:        models.Defined(rsi),
		EMAFast:    models.Defined(emaFast),
		EMASlow:    models.Defined(emaSlow),
		ATR:        models.Defined(200),
		VolumeMA:   models.Defined(volMA),
		LastClose:  50000,
		LastVolume: lastVol,
	}
}

func TestEvaluateBuy(t *testing.T) {
	ev := NewEvaluatorWithThresholds(defaultThresholds())

	sig, ok, err := ev.Evaluate("BTC/USDT", snapshot(25, 110, 100, 150, 100))
	if err != nil || !ok {
		t.Fatalf("Evaluate = %v, %v; want a signal", ok, err)
	}
	if sig.Side != models.SideBuy || sig.Symbol != "BTC/USDT" {
		t.Fatalf("signal = %+v", sig)
	}
	if sig.Price != 50000 || sig.TakeProfit != 50400 || sig.StopLoss != 49800 || sig.RSI != 25 {
		t.Fatalf("levels = price %v tp %v sl %v rsi %v", sig.Price, sig.TakeProfit, sig.StopLoss, sig.RSI)
	}
}

func TestEvaluateSell(t *testing.T) {
	ev := NewEvaluatorWithThresholds(defaultThresholds())

	sig, ok, err := ev.Evaluate("ETH/USDT", snapshot(75, 90, 100, 150, 100))
	if err != nil || !ok {
		t.Fatalf("Evaluate = %v, %v; want a signal", ok, err)
	}
	if sig.Side != models.SideSell {
		t.Fatalf("side = %q", sig.Side)
	}
	if sig.TakeProfit != 49600 || sig.StopLoss != 50200 {
		t.Fatalf("tp %v sl %v, want 49600 / 50200", sig.TakeProfit, sig.StopLoss)
	}
}

func TestEvaluateNoSignal(t *testing.T) {
	ev := NewEvaluatorWithThresholds(defaultThresholds())

	cases := map[string]models.IndicatorSnapshot{
		"equal emas oversold":    snapshot(25, 100, 100, 150, 100),
		"equal emas overbought":  snapshot(75, 100, 100, 150, 100),
		"low volume":             snapshot(25, 110, 100, 90, 100),
		"volume equal to mean":   snapshot(25, 110, 100, 100, 100),
		"neutral rsi":            snapshot(50, 110, 100, 150, 100),
		"oversold in downtrend":  snapshot(25, 90, 100, 150, 100),
		"overbought in uptrend":  snapshot(75, 110, 100, 150, 100),
		"rsi exactly at buy":     snapshot(30, 110, 100, 150, 100),
		"rsi exactly at sell":    snapshot(70, 90, 100, 150, 100),
	}
	for name, snap := range cases {
		t.Run(name, func(t *testing.T) {
			sig, ok, err := ev.Evaluate("BTC/USDT", snap)
			if err != nil || ok {
				t.Fatalf("Evaluate = %+v, %v, %v; want no signal", sig, ok, err)
			}
		})
	}
}

func TestEvaluateSkipsUndefined(t *testing.T) {
	ev := NewEvaluatorWithThresholds(defaultThresholds())

	short := snapshot(25, 110, 100, 150, 100)
	short.Points = 199

	noATR := snapshot(25, 110, 100, 150, 100)
	noATR.ATR = models.NullFloat{}

	noSlow := snapshot(75, 90, 100, 150, 100)
	noSlow.EMASlow = models.NullFloat{}

	for name, snap := range map[string]models.IndicatorSnapshot{
		"short history": short,
		"atr undefined": noATR,
		"slow ema":      noSlow,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok, err := ev.Evaluate("BTC/USDT", snap)
			if ok {
				t.Fatal("signal emitted for an incomplete snapshot")
			}
			if !errors.Is(err, models.ErrIndicatorUndefined) {
				t.Fatalf("err = %v, want ErrIndicatorUndefined", err)
			}
		})
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	th := defaultThresholds()
	th.RSIBuy = 40
	th.TakeProfitATR = 3
	th.StopLossATR = 1.5
	ev := NewEvaluatorWithThresholds(th)

	sig, ok, err := ev.Evaluate("BTC/USDT", snapshot(35, 110, 100, 150, 100))
	if err != nil || !ok {
		t.Fatalf("Evaluate = %v, %v", ok, err)
	}
	if sig.TakeProfit != 50600 || sig.StopLoss != 49700 {
		t.Fatalf("tp %v sl %v", sig.TakeProfit, sig.StopLoss)
	}
}
