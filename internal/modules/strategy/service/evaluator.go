package service

import (
	"strings"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/pkg/errors"
)

// Thresholds пороги правила и множители TP/SL.
type Thresholds struct {
	RSIBuy        float64
	RSISell       float64
	TakeProfitATR float64
	StopLossATR   float64
	MinCandles    int
}

// Evaluator правило RSI + тренд EMA + фильтр объёма.
type Evaluator struct {
	th Thresholds
}

func NewEvaluator(cfg *config.Config) *Evaluator {
	s := cfg.Strategy
	return NewEvaluatorWithThresholds(Thresholds{
		RSIBuy:        s.RSIBuy,
		RSISell:       s.RSISell,
		TakeProfitATR: s.TakeProfitATR,
		StopLossATR:   s.StopLossATR,
		MinCandles:    s.MinCandles,
	})
}

func NewEvaluatorWithThresholds(th Thresholds) *Evaluator {
	return &Evaluator{th: th}
}

// Evaluate ok==true когда есть сигнал. Ошибка models.ErrIndicatorUndefined
// значит, что символ пропущен: мало свечей или какой-то индикатор не определён.
func (e *Evaluator) Evaluate(symbol string, snap models.IndicatorSnapshot) (models.Signal, bool, error) {
	if snap.Points < e.th.MinCandles {
		return models.Signal{}, false, errors.Wrapf(models.ErrIndicatorUndefined,
			"%s: %d candles, need %d", symbol, snap.Points, e.th.MinCandles)
	}
	if missing := undefinedFields(snap); len(missing) > 0 {
		return models.Signal{}, false, errors.Wrapf(models.ErrIndicatorUndefined,
			"%s: %s", symbol, strings.Join(missing, ","))
	}

	rsi := snap.RSI.Float64
	emaFast, emaSlow := snap.EMAFast.Float64, snap.EMASlow.Float64
	atr := snap.ATR.Float64
	price := snap.LastClose
	volumeUp := snap.LastVolume > snap.VolumeMA.Float64

	sig := models.Signal{
		Symbol: symbol,
		Price:  price,
		RSI:    rsi,
		ATR:    atr,
		Time:   snap.Time,
	}

	// порядок важен: первое совпадение выигрывает
	switch {
	case rsi < e.th.RSIBuy && emaFast > emaSlow && volumeUp:
		sig.Side = models.SideBuy
		sig.TakeProfit = price + atr*e.th.TakeProfitATR
		sig.StopLoss = price - atr*e.th.StopLossATR
	case rsi > e.th.RSISell && emaFast < emaSlow && volumeUp:
		sig.Side = models.SideSell
		sig.TakeProfit = price - atr*e.th.TakeProfitATR
		sig.StopLoss = price + atr*e.th.StopLossATR
	default:
		return models.Signal{}, false, nil
	}
	return sig, true, nil
}

func undefinedFields(snap models.IndicatorSnapshot) []string {
	var missing []string
	for _, f := range []struct {
		name string
		v    models.NullFloat
	}{
		{"rsi", snap.RSI},
		{"ema_fast", snap.EMAFast},
		{"ema_slow", snap.EMASlow},
		{"atr", snap.ATR},
		{"volume_ma", snap.VolumeMA},
	} {
		if !f.v.Valid {
			missing = append(missing, f.name)
		}
	}
	return missing
}
