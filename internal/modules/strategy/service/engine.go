package service

import (
	"signal_bot/internal/indicators"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
)

// Params окна индикаторов.
type Params struct {
	RSIPeriod      int
	EMAFast        int
	EMASlow        int
	ATRPeriod      int
	VolumeMAPeriod int
}

// Engine считает снапшот индикаторов по серии свечей. Без состояния.
type Engine struct {
	p Params
}

func NewEngine(cfg *config.Config) *Engine {
	s := cfg.Strategy
	return NewEngineWithParams(Params{
		RSIPeriod:      s.RSIPeriod,
		EMAFast:        s.EMAFast,
		EMASlow:        s.EMASlow,
		ATRPeriod:      s.ATRPeriod,
		VolumeMAPeriod: s.VolumeMAPeriod,
	})
}

func NewEngineWithParams(p Params) *Engine {
	return &Engine{p: p}
}

func (e *Engine) Compute(series models.CandleSeries) models.IndicatorSnapshot {
	snap := models.IndicatorSnapshot{Points: series.Len()}

	last, ok := series.Last()
	if !ok {
		return snap
	}
	snap.LastClose = last.Close
	snap.LastVolume = last.Volume
	snap.Time = last.Time

	closes := series.Closes()
	snap.RSI = lastOf(indicators.RSI(closes, e.p.RSIPeriod))
	snap.EMAFast = lastOf(indicators.EMA(closes, e.p.EMAFast))
	snap.EMASlow = lastOf(indicators.EMA(closes, e.p.EMASlow))
	snap.ATR = lastOf(indicators.ATR(series.Highs(), series.Lows(), closes, e.p.ATRPeriod))
	snap.VolumeMA = lastOf(indicators.SMA(series.Volumes(), e.p.VolumeMAPeriod))

	return snap
}

func lastOf(series []float64) models.NullFloat {
	v, ok := indicators.Last(series)
	if !ok {
		return models.NullFloat{}
	}
	return models.Defined(v)
}
