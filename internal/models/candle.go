package models

import "time"

// Candle одна свеча OHLCV.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleSeries история свечей по одному инструменту, от старой к новой.
type CandleSeries struct {
	Symbol    string
	Timeframe string
	Candles   []Candle
}

func (s CandleSeries) Len() int { return len(s.Candles) }

// Last последняя (самая свежая) свеча.
func (s CandleSeries) Last() (Candle, bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

func (s CandleSeries) Closes() []float64 {
	return s.pick(func(c Candle) float64 { return c.Close })
}

func (s CandleSeries) Highs() []float64 {
	return s.pick(func(c Candle) float64 { return c.High })
}

func (s CandleSeries) Lows() []float64 {
	return s.pick(func(c Candle) float64 { return c.Low })
}

func (s CandleSeries) Volumes() []float64 {
	return s.pick(func(c Candle) float64 { return c.Volume })
}

func (s CandleSeries) pick(f func(Candle) float64) []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = f(c)
	}
	return out
}
