package models

import "time"

// NullFloat значение индикатора, которое может быть не определено
// (окно длиннее истории). Та же форма, что у sql.NullFloat64.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

func Defined(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// IndicatorSnapshot значения индикаторов на последней свече.
type IndicatorSnapshot struct {
	Points int // сколько свечей было на входе

	RSI      NullFloat
	EMAFast  NullFloat
	EMASlow  NullFloat
	ATR      NullFloat
	VolumeMA NullFloat

	LastClose  float64
	LastVolume float64
	Time       time.Time
}
