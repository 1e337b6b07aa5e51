package indicators

import "math"

// TrueRange max(high-low, |high-prevClose|, |low-prevClose|).
// Для первой свечи предыдущего закрытия нет, берём high-low.
func TrueRange(highs, lows, closes []float64) []float64 {
	n := minLen(highs, lows, closes)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		hl := highs[i] - lows[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR средний истинный диапазон: первое значение простое среднее period
// true range, дальше сглаживание Уайлдера. Определён с индекса period-1.
func ATR(highs, lows, closes []float64, period int) []float64 {
	tr := TrueRange(highs, lows, closes)
	out := nanSeries(len(tr))
	if period <= 0 || len(tr) < period {
		return out
	}

	n := float64(period)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	atr := sum / n
	out[period-1] = atr

	for i := period; i < len(tr); i++ {
		atr = (atr*(n-1) + tr[i]) / n
		out[i] = atr
	}
	return out
}

func minLen(series ...[]float64) int {
	n := -1
	for _, s := range series {
		if n < 0 || len(s) < n {
			n = len(s)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
