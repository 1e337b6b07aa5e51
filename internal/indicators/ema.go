package indicators

// EMA экспоненциальная средняя с alpha = 2/(period+1).
// Стартует с первого значения, считается готовой после period точек.
func EMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	alpha := 2.0 / (float64(period) + 1)
	value := values[0]
	for i, v := range values {
		if i > 0 {
			value = alpha*v + (1-alpha)*value
		}
		if i >= period-1 {
			out[i] = value
		}
	}
	return out
}
