package indicators

// RSI индекс относительной силы по Уайлдеру.
// Первые средние прирост/падение простые по period изменениям, дальше
// сглаживание avg = (avg*(n-1) + x) / n. Нужно минимум period+1 точек.
func RSI(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	n := float64(period)
	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		gain, loss := 0.0, 0.0
		if change := closes[i] - closes[i-1]; change > 0 {
			gain = change
		} else {
			loss = -change
		}

		switch {
		case i < period:
			avgGain += gain
			avgLoss += loss
			continue
		case i == period:
			avgGain = (avgGain + gain) / n
			avgLoss = (avgLoss + loss) / n
		default:
			avgGain = (avgGain*(n-1) + gain) / n
			avgLoss = (avgLoss*(n-1) + loss) / n
		}
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			// плоский ряд
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
