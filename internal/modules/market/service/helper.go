package service

import (
	"signal_bot/internal/helper"

	"github.com/pkg/errors"
)

// bybitInterval "1m" -> "1", "1h" -> "60", "1d" -> "D".
func bybitInterval(tf string) (string, error) {
	switch helper.NormTF(tf) {
	case "1m":
		return "1", nil
	case "3m":
		return "3", nil
	case "5m":
		return "5", nil
	case "15m":
		return "15", nil
	case "30m":
		return "30", nil
	case "1h":
		return "60", nil
	case "2h":
		return "120", nil
	case "4h":
		return "240", nil
	case "6h":
		return "360", nil
	case "12h":
		return "720", nil
	case "1d":
		return "D", nil
	case "1w":
		return "W", nil
	case "1M":
		return "M", nil
	default:
		return "", errors.Errorf("unsupported timeframe %q", tf)
	}
}
