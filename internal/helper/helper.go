package helper

import "strings"

// NormTF приводит таймфрейм к виду "1m", "1h", "1d", "1M".
// Регистр важен только для месяца: "1M" это месяц, "1m" минута.
func NormTF(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "candle"), "Candle")
	if s == "1M" {
		return "1M"
	}
	s = strings.ToLower(s)
	switch s {
	case "60m", "1h":
		return "1h"
	case "1440m", "24h", "1d":
		return "1d"
	case "1mo", "1mth":
		return "1M"
	default:
		return s
	}
}

// ExchangeSymbol "BTC/USDT" -> "BTCUSDT", "btc-usdt" -> "BTCUSDT".
func ExchangeSymbol(symbol string) string {
	r := strings.NewReplacer("/", "", "-", "", "_", "", " ", "")
	return strings.ToUpper(r.Replace(symbol))
}
