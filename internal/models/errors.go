package models

import "github.com/pkg/errors"

var (
	// ErrDataUnavailable биржа не ответила или вернула слишком короткую историю.
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrIndicatorUndefined не хватает данных хотя бы для одного индикатора, символ пропускается.
	ErrIndicatorUndefined = errors.New("indicator undefined")
	// ErrDeliveryFailed сообщение не доставлено в Telegram.
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
