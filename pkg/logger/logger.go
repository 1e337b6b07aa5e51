package logger

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var InfoLogger *zap.Logger

var (
	serviceName = "default"
)

type Config struct {
	Level   string // debug | info | warn | error
	Service string
}

// New собирает production-логгер с полем service и ставит его
// пакетным логгером для Info/Error.
func New(conf Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if conf.Level != "" {
		if err := level.Set(conf.Level); err != nil {
			return nil, errors.Wrapf(err, "log level %q", conf.Level)
		}
	}
	if conf.Service != "" {
		SetServiceName(conf.Service)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = true

	l, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}
	l = l.With(zap.String("service", serviceName))

	InfoLogger = l
	return l, nil
}

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

func Info(format string, args ...interface{}) {
	if InfoLogger == nil {
		panic("InfoLogger is not initialized")
	}

	InfoLogger.Info(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	if InfoLogger == nil {
		panic("InfoLogger is not initialized")
	}

	InfoLogger.Error(fmt.Sprintf(format, args...))
}
