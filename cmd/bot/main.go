package main

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/market"
	"signal_bot/internal/modules/strategy"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Service: cfg.Log.Service,
	})
}

func startTracing(lc fx.Lifecycle, cfg *config.Config) error {
	tracing.SetServiceName(cfg.Log.Service)
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Enabled: cfg.Tracing.Enabled,
		Host:    cfg.Tracing.Host,
		Port:    cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}
	logger.Info("tracing enabled=%t agent=%s:%d", cfg.Tracing.Enabled, cfg.Tracing.Host, cfg.Tracing.Port)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}

func main() {
	app := fx.New(
		config.Module(),
		fx.Provide(newLogger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(startTracing),
		market.Module(),
		strategy.Module(),
		telegram.Module(),
		runner.Module(),
	)
	app.Run()
}
