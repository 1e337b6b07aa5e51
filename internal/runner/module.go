package runner

import (
	"context"

	"signal_bot/internal/modules/config"
	marketsvc "signal_bot/internal/modules/market/service"
	strategysvc "signal_bot/internal/modules/strategy/service"
	telegramsvc "signal_bot/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newRunner(
	cfg *config.Config,
	log *zap.Logger,
	md *marketsvc.Client,
	eng *strategysvc.Engine,
	ev *strategysvc.Evaluator,
	n *telegramsvc.Telegram,
) *Runner {
	return New(Options{
		Symbols:   cfg.Strategy.Symbols,
		Timeframe: cfg.Market.Timeframe,
		Limit:     cfg.Market.Limit,
	}, md, eng, ev, n, log)
}

// Module один проход на старте приложения, потом fx.Shutdowner.
func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			newRunner, // *Runner
		),
		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner, r *Runner, log *zap.Logger) {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						defer close(done)

						code := 0
						rep, err := r.Run(ctx)
						if err != nil {
							log.Error("pass aborted", zap.Error(err), zap.Stringer("report", rep))
							code = 1
						}
						if err := sd.Shutdown(fx.ExitCode(code)); err != nil {
							log.Error("shutdown", zap.Error(err))
						}
					}()
					return nil
				},
				OnStop: func(stopCtx context.Context) error {
					cancel()
					select {
					case <-done:
						return nil
					case <-stopCtx.Done():
						return stopCtx.Err()
					}
				},
			})
		}),
	)
}
