package runner

import (
	"context"
	"fmt"

	"signal_bot/internal/models"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type MarketDataSource interface {
	Fetch(ctx context.Context, symbol, timeframe string, limit int) (models.CandleSeries, error)
}

type IndicatorEngine interface {
	Compute(series models.CandleSeries) models.IndicatorSnapshot
}

type SignalEvaluator interface {
	// ok==true когда есть сигнал
	Evaluate(symbol string, snap models.IndicatorSnapshot) (sig models.Signal, ok bool, err error)
}

type Notifier interface {
	SendStartup(ctx context.Context)
	SendSignal(ctx context.Context, sig models.Signal)
}

type Options struct {
	Symbols   []string
	Timeframe string
	Limit     int
}

// Report итог одного прохода.
type Report struct {
	Symbols int
	Signals int
	Skipped int // нет данных / индикатор не определён
	Failed  int
}

const (
	outcomeSignal  = "signal"
	outcomeNone    = "none"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// Runner один последовательный проход по списку символов.
type Runner struct {
	opts Options

	md  MarketDataSource
	eng IndicatorEngine
	ev  SignalEvaluator
	n   Notifier
	log *zap.Logger

	// последний сигнал по символу, пока только пишется
	lastSignal map[string]models.Signal
}

func New(opts Options, md MarketDataSource, eng IndicatorEngine, ev SignalEvaluator, n Notifier, log *zap.Logger) *Runner {
	if opts.Timeframe == "" {
		opts.Timeframe = "1m"
	}
	if opts.Limit <= 0 {
		opts.Limit = 250
	}
	return &Runner{
		opts:       opts,
		md:         md,
		eng:        eng,
		ev:         ev,
		n:          n,
		log:        log.Named("runner"),
		lastSignal: make(map[string]models.Signal),
	}
}

// Run стартовое сообщение, затем символы строго по порядку. Ошибка одного
// символа не останавливает остальные; наружу возвращается только ctx.Err().
func (r *Runner) Run(ctx context.Context) (Report, error) {
	rep := Report{}

	r.n.SendStartup(ctx)

	for _, symbol := range r.opts.Symbols {
		if err := ctx.Err(); err != nil {
			r.log.Warn("pass interrupted", zap.Error(err), zap.Any("report", rep))
			return rep, err
		}
		rep.Symbols++

		switch r.runSymbol(ctx, symbol) {
		case outcomeSignal:
			rep.Signals++
		case outcomeSkipped:
			rep.Skipped++
		case outcomeFailed:
			rep.Failed++
		}
	}

	r.log.Info("pass finished",
		zap.Int("symbols", rep.Symbols),
		zap.Int("signals", rep.Signals),
		zap.Int("skipped", rep.Skipped),
		zap.Int("failed", rep.Failed),
	)
	return rep, nil
}

func (r *Runner) runSymbol(ctx context.Context, symbol string) (outcome string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "runner.symbol")
	span.SetTag("symbol", symbol)
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("symbol processing panicked", zap.String("symbol", symbol), zap.Any("panic", p))
			outcome = outcomeFailed
		}
		span.SetTag("outcome", outcome)
		span.Finish()
	}()

	sig, ok, err := r.processSymbol(ctx, symbol)
	switch {
	case errors.Is(err, models.ErrDataUnavailable), errors.Is(err, models.ErrIndicatorUndefined):
		r.log.Info("symbol skipped", zap.String("symbol", symbol), zap.Error(err))
		return outcomeSkipped
	case err != nil:
		r.log.Error("symbol failed", zap.String("symbol", symbol), zap.Error(err))
		return outcomeFailed
	case !ok:
		r.log.Debug("no signal", zap.String("symbol", symbol))
		return outcomeNone
	}

	r.log.Info("signal",
		zap.String("symbol", sig.Symbol),
		zap.String("side", string(sig.Side)),
		zap.Float64("price", sig.Price),
		zap.Float64("tp", sig.TakeProfit),
		zap.Float64("sl", sig.StopLoss),
	)
	r.n.SendSignal(ctx, sig)
	r.lastSignal[symbol] = sig
	return outcomeSignal
}

func (r *Runner) processSymbol(ctx context.Context, symbol string) (models.Signal, bool, error) {
	series, err := r.md.Fetch(ctx, symbol, r.opts.Timeframe, r.opts.Limit)
	if err != nil {
		return models.Signal{}, false, errors.Wrap(err, "fetch")
	}

	snap := r.eng.Compute(series)

	sig, ok, err := r.ev.Evaluate(symbol, snap)
	if err != nil {
		return models.Signal{}, false, errors.Wrap(err, "evaluate")
	}
	return sig, ok, nil
}

func (rep Report) String() string {
	return fmt.Sprintf("symbols=%d signals=%d skipped=%d failed=%d",
		rep.Symbols, rep.Signals, rep.Skipped, rep.Failed)
}
