package tracing

import (
	"testing"

	"signal_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap/zaptest"
)

func TestInitTracerDisabled(t *testing.T) {
	tracer, closeFn, err := InitTracer(Config{})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if _, ok := tracer.(opentracing.NoopTracer); !ok {
		t.Fatalf("tracer = %T, want noop", tracer)
	}
	closeFn()
}

func TestInitTracerEnabled(t *testing.T) {
	old := opentracing.GlobalTracer()
	defer opentracing.SetGlobalTracer(old)

	logger.InfoLogger = zaptest.NewLogger(t)
	SetServiceName("signal_bot_test")
	tracer, closeFn, err := InitTracer(Config{Enabled: true, Host: "127.0.0.1", Port: 6831})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	defer closeFn()

	if opentracing.GlobalTracer() != tracer {
		t.Fatal("jaeger tracer was not installed globally")
	}
	span := tracer.StartSpan("test")
	span.Finish()
}
