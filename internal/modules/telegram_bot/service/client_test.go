package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"
)

func newTestTelegram(t *testing.T, srvURL, token, chatID string) *Telegram {
	t.Helper()
	cfg := &config.Config{}
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = chatID
	cfg.Telegram.APIEndpoint = srvURL + "/bot%s/%s"
	cfg.Telegram.Timeout = 5 * time.Second
	return NewTelegram(cfg, zaptest.NewLogger(t))
}

func TestSendDisabledMakesNoCalls(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	for _, creds := range [][2]string{{"", ""}, {"123:abc", ""}, {"", "42"}} {
		tg := newTestTelegram(t, srv.URL, creds[0], creds[1])
		if tg.Enabled() {
			t.Fatalf("notifier enabled with token=%q chat=%q", creds[0], creds[1])
		}
		tg.SendStartup(context.Background())
		tg.SendSignal(context.Background(), models.Signal{Symbol: "BTC/USDT", Side: models.SideBuy})
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("unconfigured notifier made %d requests", n)
	}
}

func TestSendPostsJSON(t *testing.T) {
	got := make(chan sendMessageRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bot123:abc/sendMessage" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		var req sendMessageRequest
		if err := sonic.Unmarshal(b, &req); err != nil {
			t.Errorf("body %s: %v", b, err)
		}
		got <- req
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	tg := newTestTelegram(t, srv.URL, "123:abc", "42")
	if err := tg.deliver(context.Background(), "hello"); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	req := <-got
	if req.ChatID != "42" || req.Text != "hello" {
		t.Fatalf("payload = %+v", req)
	}
}

func TestDeliverFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":500,"description":"Internal"}`))
		},
		"api rejects": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			tg := newTestTelegram(t, srv.URL, "123:abc", "42")
			if err := tg.deliver(context.Background(), "hi"); !errors.Is(err, models.ErrDeliveryFailed) {
				t.Fatalf("err = %v, want ErrDeliveryFailed", err)
			}
			// наружу ошибка не выходит
			tg.Send(context.Background(), "hi")
		})
	}
}

func TestDeliverTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srvURL := srv.URL
	srv.Close()

	tg := newTestTelegram(t, srvURL, "123:abc", "42")
	err := tg.deliver(context.Background(), "hi")
	if !errors.Is(err, models.ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	tg.Send(context.Background(), "hi")
}

func TestDeliverTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// тело короче заявленного, клиент получит unexpected EOF
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte(`{"ok":true`))
	}))
	defer srv.Close()

	tg := newTestTelegram(t, srv.URL, "123:abc", "42")
	err := tg.deliver(context.Background(), "hi")
	if !errors.Is(err, models.ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	if !strings.Contains(err.Error(), "read body") {
		t.Fatalf("err = %v, want a read error", err)
	}
}
