package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Telegram пассивный нотифайер: только sendMessage в один чат.
// Без токена или chat_id ничего не отправляет.
type Telegram struct {
	http *http.Client
	log  *zap.Logger

	token    string
	chatID   string
	endpoint string
}

func NewTelegram(cfg *config.Config, log *zap.Logger) *Telegram {
	endpoint := cfg.Telegram.APIEndpoint
	if endpoint == "" {
		endpoint = tgbot.APIEndpoint
	}
	return &Telegram{
		http:     &http.Client{Timeout: cfg.Telegram.Timeout},
		log:      log.Named("telegram"),
		token:    cfg.Telegram.Token,
		chatID:   cfg.Telegram.ChatID,
		endpoint: endpoint,
	}
}

func (t *Telegram) Enabled() bool {
	return t != nil && t.token != "" && t.chatID != ""
}

// Send best-effort: ошибка доставки только логируется.
func (t *Telegram) Send(ctx context.Context, text string) {
	if t == nil || text == "" {
		return
	}
	if !t.Enabled() {
		// без TELEGRAM_* пишем в лог вместо чата
		t.log.Debug("telegram disabled, message dropped", zap.String("text", text))
		return
	}
	if err := t.deliver(ctx, text); err != nil {
		t.log.Warn("telegram delivery failed", zap.Error(err))
	}
}

func (t *Telegram) SendStartup(ctx context.Context) {
	t.Send(ctx, formatStartup())
}

func (t *Telegram) SendSignal(ctx context.Context, sig models.Signal) {
	t.Send(ctx, formatSignal(sig))
}

func (t *Telegram) deliver(ctx context.Context, text string) error {
	body, err := sonic.Marshal(sendMessageRequest{ChatID: t.chatID, Text: text})
	if err != nil {
		return errors.Wrap(models.ErrDeliveryFailed, err.Error())
	}

	u := fmt.Sprintf(t.endpoint, t.token, "sendMessage")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(models.ErrDeliveryFailed, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		// в тексте ошибки url с токеном
		return errors.Wrap(models.ErrDeliveryFailed, "sendMessage request failed")
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(models.ErrDeliveryFailed, "http %d: read body: %v", resp.StatusCode, err)
	}

	var apiResp tgbot.APIResponse
	if err := sonic.Unmarshal(b, &apiResp); err != nil {
		return errors.Wrapf(models.ErrDeliveryFailed, "http %d: undecodable response", resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 || !apiResp.Ok {
		return errors.Wrapf(models.ErrDeliveryFailed, "http %d: %s",
			resp.StatusCode, tgbot.Error{Code: apiResp.ErrorCode, Message: apiResp.Description}.Error())
	}
	return nil
}
