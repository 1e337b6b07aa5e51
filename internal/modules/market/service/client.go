package service

import (
	"net/http"
	"net/url"
	"strings"

	"signal_bot/internal/modules/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client публичный REST Bybit v5, только чтение свечей.
type Client struct {
	http *http.Client
	log  *zap.Logger

	baseURL    string
	category   string
	minCandles int
}

func NewClient(cfg *config.Config, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Market.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "market base url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("market base url %q is not an absolute http(s) url", cfg.Market.BaseURL)
	}

	category := cfg.Market.Category
	if category == "" {
		category = "spot"
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Market.Timeout},
		log:        log.Named("market"),
		baseURL:    strings.TrimRight(cfg.Market.BaseURL, "/"),
		category:   category,
		minCandles: cfg.Strategy.MinCandles,
	}, nil
}
