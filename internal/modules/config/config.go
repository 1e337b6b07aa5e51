package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	defaultConfigFile = "configs/values_local.yaml"

	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	alphaVantageENV   = "ALPHAVANTAGE_API_KEY"
)

// Config ...
type Config struct {
	Telegram struct {
		Token       string        `yaml:"token"`
		ChatID      string        `yaml:"chat_id"`
		APIEndpoint string        `yaml:"api_endpoint"` // шаблон вида https://api.telegram.org/bot%s/%s
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"telegram"`

	// Ключ есть в окружении, но в расчётах не используется.
	AlphaVantageAPIKey string `yaml:"alphavantage_api_key"`

	Market struct {
		BaseURL   string        `yaml:"base_url"`
		Category  string        `yaml:"category"` // spot | linear
		Timeframe string        `yaml:"timeframe"`
		Limit     int           `yaml:"limit"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"market"`

	Strategy struct {
		Symbols []string `yaml:"symbols"`

		RSIPeriod int     `yaml:"rsi_period"`
		RSIBuy    float64 `yaml:"rsi_buy"`  // перепроданность
		RSISell   float64 `yaml:"rsi_sell"` // перекупленность

		EMAFast        int `yaml:"ema_fast"`
		EMASlow        int `yaml:"ema_slow"`
		ATRPeriod      int `yaml:"atr_period"`
		VolumeMAPeriod int `yaml:"volume_ma_period"`

		// TP/SL в ATR от цены входа
		TakeProfitATR float64 `yaml:"take_profit_atr"`
		StopLossATR   float64 `yaml:"stop_loss_atr"`

		// меньше свечей: данных нет, сигнал не считаем
		MinCandles int `yaml:"min_candles"`
	} `yaml:"strategy"`

	Log struct {
		Level   string `yaml:"level"`
		Service string `yaml:"service"`
	} `yaml:"log"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`
}

func defaults() Config {
	var c Config

	c.Telegram.APIEndpoint = "https://api.telegram.org/bot%s/%s"
	c.Telegram.Timeout = 10 * time.Second

	c.Market.BaseURL = "https://api.bybit.com"
	c.Market.Category = "spot"
	c.Market.Timeframe = "1m"
	c.Market.Limit = 250
	c.Market.Timeout = 15 * time.Second

	c.Strategy.Symbols = []string{"BTC/USDT", "ETH/USDT"}
	c.Strategy.RSIPeriod = 14
	c.Strategy.RSIBuy = 30
	c.Strategy.RSISell = 70
	c.Strategy.EMAFast = 50
	c.Strategy.EMASlow = 200
	c.Strategy.ATRPeriod = 14
	c.Strategy.VolumeMAPeriod = 20
	c.Strategy.TakeProfitATR = 2
	c.Strategy.StopLossATR = 1
	c.Strategy.MinCandles = 200

	c.Log.Level = "info"
	c.Log.Service = "signal_bot"

	c.Tracing.Host = "localhost"
	c.Tracing.Port = 6831

	return c
}

// NewConfig дефолты -> yaml-файл (если есть) -> переменные окружения.
func NewConfig() (*Config, error) {
	config := defaults()

	env := viper.New()
	env.AutomaticEnv()

	configFileName := env.GetString(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	if err := decodeFile(configFileName, &config); err != nil {
		return nil, err
	}

	if err := applyEnv(env, &config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func decodeFile(path string, config *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// файла нет, работаем на дефолтах и окружении
			return nil
		}
		return errors.Wrap(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(config); err != nil && err != io.EOF {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	return nil
}

func applyEnv(env *viper.Viper, c *Config) error {
	stringFromEnv(env, tokenTelegramENV, &c.Telegram.Token)
	stringFromEnv(env, chatIDTelegramENV, &c.Telegram.ChatID)
	stringFromEnv(env, "TELEGRAM_API_ENDPOINT", &c.Telegram.APIEndpoint)
	stringFromEnv(env, alphaVantageENV, &c.AlphaVantageAPIKey)

	stringFromEnv(env, "MARKET_BASE_URL", &c.Market.BaseURL)
	stringFromEnv(env, "MARKET_CATEGORY", &c.Market.Category)
	stringFromEnv(env, "TIMEFRAME", &c.Market.Timeframe)

	stringFromEnv(env, "LOG_LEVEL", &c.Log.Level)
	stringFromEnv(env, "SERVICE_NAME", &c.Log.Service)
	stringFromEnv(env, "JAEGER_HOST", &c.Tracing.Host)

	if raw := env.GetString("SYMBOLS"); raw != "" {
		c.Strategy.Symbols = splitSymbols(raw)
	}

	ints := map[string]*int{
		"MARKET_LIMIT":     &c.Market.Limit,
		"RSI_PERIOD":       &c.Strategy.RSIPeriod,
		"EMA_FAST":         &c.Strategy.EMAFast,
		"EMA_SLOW":         &c.Strategy.EMASlow,
		"ATR_PERIOD":       &c.Strategy.ATRPeriod,
		"VOLUME_MA_PERIOD": &c.Strategy.VolumeMAPeriod,
		"MIN_CANDLES":      &c.Strategy.MinCandles,
		"JAEGER_PORT":      &c.Tracing.Port,
	}
	for key, dst := range ints {
		if err := intFromEnv(env, key, dst); err != nil {
			return err
		}
	}

	floats := map[string]*float64{
		"RSI_BUY":         &c.Strategy.RSIBuy,
		"RSI_SELL":        &c.Strategy.RSISell,
		"TAKE_PROFIT_ATR": &c.Strategy.TakeProfitATR,
		"STOP_LOSS_ATR":   &c.Strategy.StopLossATR,
	}
	for key, dst := range floats {
		if err := floatFromEnv(env, key, dst); err != nil {
			return err
		}
	}

	durations := map[string]*time.Duration{
		"TELEGRAM_TIMEOUT": &c.Telegram.Timeout,
		"MARKET_TIMEOUT":   &c.Market.Timeout,
	}
	for key, dst := range durations {
		if err := durationFromEnv(env, key, dst); err != nil {
			return err
		}
	}

	if raw := env.GetString("TRACING_ENABLED"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.Wrapf(err, "env TRACING_ENABLED=%q", raw)
		}
		c.Tracing.Enabled = b
	}
	return nil
}

// Validate проверяет согласованность параметров стратегии.
func (c *Config) Validate() error {
	s := c.Strategy
	switch {
	case len(s.Symbols) == 0:
		return errors.New("no symbols configured")
	case s.RSIPeriod <= 0 || s.EMAFast <= 0 || s.ATRPeriod <= 0 || s.VolumeMAPeriod <= 0:
		return errors.New("indicator periods must be > 0")
	case s.EMAFast >= s.EMASlow:
		return errors.New("EMA_FAST must be < EMA_SLOW")
	case s.RSIBuy >= s.RSISell:
		return errors.New("RSI_BUY must be < RSI_SELL")
	case s.TakeProfitATR <= 0 || s.StopLossATR <= 0:
		return errors.New("TP/SL ATR multipliers must be > 0")
	case s.MinCandles <= 0:
		return errors.New("MIN_CANDLES must be > 0")
	case c.Market.Limit < s.MinCandles:
		return errors.Errorf("MARKET_LIMIT %d is below MIN_CANDLES %d", c.Market.Limit, s.MinCandles)
	}
	return nil
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stringFromEnv(env *viper.Viper, key string, dst *string) {
	if v := env.GetString(key); v != "" {
		*dst = v
	}
}

func intFromEnv(env *viper.Viper, key string, dst *int) error {
	raw := env.GetString(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Wrapf(err, "env %s=%q", key, raw)
	}
	*dst = n
	return nil
}

func floatFromEnv(env *viper.Viper, key string, dst *float64) error {
	raw := env.GetString(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.Wrapf(err, "env %s=%q", key, raw)
	}
	*dst = f
	return nil
}

func durationFromEnv(env *viper.Viper, key string, dst *time.Duration) error {
	raw := env.GetString(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "env %s=%q", key, raw)
	}
	*dst = d
	return nil
}
