package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultLimit = 250

// строка Bybit: [startTime, open, high, low, close, volume, turnover]
type klineResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string     `json:"category"`
		Symbol   string     `json:"symbol"`
		List     [][]string `json:"list"`
	} `json:"result"`
}

// Fetch одна попытка, без ретраев. Любая неудача и история короче
// minCandles отдаются как models.ErrDataUnavailable.
func (c *Client) Fetch(ctx context.Context, symbol, timeframe string, limit int) (models.CandleSeries, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "market.fetch")
	defer span.Finish()
	span.SetTag("symbol", symbol)
	span.SetTag("timeframe", timeframe)

	series := models.CandleSeries{Symbol: symbol, Timeframe: timeframe}

	if limit <= 0 {
		limit = defaultLimit
	}
	interval, err := bybitInterval(timeframe)
	if err != nil {
		return series, unavailable(err, symbol)
	}

	q := url.Values{}
	q.Set("category", c.category)
	q.Set("symbol", helper.ExchangeSymbol(symbol))
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))
	u := c.baseURL + "/v5/market/kline?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return series, unavailable(err, symbol)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return series, unavailable(err, symbol)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return series, unavailable(err, symbol)
	}
	if resp.StatusCode/100 != 2 {
		return series, unavailable(errors.Errorf("http %d: %s", resp.StatusCode, string(b)), symbol)
	}

	var r klineResponse
	if err := sonic.Unmarshal(b, &r); err != nil {
		return series, unavailable(err, symbol)
	}
	if r.RetCode != 0 {
		return series, unavailable(errors.Errorf("bybit kline error: code=%d msg=%s", r.RetCode, r.RetMsg), symbol)
	}

	series.Candles = parseRows(r.Result.List)
	span.SetTag("candles", len(series.Candles))

	if len(series.Candles) < c.minCandles {
		return series, unavailable(errors.Errorf("got %d candles, need %d", len(series.Candles), c.minCandles), symbol)
	}

	c.log.Debug("candles fetched",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe),
		zap.Int("count", len(series.Candles)),
	)
	return series, nil
}

// Bybit отдаёт newest-first, разворачиваем в порядок по времени.
func parseRows(rows [][]string) []models.Candle {
	out := make([]models.Candle, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if len(row) < 6 {
			continue
		}

		tsMs, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		var vals [5]float64
		ok := true
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(row[j+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok || vals[3] <= 0 {
			continue
		}

		out = append(out, models.Candle{
			Time:   time.UnixMilli(tsMs).UTC(),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return out
}

func unavailable(cause error, symbol string) error {
	return errors.Wrapf(models.ErrDataUnavailable, "%s: %v", symbol, cause)
}
