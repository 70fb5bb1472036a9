package coinmarketcap

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tokenquote/internal/httpx"
)

// Coin is one row of the listings/latest response.
type Coin struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Symbol string           `json:"symbol"`
	Slug   string           `json:"slug"`
	Quote  map[string]Quote `json:"quote"`
}

// Quote is the per-currency market data of a Coin.
type Quote struct {
	Price            *decimal.Decimal `json:"price"`
	PercentChange24h *decimal.Decimal `json:"percent_change_24h"`
}

// Info is the metadata of a coin from /v1/cryptocurrency/info.
type Info struct {
	ID     int64  `json:"id"`
	Symbol string `json:"symbol"`
	Logo   string `json:"logo"`
}

type status struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

func (s status) err() error {
	if s.ErrorCode == 0 {
		return nil
	}
	return fmt.Errorf("api error %d: %s", s.ErrorCode, s.ErrorMessage)
}

// GetListingsLatest retrieves the latest market listings.
func (c *CoinMarketCapAPIClient) GetListingsLatest(ctx context.Context, start, limit int, convert string) ([]Coin, error) {
	query := url.Values{}
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("convert", convert)

	var body struct {
		Status status `json:"status"`
		Data   []Coin `json:"data"`
	}
	u := fmt.Sprintf("%s/v1/cryptocurrency/listings/latest?%s", c.baseURL, query.Encode())
	if err := httpx.GetJSON(ctx, c.httpClient, u, c.header, &body); err != nil {
		return nil, fmt.Errorf("listings: %w", err)
	}
	if err := body.Status.err(); err != nil {
		return nil, fmt.Errorf("listings: %w", err)
	}
	return body.Data, nil
}

// GetInfo retrieves metadata (logos) for the given coin ids, keyed by id.
func (c *CoinMarketCapAPIClient) GetInfo(ctx context.Context, ids []int64) (map[string]Info, error) {
	if len(ids) == 0 {
		return map[string]Info{}, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	query := url.Values{}
	query.Set("id", strings.Join(parts, ","))
	query.Set("aux", "logo")

	var body struct {
		Status status          `json:"status"`
		Data   map[string]Info `json:"data"`
	}
	u := fmt.Sprintf("%s/v1/cryptocurrency/info?%s", c.baseURL, query.Encode())
	if err := httpx.GetJSON(ctx, c.httpClient, u, c.header, &body); err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	if err := body.Status.err(); err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	return body.Data, nil
}
