package coincap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tokenquote/internal/httpx"
	"tokenquote/internal/provider"
)

// Config controls the CoinCap provider behavior.
type Config struct {
	Name   string
	URL    string // API root, default https://api.coincap.io
	APIKey string // optional; if set, sent as Bearer token
	Limit  int    // assets per snapshot, default 2000
}

// Provider reads the CoinCap /v2/assets directory. CoinCap has no logos.
type Provider struct {
	cfg    Config
	client provider.HTTPClient
}

var _ provider.BulkFetcher = (*Provider)(nil)

func New(cfg Config, hc provider.HTTPClient) *Provider {
	if cfg.Name == "" {
		cfg.Name = "CoinCap"
	}
	if cfg.URL == "" {
		cfg.URL = "https://api.coincap.io"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 2000
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Response model: numeric fields arrive as strings.
type assetsResponse struct {
	Data []struct {
		ID                string           `json:"id"`
		Symbol            string           `json:"symbol"`
		Name              string           `json:"name"`
		PriceUsd          *decimal.Decimal `json:"priceUsd"`
		ChangePercent24Hr *decimal.Decimal `json:"changePercent24Hr"`
	} `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

func (p *Provider) FetchBulk(ctx context.Context) (provider.Snapshot, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.cfg.Limit))

	h := http.Header{}
	if p.cfg.APIKey != "" {
		h.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	var body assetsResponse
	u := fmt.Sprintf("%s/v2/assets?%s", p.cfg.URL, q.Encode())
	if err := httpx.GetJSON(ctx, p.client, u, h, &body); err != nil {
		return provider.Snapshot{}, provider.Unavailable(p.cfg.Name, err)
	}

	entries := make([]provider.Listing, 0, len(body.Data))
	for _, a := range body.Data {
		if a.PriceUsd == nil || a.Symbol == "" || a.Name == "" {
			continue
		}
		entries = append(entries, provider.Listing{
			ProviderID: p.cfg.Name,
			Symbol:     a.Symbol,
			Name:       a.Name,
			Price:      *a.PriceUsd,
			Change24h:  provider.Percent(a.ChangePercent24Hr, false),
			Network:    p.cfg.Name,
		})
	}

	fetched := time.Now().UTC()
	if body.Timestamp > 0 {
		fetched = time.UnixMilli(body.Timestamp).UTC()
	}
	return provider.Snapshot{ProviderID: p.cfg.Name, Entries: entries, FetchedAt: fetched}, nil
}
