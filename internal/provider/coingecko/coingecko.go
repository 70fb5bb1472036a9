package coingecko

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

// Config controls the CoinGecko provider behavior.
type Config struct {
	Name       string
	URL        string // API root, default https://api.coingecko.com
	APIKey     string // optional demo key, sent as x-cg-demo-api-key
	VsCurrency string // default usd
	PerPage    int    // markets page size, max 250
	Pages      int    // number of market pages per snapshot
}

// Provider reads the CoinGecko markets directory and looks up logos.
type Provider struct {
	cfg    Config
	client provider.HTTPClient
}

var (
	_ provider.BulkFetcher = (*Provider)(nil)
	_ provider.LogoFinder  = (*Provider)(nil)
)

func New(cfg Config, hc provider.HTTPClient) *Provider {
	if cfg.Name == "" {
		cfg.Name = "CoinGecko"
	}
	if cfg.URL == "" {
		cfg.URL = "https://api.coingecko.com"
	}
	if cfg.VsCurrency == "" {
		cfg.VsCurrency = "usd"
	}
	if cfg.PerPage <= 0 || cfg.PerPage > 250 {
		cfg.PerPage = 250
	}
	if cfg.Pages <= 0 {
		cfg.Pages = 4
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

func (p *Provider) header() http.Header {
	h := http.Header{}
	if p.cfg.APIKey != "" {
		h.Set("x-cg-demo-api-key", p.cfg.APIKey)
	}
	return h
}

type market struct {
	ID                       string           `json:"id"`
	Symbol                   string           `json:"symbol"`
	Name                     string           `json:"name"`
	Image                    string           `json:"image"`
	CurrentPrice             *decimal.Decimal `json:"current_price"`
	PriceChangePercentage24h *decimal.Decimal `json:"price_change_percentage_24h"`
}

// FetchBulk pages through /coins/markets ordered by market cap.
// Any failed page fails the whole fetch.
func (p *Provider) FetchBulk(ctx context.Context) (provider.Snapshot, error) {
	entries := make([]provider.Listing, 0, p.cfg.PerPage*p.cfg.Pages)
	for page := 1; page <= p.cfg.Pages; page++ {
		q := url.Values{}
		q.Set("vs_currency", p.cfg.VsCurrency)
		q.Set("order", "market_cap_desc")
		q.Set("per_page", strconv.Itoa(p.cfg.PerPage))
		q.Set("page", strconv.Itoa(page))

		var rows []market
		u := fmt.Sprintf("%s/api/v3/coins/markets?%s", p.cfg.URL, q.Encode())
		if err := httpx.GetJSON(ctx, p.client, u, p.header(), &rows); err != nil {
			return provider.Snapshot{}, provider.Unavailable(p.cfg.Name, fmt.Errorf("markets page %d: %w", page, err))
		}
		for _, m := range rows {
			if m.CurrentPrice == nil || m.Symbol == "" || m.Name == "" {
				continue
			}
			entries = append(entries, provider.Listing{
				ProviderID: p.cfg.Name,
				Symbol:     m.Symbol,
				Name:       m.Name,
				Price:      *m.CurrentPrice,
				Change24h:  provider.Percent(m.PriceChangePercentage24h, false),
				LogoURL:    provider.StringPtr(m.Image),
				Network:    p.cfg.Name,
			})
		}
		if len(rows) < p.cfg.PerPage {
			break
		}
	}
	return provider.Snapshot{ProviderID: p.cfg.Name, Entries: entries, FetchedAt: time.Now().UTC()}, nil
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Thumb  string `json:"thumb"`
		Large  string `json:"large"`
	} `json:"coins"`
}

// FindLogo returns the logo of the first search hit whose symbol matches.
func (p *Provider) FindLogo(ctx context.Context, symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", provider.ErrNotFound
	}
	q := url.Values{}
	q.Set("query", symbol)

	var body searchResponse
	u := fmt.Sprintf("%s/api/v3/search?%s", p.cfg.URL, q.Encode())
	if err := httpx.GetJSON(ctx, p.client, u, p.header(), &body); err != nil {
		return "", provider.Unavailable(p.cfg.Name, err)
	}
	for _, c := range body.Coins {
		if !strings.EqualFold(c.Symbol, symbol) {
			continue
		}
		if c.Large != "" {
			return c.Large, nil
		}
		if c.Thumb != "" {
			return c.Thumb, nil
		}
	}
	return "", provider.ErrNotFound
}
