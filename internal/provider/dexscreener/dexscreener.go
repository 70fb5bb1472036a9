package dexscreener

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"tokenquote/internal/httpx"
	"tokenquote/internal/provider"
)

// Config controls the DexScreener search provider.
type Config struct {
	Name string
	URL  string // API root, default https://api.dexscreener.com
}

// Provider answers live pair searches against DexScreener.
type Provider struct {
	cfg    Config
	client provider.HTTPClient
}

var _ provider.Searcher = (*Provider)(nil)

func New(cfg Config, hc provider.HTTPClient) *Provider {
	if cfg.Name == "" {
		cfg.Name = "DexScreener"
	}
	if cfg.URL == "" {
		cfg.URL = "https://api.dexscreener.com"
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type searchResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairData `json:"pairs"`
}

type pairData struct {
	ChainID   string `json:"chainId"`
	DexID     string `json:"dexId"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd    *decimal.Decimal `json:"priceUsd"`
	PriceChange *struct {
		H24 *decimal.Decimal `json:"h24"`
	} `json:"priceChange"`
	Liquidity *struct {
		Usd *decimal.Decimal `json:"usd"`
	} `json:"liquidity"`
	Info *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"info"`
}

// Search runs /latest/dex/search and returns pairs in response order.
// Pairs without a base token name, symbol or USD price are skipped.
// An empty result is provider.ErrNotFound.
func (p *Provider) Search(ctx context.Context, term string) ([]provider.Pair, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, provider.ErrNotFound
	}
	q := url.Values{}
	q.Set("q", term)

	var body searchResponse
	u := fmt.Sprintf("%s/latest/dex/search?%s", p.cfg.URL, q.Encode())
	if err := httpx.GetJSON(ctx, p.client, u, nil, &body); err != nil {
		return nil, provider.Unavailable(p.cfg.Name, err)
	}

	out := make([]provider.Pair, 0, len(body.Pairs))
	for _, d := range body.Pairs {
		if d.PriceUsd == nil || d.BaseToken.Name == "" || d.BaseToken.Symbol == "" {
			continue
		}
		pair := provider.Pair{
			BaseTokenName:   d.BaseToken.Name,
			BaseTokenSymbol: d.BaseToken.Symbol,
			PriceUSD:        *d.PriceUsd,
			ChainID:         d.ChainID,
		}
		if d.PriceChange != nil {
			pair.Change24h = provider.Percent(d.PriceChange.H24, false)
		}
		if d.Liquidity != nil && d.Liquidity.Usd != nil {
			liq := *d.Liquidity.Usd
			pair.LiquidityUSD = &liq
		}
		if d.Info != nil {
			pair.LogoURL = provider.StringPtr(d.Info.ImageURL)
		}
		out = append(out, pair)
	}
	if len(out) == 0 {
		return nil, provider.ErrNotFound
	}
	return out, nil
}
