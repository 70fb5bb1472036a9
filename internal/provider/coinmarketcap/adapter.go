package coinmarketcap

import (
	"context"
	"strconv"
	"strings"
	"time"

	"tokenquote/internal/provider"
)

type Config struct {
	Name     string // display name, default: CoinMarketCap
	Limit    int    // listings to request, default 5000
	Convert  string // quote currency, default USD
	Network  string // network label on listings, default CMC
	// InfoBatchSize bounds the number of ids per /info request.
	InfoBatchSize int
}

// Adapter turns CoinMarketCap listings and logos into a provider.Snapshot.
type Adapter struct {
	cfg    Config
	client *CoinMarketCapAPIClient
}

var _ provider.BulkFetcher = (*Adapter)(nil)

func New(cfg Config, client *CoinMarketCapAPIClient) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "CoinMarketCap"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5000
	}
	if cfg.Convert == "" {
		cfg.Convert = "USD"
	}
	if cfg.Network == "" {
		cfg.Network = "CMC"
	}
	if cfg.InfoBatchSize <= 0 {
		cfg.InfoBatchSize = 1000
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// FetchBulk loads the listings and merges in logos. A failure of either
// call fails the whole fetch so a snapshot never mixes generations.
func (a *Adapter) FetchBulk(ctx context.Context) (provider.Snapshot, error) {
	coins, err := a.client.GetListingsLatest(ctx, 1, a.cfg.Limit, a.cfg.Convert)
	if err != nil {
		return provider.Snapshot{}, provider.Unavailable(a.cfg.Name, err)
	}

	ids := make([]int64, 0, len(coins))
	for _, c := range coins {
		ids = append(ids, c.ID)
	}

	logos := make(map[int64]string, len(coins))
	for start := 0; start < len(ids); start += a.cfg.InfoBatchSize {
		end := min(start+a.cfg.InfoBatchSize, len(ids))
		info, err := a.client.GetInfo(ctx, ids[start:end])
		if err != nil {
			return provider.Snapshot{}, provider.Unavailable(a.cfg.Name, err)
		}
		for key, in := range info {
			id := in.ID
			if id == 0 {
				id, _ = strconv.ParseInt(key, 10, 64)
			}
			logos[id] = in.Logo
		}
	}

	entries := make([]provider.Listing, 0, len(coins))
	for _, c := range coins {
		q, ok := c.Quote[a.cfg.Convert]
		if !ok || q.Price == nil || strings.TrimSpace(c.Symbol) == "" || strings.TrimSpace(c.Name) == "" {
			continue
		}
		entries = append(entries, provider.Listing{
			ProviderID: a.cfg.Name,
			Symbol:     c.Symbol,
			Name:       c.Name,
			Price:      *q.Price,
			Change24h:  provider.Percent(q.PercentChange24h, false),
			LogoURL:    provider.StringPtr(logos[c.ID]),
			Network:    a.cfg.Network,
		})
	}

	return provider.Snapshot{ProviderID: a.cfg.Name, Entries: entries, FetchedAt: time.Now().UTC()}, nil
}
