// Package engine wires configured providers, their snapshot caches and the
// resolver into the two entry points the front ends use: Resolve and
// StartBackgroundRefresh.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"tokenquote/internal/config"
	"tokenquote/internal/provider"
	"tokenquote/internal/provider/cache"
	"tokenquote/internal/provider/coincap"
	"tokenquote/internal/provider/coingecko"
	"tokenquote/internal/provider/coinmarketcap"
	"tokenquote/internal/provider/dexscreener"
	"tokenquote/internal/provider/ratelimit"
	"tokenquote/internal/refresh"
	"tokenquote/internal/resolve"
)

// Role describes how a provider takes part in resolution.
type Role string

const (
	RoleDirectory Role = "directory"
	RoleSearch    Role = "search"
	RoleLogo      Role = "logo"
)

// ProviderStatus is a point-in-time view of one configured provider.
type ProviderStatus struct {
	Name     string        `json:"name"`
	Role     Role          `json:"role"`
	Priority int           `json:"priority"`
	Interval time.Duration `json:"refresh_interval,omitempty"`
	// Directory providers only.
	HasData   bool      `json:"has_data"`
	Entries   int       `json:"entries"`
	FetchedAt time.Time `json:"fetched_at,omitzero"`
}

type directory struct {
	cache    *cache.Cache
	priority int
	interval time.Duration
}

type Engine struct {
	resolver    *resolve.Resolver
	directories []directory
	searches    []resolve.Search
	logos       provider.LogoFinder
	log         logrus.FieldLogger
}

// New builds the engine from configuration. Nothing is fetched until
// StartBackgroundRefresh is called.
func New(cfg config.Config, hc provider.HTTPClient, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{log: log}

	if cfg.CoinMarketCap.Enabled {
		if cfg.CoinMarketCap.APIKey == "" {
			log.Warn("coinmarketcap.enabled=true but CMC_API_KEY not set; skipping")
		} else {
			client := coinmarketcap.NewCoinMarketCapAPIClient(cfg.CoinMarketCap.APIKey,
				coinmarketcap.WithHTTPClient(hc),
				coinmarketcap.WithBaseURL(cfg.CoinMarketCap.Endpoint),
			)
			e.addDirectory(coinmarketcap.New(coinmarketcap.Config{Limit: cfg.CoinMarketCap.Limit}, client), cfg.CoinMarketCap.Schedule)
		}
	}
	if cfg.CoinGecko.Enabled {
		cg := coingecko.New(coingecko.Config{
			URL:     cfg.CoinGecko.Endpoint,
			APIKey:  cfg.CoinGecko.APIKey,
			PerPage: cfg.CoinGecko.PerPage,
			Pages:   cfg.CoinGecko.Pages,
		}, hc)
		e.addDirectory(cg, cfg.CoinGecko.Schedule)
	}
	if cfg.CoinCap.Enabled {
		cc := coincap.New(coincap.Config{
			URL:    cfg.CoinCap.Endpoint,
			APIKey: cfg.CoinCap.APIKey,
			Limit:  cfg.CoinCap.Limit,
		}, hc)
		e.addDirectory(cc, cfg.CoinCap.Schedule)
	}

	if cfg.DexScreener.Enabled {
		var s provider.Searcher = dexscreener.New(dexscreener.Config{URL: cfg.DexScreener.Endpoint}, hc)
		if cfg.DexScreener.MaxRequestsPerMinute > 0 {
			s = &ratelimit.TokenBucketSearcher{S: s, TB: ratelimit.PerMinute(cfg.DexScreener.MaxRequestsPerMinute, cfg.DexScreener.Burst)}
		}
		e.searches = append(e.searches, resolve.Search{Priority: cfg.DexScreener.Priority, Searcher: s})
	}

	if cfg.Logo.Enabled {
		var l provider.LogoFinder = coingecko.New(coingecko.Config{
			URL:    cfg.Logo.Endpoint,
			APIKey: cfg.Logo.APIKey,
		}, hc)
		if cfg.Logo.MinRequestIntervalSec > 0 {
			l = &ratelimit.MinInterval{L: l, Interval: time.Duration(cfg.Logo.MinRequestIntervalSec) * time.Second}
		}
		e.logos = l
	}

	dirs := make([]resolve.Directory, 0, len(e.directories))
	for _, d := range e.directories {
		dirs = append(dirs, resolve.Directory{
			Name:      d.cache.Name(),
			Priority:  d.priority,
			Source:    d.cache,
			Chartable: true,
		})
	}
	opts := []resolve.Option{
		resolve.WithDirectories(dirs...),
		resolve.WithSearches(e.searches...),
		resolve.WithLiveTimeout(time.Duration(cfg.Resolve.LiveCallTimeoutSec) * time.Second),
		resolve.WithLogger(log),
	}
	if e.logos != nil {
		opts = append(opts, resolve.WithLogoFinder(e.logos))
	}
	e.resolver = resolve.New(opts...)
	return e
}

func (e *Engine) addDirectory(p provider.BulkFetcher, s config.Schedule) {
	e.directories = append(e.directories, directory{
		cache:    cache.New(p, e.log),
		priority: s.Priority,
		interval: time.Duration(s.RefreshIntervalSec) * time.Second,
	})
}

// Resolve answers one query. See resolve.Resolver.Resolve for the error
// contract.
func (e *Engine) Resolve(ctx context.Context, raw string) (resolve.Quote, error) {
	return e.resolver.Resolve(ctx, raw)
}

// StartBackgroundRefresh starts one refresh loop per directory provider.
// The first refresh of each runs immediately.
func (e *Engine) StartBackgroundRefresh(ctx context.Context) *refresh.Handle {
	tasks := make([]refresh.Task, 0, len(e.directories))
	for _, d := range e.directories {
		tasks = append(tasks, refresh.Task{
			Name:      d.cache.Name(),
			Interval:  d.interval,
			Refresher: d.cache,
		})
	}
	e.log.WithField("providers", len(tasks)).Info("starting background refresh")
	return refresh.Start(ctx, e.log, tasks...)
}

// Providers reports every configured provider in consultation order.
func (e *Engine) Providers() []ProviderStatus {
	var out []ProviderStatus
	for _, d := range e.directories {
		st := ProviderStatus{Name: d.cache.Name(), Role: RoleDirectory, Priority: d.priority, Interval: d.interval}
		if snap, ok := d.cache.Current(); ok {
			st.HasData = true
			st.Entries = len(snap.Entries)
			st.FetchedAt = snap.FetchedAt
		}
		out = append(out, st)
	}
	for _, s := range e.searches {
		out = append(out, ProviderStatus{Name: s.Searcher.Name(), Role: RoleSearch, Priority: s.Priority})
	}
	if e.logos != nil {
		out = append(out, ProviderStatus{Name: e.logos.Name(), Role: RoleLogo})
	}
	sortStatus(out)
	return out
}

var roleOrder = map[Role]int{RoleDirectory: 0, RoleSearch: 1, RoleLogo: 2}

func sortStatus(s []ProviderStatus) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Role != s[j].Role {
			return roleOrder[s[i].Role] < roleOrder[s[j].Role]
		}
		return s[i].Priority < s[j].Priority
	})
}
