package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"tokenquote/internal/provider"
	"tokenquote/internal/query"
)

// ErrNotFound is returned when no stage of the fallback chain matched.
var ErrNotFound = fmt.Errorf("token %w", provider.ErrNotFound)

// SnapshotSource is the read side of a snapshot cache.
type SnapshotSource interface {
	Current() (provider.Snapshot, bool)
}

// Directory is a cached symbol directory consulted before any live call.
type Directory struct {
	Name     string
	Priority int
	Source   SnapshotSource
	// Chartable directories produce a chart symbol (SYMBOL+"USD").
	Chartable bool
}

// Search is a live, liquidity-ranked search stage.
type Search struct {
	Priority int
	Searcher provider.Searcher
}

// LogoResult is the outcome of a best-effort logo lookup.
type LogoResult struct {
	URL string
	Err error
}

// Value returns the logo URL, or nil when the lookup missed or failed.
func (r LogoResult) Value() *string {
	if r.Err != nil || r.URL == "" {
		return nil
	}
	return &r.URL
}

const defaultLiveTimeout = 8 * time.Second

// Resolver walks the provider chain for one query at a time.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	directories []Directory
	searches    []Search
	logos       provider.LogoFinder
	timeout     time.Duration
	log         logrus.FieldLogger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDirectories sets the cached directories; they are consulted by
// ascending Priority, ties keeping the given order.
func WithDirectories(dirs ...Directory) Option {
	return func(r *Resolver) { r.directories = append(r.directories, dirs...) }
}

// WithSearches sets the live search stages, ordered like directories.
func WithSearches(s ...Search) Option {
	return func(r *Resolver) { r.searches = append(r.searches, s...) }
}

// WithLogoFinder sets the secondary provider used to backfill logos.
func WithLogoFinder(l provider.LogoFinder) Option {
	return func(r *Resolver) { r.logos = l }
}

// WithLiveTimeout bounds each live provider call.
func WithLiveTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{timeout: defaultLiveTimeout, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	sort.SliceStable(r.directories, func(i, j int) bool { return r.directories[i].Priority < r.directories[j].Priority })
	sort.SliceStable(r.searches, func(i, j int) bool { return r.searches[i].Priority < r.searches[j].Priority })
	return r
}

// Resolve turns raw user input into a Quote.
//
// Errors: *query.ValidationError for empty input, ErrNotFound when nothing
// matched, *provider.UnavailableError when every live search was unreachable.
// Cancellation of ctx is not propagated to live calls; each call is bounded
// by the live timeout instead.
func (r *Resolver) Resolve(ctx context.Context, raw string) (Quote, error) {
	q := query.Normalize(raw)
	if err := q.Validate(); err != nil {
		return Quote{}, err
	}
	ctx = context.WithoutCancel(ctx)
	log := r.log.WithField("query", q.NormalizedSymbol)

	if !q.IsAddress {
		if quote, ok := r.fromDirectories(q); ok {
			log.WithField("provider", quote.Source).Debug("resolved from directory")
			return r.withLogo(ctx, log, quote), nil
		}
	}

	quote, err := r.fromSearches(ctx, log, q)
	if err != nil {
		return Quote{}, err
	}
	log.WithField("provider", quote.Source).Debug("resolved from live search")
	return r.withLogo(ctx, log, quote), nil
}

func (r *Resolver) fromDirectories(q query.Query) (Quote, bool) {
	for _, d := range r.directories {
		snap, ok := d.Source.Current()
		if !ok {
			continue
		}
		if l, ok := MatchListing(snap.Entries, q); ok {
			if l.ProviderID == "" {
				l.ProviderID = d.Name
			}
			return fromListing(l, d.Chartable), true
		}
	}
	return Quote{}, false
}

func (r *Resolver) fromSearches(ctx context.Context, log logrus.FieldLogger, q query.Query) (Quote, error) {
	var (
		answered bool
		lastErr  error
	)
	for _, s := range r.searches {
		pairs, err := r.search(ctx, s.Searcher, q.SearchTerm())
		switch {
		case err == nil:
			answered = true
			if best, ok := BestPair(pairs); ok {
				return fromPair(best, s.Searcher.Name()), nil
			}
		case errors.Is(err, provider.ErrNotFound):
			answered = true
		default:
			lastErr = err
			log.WithFields(logrus.Fields{"provider": s.Searcher.Name(), "err": err}).Warn("live search failed")
		}
	}
	if !answered && lastErr != nil {
		return Quote{}, lastErr
	}
	return Quote{}, ErrNotFound
}

func (r *Resolver) search(ctx context.Context, s provider.Searcher, term string) ([]provider.Pair, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	pairs, err := s.Search(ctx, term)
	if err != nil && !errors.Is(err, provider.ErrNotFound) {
		return nil, provider.Unavailable(s.Name(), err)
	}
	return pairs, err
}

func (r *Resolver) withLogo(ctx context.Context, log logrus.FieldLogger, quote Quote) Quote {
	if quote.LogoURL != nil || r.logos == nil {
		return quote
	}
	res := r.findLogo(ctx, quote.Symbol)
	if res.Err != nil && !errors.Is(res.Err, provider.ErrNotFound) {
		log.WithFields(logrus.Fields{"provider": r.logos.Name(), "err": res.Err}).Warn("logo backfill failed")
	}
	quote.LogoURL = res.Value()
	return quote
}

func (r *Resolver) findLogo(ctx context.Context, symbol string) LogoResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	url, err := r.logos.FindLogo(ctx, symbol)
	return LogoResult{URL: url, Err: err}
}
