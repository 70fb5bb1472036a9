package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by adapters for a well-formed, empty result set.
// Transport and decoding failures are never reported as ErrNotFound.
var ErrNotFound = errors.New("not found")

// Listing is one entry of a provider's bulk snapshot, normalized to the
// common shape. Optional fields are nil when the provider does not supply them.
type Listing struct {
	ProviderID string           `json:"provider_id"`
	Symbol     string           `json:"symbol"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	Change24h  *decimal.Decimal `json:"change_24h"`
	LogoURL    *string          `json:"logo_url"`
	Network    string           `json:"network"`
}

// Snapshot is an immutable, timestamped bulk listing from one provider.
type Snapshot struct {
	ProviderID string    `json:"provider_id"`
	Entries    []Listing `json:"entries"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Pair is a DEX trading pair returned by a live search. Never cached.
type Pair struct {
	BaseTokenName   string           `json:"base_token_name"`
	BaseTokenSymbol string           `json:"base_token_symbol"`
	PriceUSD        decimal.Decimal  `json:"price_usd"`
	Change24h       *decimal.Decimal `json:"change_24h"`
	LogoURL         *string          `json:"logo_url"`
	ChainID         string           `json:"chain_id"`
	LiquidityUSD    *decimal.Decimal `json:"liquidity_usd"`
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=mock -destination=mock/provider_mock.go -source=provider.go
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BulkFetcher is a provider exposing a full listing directory.
type BulkFetcher interface {
	Name() string
	FetchBulk(ctx context.Context) (Snapshot, error)
}

// Searcher is a provider answering live per-query pair searches.
type Searcher interface {
	Name() string
	Search(ctx context.Context, term string) ([]Pair, error)
}

// LogoFinder looks up a logo URL by symbol.
type LogoFinder interface {
	Name() string
	FindLogo(ctx context.Context, symbol string) (string, error)
}

// UnavailableError reports that a provider could not be reached or answered
// with something unusable (non-2xx, malformed body, timeout).
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Unavailable wraps err as an *UnavailableError for the named provider.
// ErrNotFound is passed through unchanged.
func Unavailable(name string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Provider: name, Err: err}
}

// IsUnavailable reports whether err is a provider availability failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

var hundred = decimal.NewFromInt(100)

// Percent returns v as a percentage. Providers that report changes as a
// fraction (0.015 for 1.5%) pass fraction=true.
func Percent(v *decimal.Decimal, fraction bool) *decimal.Decimal {
	if v == nil {
		return nil
	}
	out := *v
	if fraction {
		out = out.Mul(hundred)
	}
	return &out
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
