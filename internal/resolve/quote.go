package resolve

import (
	"strings"

	"github.com/shopspring/decimal"

	"tokenquote/internal/provider"
)

// Quote is the normalized result handed to the presentation layer.
// Name, Symbol and Price are always set; the rest may be nil.
type Quote struct {
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	Price       decimal.Decimal  `json:"price"`
	Change24h   *decimal.Decimal `json:"change_24h"`
	LogoURL     *string          `json:"logo_url"`
	Network     *string          `json:"network"`
	ChartSymbol *string          `json:"chart_symbol"`
	// Source is the provider the quote was resolved from.
	Source string `json:"source"`
}

// Partial reports whether any optional field is missing.
func (q Quote) Partial() bool {
	return q.Change24h == nil || q.LogoURL == nil || q.Network == nil || q.ChartSymbol == nil
}

// Display is a Quote rendered for humans: price to 6 places, change to 2.
type Display struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Price       string `json:"price"`
	Change24h   string `json:"change_24h,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
	Network     string `json:"network,omitempty"`
	ChartSymbol string `json:"chart_symbol,omitempty"`
}

func (q Quote) Display() Display {
	d := Display{
		Name:   q.Name,
		Symbol: q.Symbol,
		Price:  q.Price.StringFixed(6),
	}
	if q.Change24h != nil {
		d.Change24h = q.Change24h.StringFixed(2)
	}
	if q.LogoURL != nil {
		d.LogoURL = *q.LogoURL
	}
	if q.Network != nil {
		d.Network = *q.Network
	}
	if q.ChartSymbol != nil {
		d.ChartSymbol = *q.ChartSymbol
	}
	return d
}

func fromListing(l provider.Listing, chartable bool) Quote {
	symbol := strings.ToUpper(l.Symbol)
	q := Quote{
		Name:      l.Name,
		Symbol:    symbol,
		Price:     l.Price,
		Change24h: l.Change24h,
		LogoURL:   l.LogoURL,
		Network:   provider.StringPtr(l.Network),
		Source:    l.ProviderID,
	}
	if chartable {
		q.ChartSymbol = provider.StringPtr(symbol + "USD")
	}
	return q
}

func fromPair(p provider.Pair, source string) Quote {
	return Quote{
		Name:      p.BaseTokenName,
		Symbol:    strings.ToUpper(p.BaseTokenSymbol),
		Price:     p.PriceUSD,
		Change24h: p.Change24h,
		LogoURL:   p.LogoURL,
		Network:   provider.StringPtr(p.ChainID),
		Source:    source,
	}
}
