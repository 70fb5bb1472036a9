package resolve

import (
	"strings"

	"github.com/shopspring/decimal"

	"tokenquote/internal/provider"
	"tokenquote/internal/query"
)

// MatchListing is the predicate for symbol directories. The first entry whose
// symbol equals the query wins; only when no symbol matches is the first
// entry with an equal full name taken. Comparison ignores case.
func MatchListing(entries []provider.Listing, q query.Query) (provider.Listing, bool) {
	want := q.NormalizedSymbol
	if want == "" {
		return provider.Listing{}, false
	}
	for _, l := range entries {
		if strings.EqualFold(l.Symbol, want) {
			return l, true
		}
	}
	for _, l := range entries {
		if strings.EqualFold(strings.TrimSpace(l.Name), want) {
			return l, true
		}
	}
	return provider.Listing{}, false
}

// BestPair is the predicate for liquidity searches: the pair with the
// greatest USD liquidity, missing liquidity counting as zero. On a tie the
// earlier pair in provider order wins.
func BestPair(pairs []provider.Pair) (provider.Pair, bool) {
	if len(pairs) == 0 {
		return provider.Pair{}, false
	}
	best := 0
	bestLiq := liquidity(pairs[0])
	for i := 1; i < len(pairs); i++ {
		if l := liquidity(pairs[i]); l.GreaterThan(bestLiq) {
			best, bestLiq = i, l
		}
	}
	return pairs[best], true
}

func liquidity(p provider.Pair) decimal.Decimal {
	if p.LiquidityUSD == nil {
		return decimal.Zero
	}
	return *p.LiquidityUSD
}
