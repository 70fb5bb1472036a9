package query

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Query is a classified user input. It is a value: copy, don't mutate.
type Query struct {
	Raw              string
	NormalizedSymbol string
	IsAddress        bool
}

// ValidationError is returned for input that must not reach any provider.
type ValidationError struct {
	Raw    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Raw, e.Reason)
}

// Normalize maps any input to a Query. Symbols and names are upper-cased,
// contract addresses lower-cased. An address is "0x" followed by 40 hex chars;
// this is a shape check only.
func Normalize(raw string) Query {
	s := strings.TrimSpace(raw)
	if IsAddress(s) {
		return Query{Raw: raw, NormalizedSymbol: strings.ToLower(s), IsAddress: true}
	}
	return Query{Raw: raw, NormalizedSymbol: strings.ToUpper(s)}
}

// IsAddress reports whether s looks like an EVM contract address.
func IsAddress(s string) bool {
	if len(s) != 42 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return false
	}
	return common.IsHexAddress(s)
}

// Validate rejects empty and whitespace-only input.
func (q Query) Validate() error {
	if q.NormalizedSymbol == "" {
		return &ValidationError{Raw: q.Raw, Reason: "empty input"}
	}
	return nil
}

// SearchTerm is the term sent to live search providers.
func (q Query) SearchTerm() string {
	return q.NormalizedSymbol
}
