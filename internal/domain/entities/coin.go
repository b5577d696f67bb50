package entities

import (
	"strings"
	"time"
)

// CoinListEntry is one row of the upstream coin list. Several ids may share a symbol.
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// CoinListSnapshot is the full coin list as fetched at FetchedAt. It is never
// mutated after construction; a refresh builds a new one.
type CoinListSnapshot struct {
	Entries   []CoinListEntry `json:"entries"`
	FetchedAt time.Time       `json:"fetched_at"`

	// lower-cased symbol -> id of the first entry with that symbol
	bySymbol map[string]string
}

func NewCoinListSnapshot(entries []CoinListEntry, fetchedAt time.Time) *CoinListSnapshot {
	bySymbol := make(map[string]string, len(entries))
	for _, entry := range entries {
		symbol := strings.ToLower(entry.Symbol)
		if _, seen := bySymbol[symbol]; !seen {
			bySymbol[symbol] = entry.ID
		}
	}
	return &CoinListSnapshot{
		Entries:   entries,
		FetchedAt: fetchedAt,
		bySymbol:  bySymbol,
	}
}

// Age returns how old the snapshot is at now.
func (s *CoinListSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// IsStale reports whether the snapshot is older than window at now.
func (s *CoinListSnapshot) IsStale(now time.Time, window time.Duration) bool {
	return s.Age(now) > window
}

// Lookup returns the id of the first entry whose symbol matches, ignoring case.
// Snapshots built without NewCoinListSnapshot fall back to a linear scan.
func (s *CoinListSnapshot) Lookup(symbol string) (string, bool) {
	symbol = strings.ToLower(symbol)
	if s.bySymbol != nil {
		id, ok := s.bySymbol[symbol]
		return id, ok
	}
	for _, entry := range s.Entries {
		if strings.ToLower(entry.Symbol) == symbol {
			return entry.ID, true
		}
	}
	return "", false
}
