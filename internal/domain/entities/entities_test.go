package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		raw      string
		expected Timeframe
	}{
		{"1d", TimeframeDay},
		{"7d", TimeframeWeek},
		{"1m", TimeframeMonth},
		{"1y", TimeframeYear},
		{"", TimeframeWeek},
		{"3h", TimeframeWeek},
		{"1D", TimeframeWeek},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTimeframe(tt.raw))
		})
	}
}

func TestTimeframe_StartDate(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 24*time.Hour, now.Sub(TimeframeDay.StartDate(now)))
	assert.Equal(t, 168*time.Hour, now.Sub(TimeframeWeek.StartDate(now)))
	// calendar month: March 31 minus one month normalizes to March 2
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), TimeframeMonth.StartDate(now))
	assert.Equal(t, time.Date(2023, 3, 31, 12, 0, 0, 0, time.UTC), TimeframeYear.StartDate(now))
	assert.Equal(t, TimeframeWeek.StartDate(now), Timeframe("bogus").StartDate(now))
}

func TestCoinListSnapshot_Lookup(t *testing.T) {
	snapshot := NewCoinListSnapshot([]CoinListEntry{
		{ID: "bitcoin", Symbol: "btc"},
		{ID: "batcat", Symbol: "BTC"},
		{ID: "ethereum", Symbol: "eth"},
	}, time.Now())

	id, ok := snapshot.Lookup("BTC")
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)

	id, ok = snapshot.Lookup("Eth")
	assert.True(t, ok)
	assert.Equal(t, "ethereum", id)

	_, ok = snapshot.Lookup("doge")
	assert.False(t, ok)
}

func TestCoinListSnapshot_LookupWithoutIndex(t *testing.T) {
	snapshot := &CoinListSnapshot{Entries: []CoinListEntry{
		{ID: "bitcoin", Symbol: "btc"},
		{ID: "batcat", Symbol: "BTC"},
	}}

	id, ok := snapshot.Lookup("Btc")
	assert.True(t, ok)
	assert.Equal(t, "bitcoin", id)
}

func TestCoinListSnapshot_IsStale(t *testing.T) {
	fetched := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := NewCoinListSnapshot(nil, fetched)

	assert.False(t, snapshot.IsStale(fetched.Add(time.Hour), time.Hour))
	assert.True(t, snapshot.IsStale(fetched.Add(time.Hour+time.Millisecond), time.Hour))
	assert.Equal(t, 30*time.Minute, snapshot.Age(fetched.Add(30*time.Minute)))
}

func TestGeneration_Truncated(t *testing.T) {
	assert.True(t, (&Generation{FinishReason: "MAX_TOKENS"}).Truncated())
	assert.False(t, (&Generation{FinishReason: "STOP"}).Truncated())
}
