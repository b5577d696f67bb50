package entities

import "time"

// Timeframe selects how far back a historical quotes request reaches.
type Timeframe string

const (
	TimeframeDay   Timeframe = "1d"
	TimeframeWeek  Timeframe = "7d"
	TimeframeMonth Timeframe = "1m"
	TimeframeYear  Timeframe = "1y"

	DefaultTimeframe = TimeframeWeek
)

// ParseTimeframe maps raw query input to a Timeframe. Anything unknown,
// including the empty string, falls back to DefaultTimeframe.
func ParseTimeframe(raw string) Timeframe {
	switch tf := Timeframe(raw); tf {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear:
		return tf
	default:
		return DefaultTimeframe
	}
}

// StartDate returns the beginning of the window ending at now. Months and
// years are calendar based.
func (tf Timeframe) StartDate(now time.Time) time.Time {
	switch tf {
	case TimeframeDay:
		return now.AddDate(0, 0, -1)
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}
