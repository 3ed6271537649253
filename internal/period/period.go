// Package period resolves reporting date ranges and renders their ledger
// query filters.
package period

import (
	"fmt"
	"time"
)

// DateFormat is how the ledger service renders transaction dates.
const DateFormat = "2006-01-02"

// Presets accepted by Resolve.
const (
	PresetMonth   = "month"
	PresetQuarter = "quarter"
	PresetYTD     = "ytd"
	PresetCustom  = "custom"
	PresetAll     = "all"
)

// Range is a reporting period, inclusive on both ends. Zero bounds mean
// all dates.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// PreviousMonth is the previous full calendar month.
func PreviousMonth(now time.Time) Range {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := firstOfThis.AddDate(0, 0, -1)
	return span(time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), end)
}

// LastQuarter is the previous full calendar quarter, wrapping into the
// prior year when now falls in the first quarter.
func LastQuarter(now time.Time) Range {
	startMonth := (int(now.Month())-1)/3*3 + 1 - 3
	year := now.Year()
	if startMonth < 1 {
		startMonth += 12
		year--
	}
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	return span(start, start.AddDate(0, 3, -1))
}

// YearToDate runs from January 1 of now's year through now's date.
func YearToDate(now time.Time) Range {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return span(start, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}

// Custom is an explicit inclusive range.
func Custom(start, end time.Time) Range {
	return span(start, end)
}

// AllDates places no bounds on the report.
func AllDates() Range {
	return Range{Label: "All Dates"}
}

func span(start, end time.Time) Range {
	return Range{
		Start: start,
		End:   end,
		Label: start.Format(DateFormat) + " to " + end.Format(DateFormat),
	}
}

// Resolve maps a period preset and optional custom bounds to a Range.
// The custom preset requires both bounds in 2006-01-02 form; the other
// presets ignore them.
func Resolve(preset, from, to string, now time.Time) (Range, error) {
	switch preset {
	case PresetMonth:
		return PreviousMonth(now), nil
	case PresetQuarter:
		return LastQuarter(now), nil
	case PresetYTD:
		return YearToDate(now), nil
	case PresetAll:
		return AllDates(), nil
	case PresetCustom:
		if from == "" || to == "" {
			return Range{}, fmt.Errorf("custom period needs both --from and --to")
		}
		start, err := time.Parse(DateFormat, from)
		if err != nil {
			return Range{}, fmt.Errorf("parsing from date %q: %w", from, err)
		}
		end, err := time.Parse(DateFormat, to)
		if err != nil {
			return Range{}, fmt.Errorf("parsing to date %q: %w", to, err)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("period ends before it starts: %s to %s", from, to)
		}
		return Custom(start, end), nil
	default:
		return Range{}, fmt.Errorf("unknown period %q", preset)
	}
}

// Filter renders the range as the ledger query predicate the fetch layer
// passes through verbatim. An unbounded range yields the empty string.
func (r Range) Filter() string {
	if r.Start.IsZero() && r.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("TxnDate >= '%s' AND TxnDate <= '%s'",
		r.Start.Format(DateFormat), r.End.Format(DateFormat))
}
