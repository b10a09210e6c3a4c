// Package analytics derives aggregate views from a transaction collection.
// Every function is a pure transformation of (transactions, start, end);
// nothing is cached and nothing touches storage.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/pennywise/pennywise/internal/money"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/transaction"
)

type RangeSelector string

const (
	WeekRange   RangeSelector = "week"
	MonthRange  RangeSelector = "month"
	YearRange   RangeSelector = "year"
	CustomRange RangeSelector = "custom"
)

// Range is an inclusive [Start, End] pair of instants.
type Range struct {
	Start time.Time
	End   time.Time
}

type CategoryTotal struct {
	Category string
	Total    money.Money
}

// TrendPoint is one calendar day's expense total. Day carries the parsed day
// for chronological ordering; Label is the display form, e.g. "Jun 1".
type TrendPoint struct {
	Day   time.Time
	Label string
	Total money.Money
}

// trendLabelFormat renders "Jun 1" style day labels.
const trendLabelFormat = "Jan 2"

type Engine struct {
	clock utils.Clock
}

func NewEngine(clock utils.Clock) *Engine {
	return &Engine{clock: clock}
}

// ResolveRange turns a selector into a concrete inclusive range. Week, month
// and year resolve to the calendar period containing the clock's current
// instant; weeks start on Monday. Custom passes the caller's instants through
// verbatim, without checking start <= end: an inverted range simply filters
// down to nothing.
func (e *Engine) ResolveRange(selector RangeSelector, customStart, customEnd time.Time) (Range, error) {
	now := e.clock.Now()
	switch selector {
	case WeekRange:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}, nil
	case MonthRange:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case YearRange:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}, nil
	case CustomRange:
		return Range{Start: customStart, End: customEnd}, nil
	default:
		return Range{}, fmt.Errorf("unknown range selector %q", selector)
	}
}

// inRange is inclusive of both endpoints.
func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}

// CategoryTotals groups the expense transactions inside [start, end] by
// category and returns them sorted descending by total. Ties keep first-seen
// category order; the sort is stable over the grouping order.
func CategoryTotals(transactions []transaction.Transaction, start, end time.Time) []CategoryTotal {
	totals := make(map[string]money.Money)
	order := make([]string, 0)
	for _, t := range transactions {
		if t.Type != transaction.Expense || !inRange(t.Date, start, end) {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryTotal{Category: category, Total: totals[category]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.Cents > result[j].Total.Cents
	})
	return result
}

// DailyTrend buckets the expense transactions inside [start, end] per
// calendar day and returns the buckets chronologically.
func DailyTrend(transactions []transaction.Transaction, start, end time.Time) []TrendPoint {
	totals := make(map[time.Time]money.Money)
	for _, t := range transactions {
		if t.Type != transaction.Expense || !inRange(t.Date, start, end) {
			continue
		}
		day := time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, t.Date.Location())
		totals[day] = totals[day].Add(t.Amount)
	}

	result := make([]TrendPoint, 0, len(totals))
	for day, total := range totals {
		result = append(result, TrendPoint{Day: day, Label: day.Format(trendLabelFormat), Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.Before(result[j].Day)
	})
	return result
}

// SumByType reduces the transactions of the given type inside [start, end]
// to a single total.
func SumByType(transactions []transaction.Transaction, start, end time.Time, transactionType transaction.Type) money.Money {
	var total money.Money
	for _, t := range transactions {
		if t.Type == transactionType && inRange(t.Date, start, end) {
			total = total.Add(t.Amount)
		}
	}
	return total
}
