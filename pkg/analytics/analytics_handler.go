package analytics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/pkg/transaction"
)

type RangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CategoryTotalDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type TrendPointDTO struct {
	Day   string `json:"day"`
	Total string `json:"total"`
}

type SummaryDTO struct {
	Range          RangeDTO           `json:"range"`
	CategoryTotals []CategoryTotalDTO `json:"categoryTotals"`
	DailyTrend     []TrendPointDTO    `json:"dailyTrend"`
	IncomeTotal    string             `json:"incomeTotal"`
	ExpenseTotal   string             `json:"expenseTotal"`
}

type AnalyticsHandler struct {
	engine       *Engine
	transactions transaction.TransactionService
}

func NewAnalyticsHandler(engine *Engine, transactions transaction.TransactionService) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine, transactions: transactions}
}

// Summary answers the whole dashboard payload in one call: the resolved
// range, category totals, the daily trend and both type sums.
func (handler *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	query := r.URL.Query()

	selector := RangeSelector(query.Get("range"))
	if selector == "" {
		selector = MonthRange
	}

	var customStart, customEnd time.Time
	if selector == CustomRange {
		var errResponse *rest.ErrorResponse
		customStart, errResponse = parseInstant(query.Get("from"), false)
		if errResponse == nil {
			customEnd, errResponse = parseInstant(query.Get("to"), true)
		}
		if errResponse != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errResponse)
			return
		}
	}

	resolved, err := handler.engine.ResolveRange(selector, customStart, customEnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(&rest.ErrorResponse{
			Error:   "Invalid range selector",
			Details: "range must be one of week, month, year, custom",
		})
		return
	}

	transactions := handler.transactions.List(r.Context())
	summary := SummaryDTO{
		Range: RangeDTO{
			Start: resolved.Start.Format(time.RFC3339),
			End:   resolved.End.Format(time.RFC3339),
		},
		CategoryTotals: make([]CategoryTotalDTO, 0),
		DailyTrend:     make([]TrendPointDTO, 0),
		IncomeTotal:    SumByType(transactions, resolved.Start, resolved.End, transaction.Income).String(),
		ExpenseTotal:   SumByType(transactions, resolved.Start, resolved.End, transaction.Expense).String(),
	}
	for _, ct := range CategoryTotals(transactions, resolved.Start, resolved.End) {
		summary.CategoryTotals = append(summary.CategoryTotals, CategoryTotalDTO{
			Category: ct.Category,
			Total:    ct.Total.String(),
		})
	}
	for _, tp := range DailyTrend(transactions, resolved.Start, resolved.End) {
		summary.DailyTrend = append(summary.DailyTrend, TrendPointDTO{
			Day:   tp.Label,
			Total: tp.Total.String(),
		})
	}

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseInstant accepts RFC3339 or a bare date. A bare "to" date is widened to
// the end of that day so the inclusive filter covers the whole day.
func parseInstant(value string, endOfDay bool) (time.Time, *rest.ErrorResponse) {
	if value == "" {
		return time.Time{}, &rest.ErrorResponse{
			Error:   "Missing custom range bound",
			Details: "custom range requires both from and to",
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &rest.ErrorResponse{
			Error:   "Invalid date",
			Details: "dates must be RFC3339 or YYYY-MM-DD",
		}
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
