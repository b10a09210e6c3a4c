package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pennywise/pennywise/internal/utils"
	"github.com/pennywise/pennywise/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransactionService struct {
	transactions []transaction.Transaction
}

func (s *stubTransactionService) List(_ context.Context) []transaction.Transaction {
	return s.transactions
}

func (s *stubTransactionService) Record(_ context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	return t, nil
}

func (s *stubTransactionService) Update(_ context.Context, _ transaction.Transaction) (bool, error) {
	return true, nil
}

func (s *stubTransactionService) Delete(_ context.Context, _ string) bool {
	return true
}

func setupSummaryHandler(t *testing.T) *AnalyticsHandler {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)}
	return NewAnalyticsHandler(NewEngine(clock), &stubTransactionService{transactions: juneTransactions()})
}

func TestSummary_CustomRange(t *testing.T) {
	handler := setupSummaryHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary?range=custom&from=2024-06-01&to=2024-06-02", nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary SummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))

	require.Len(t, summary.CategoryTotals, 2)
	assert.Equal(t, CategoryTotalDTO{Category: "Food", Total: "80.00"}, summary.CategoryTotals[0])
	assert.Equal(t, CategoryTotalDTO{Category: "Transport", Total: "20.00"}, summary.CategoryTotals[1])

	require.Len(t, summary.DailyTrend, 2)
	assert.Equal(t, TrendPointDTO{Day: "Jun 1", Total: "70.00"}, summary.DailyTrend[0])
	assert.Equal(t, TrendPointDTO{Day: "Jun 2", Total: "30.00"}, summary.DailyTrend[1])

	assert.Equal(t, "100.00", summary.ExpenseTotal)
	assert.Equal(t, "1000.00", summary.IncomeTotal)
}

func TestSummary_DefaultsToMonth(t *testing.T) {
	handler := setupSummaryHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary SummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339), summary.Range.Start)
	assert.Equal(t, "100.00", summary.ExpenseTotal)
}

func TestSummary_CustomRangeMissingBound(t *testing.T) {
	handler := setupSummaryHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary?range=custom&from=2024-06-01", nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary_UnknownSelector(t *testing.T) {
	handler := setupSummaryHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/summary?range=quarter", nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
