package app

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Notes
	r.HandleFunc("/api/note", deps.NoteHandler.List).Methods("GET")
	r.HandleFunc("/api/note", deps.NoteHandler.Create).Methods("POST")
	r.HandleFunc("/api/note/{id}", deps.NoteHandler.Update).Methods("PUT")
	r.HandleFunc("/api/note/{id}/autosave", deps.NoteHandler.AutoSave).Methods("PUT")
	r.HandleFunc("/api/note/{id}", deps.NoteHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.List).Methods("GET")
	r.HandleFunc("/api/budget/{category}", deps.BudgetHandler.Set).Methods("PUT")
	r.HandleFunc("/api/budget/{category}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Preferences
	r.HandleFunc("/api/preferences/currency", deps.PreferenceHandler.GetCurrency).Methods("GET")
	r.HandleFunc("/api/preferences/currency", deps.PreferenceHandler.SetCurrency).Methods("PUT")
	r.HandleFunc("/api/preferences/category", deps.PreferenceHandler.GetCategories).Methods("GET")
	r.HandleFunc("/api/preferences/category", deps.PreferenceHandler.AddCategory).Methods("POST")
	r.HandleFunc("/api/preferences/category/{label}", deps.PreferenceHandler.RemoveCategory).Methods("DELETE")
	r.HandleFunc("/api/preferences/theme", deps.PreferenceHandler.GetTheme).Methods("GET")
	r.HandleFunc("/api/preferences/theme", deps.PreferenceHandler.SetTheme).Methods("PUT")

	// Analytics
	r.HandleFunc("/api/analytics/summary", deps.AnalyticsHandler.Summary).Methods("GET")

	// Health
	r.HandleFunc("/api/health", healthHandler(deps)).Methods("GET")
}

func healthHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		available := deps.Store.IsAvailable(r.Context())
		status := "ok"
		code := http.StatusOK
		if !available {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":           status,
			"storageAvailable": available,
		})
	}
}
