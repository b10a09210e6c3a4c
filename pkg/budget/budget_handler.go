package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/money"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/internal/storage"
)

type BudgetDTO struct {
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Spent     string `json:"spent,omitempty"`
	Remaining string `json:"remaining,omitempty"`
}

type BudgetHandler struct {
	service BudgetService
}

func NewBudgetHandler(service BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

func (handler *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgets := handler.service.List(r.Context())

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, budgetToDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Set handles PUT of a single budget; the category comes from the path and
// wins over any category in the body.
func (handler *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	category := mux.Vars(r)["category"]

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto.Category = category

	b, errResponse := dtoToBudget(dto)
	if errResponse != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errResponse)
		return
	}

	saved, err := handler.service.Set(r.Context(), b)
	if errors.Is(err, storage.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(budgetToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	if !handler.service.Delete(r.Context(), category) {
		http.Error(w, "Budget not removed", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func budgetToDTO(b Budget) BudgetDTO {
	return BudgetDTO{
		Category:  b.Category,
		Limit:     b.Limit.String(),
		Spent:     b.Spent.String(),
		Remaining: b.Remaining().String(),
	}
}

func dtoToBudget(dto BudgetDTO) (Budget, *rest.ErrorResponse) {
	limit, err := money.ParseDecimal(dto.Limit)
	if err != nil {
		return Budget{}, &rest.ErrorResponse{
			Error:   "Invalid limit",
			Details: "limit must be a positive decimal, e.g. 250.00",
		}
	}
	return Budget{Category: dto.Category, Limit: limit}, nil
}
