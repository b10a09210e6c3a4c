package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/money"
	"github.com/pennywise/pennywise/internal/rest"
	"github.com/pennywise/pennywise/internal/storage"
)

type TransactionDTO struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

type TransactionHandler struct {
	service TransactionService
}

func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (handler *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	transactions := handler.service.List(r.Context())

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, transactionToDTO(t))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, errResponse := dtoToTransaction(dto)
	if errResponse != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errResponse)
		return
	}

	created, err := handler.service.Record(r.Context(), t)
	if errors.Is(err, storage.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == "" || dto.ID != id {
		http.Error(w, "Invalid transaction id in request body", http.StatusBadRequest)
		return
	}
	t, errResponse := dtoToTransaction(dto)
	if errResponse != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errResponse)
		return
	}

	ok, err := handler.service.Update(r.Context(), t)
	if err != nil && !errors.Is(err, storage.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Transaction not saved", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(transactionToDTO(t)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !handler.service.Delete(r.Context(), id) {
		http.Error(w, "Transaction not removed", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func transactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.String(),
		Category:    t.Category,
		Date:        t.Date.Format(time.RFC3339),
		Description: t.Description,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, *rest.ErrorResponse) {
	amount, err := money.ParseDecimal(dto.Amount)
	if err != nil {
		return Transaction{}, &rest.ErrorResponse{
			Error:   "Invalid amount",
			Details: "amount must be a positive decimal, e.g. 12.34",
		}
	}
	var date time.Time
	if dto.Date != "" {
		date, err = time.Parse(time.RFC3339, dto.Date)
		if err != nil {
			return Transaction{}, &rest.ErrorResponse{
				Error:   "Invalid date format",
				Details: "date must be in RFC3339 format",
			}
		}
	}
	return Transaction{
		ID:          dto.ID,
		Type:        Type(dto.Type),
		Amount:      amount,
		Category:    dto.Category,
		Date:        date,
		Description: dto.Description,
	}, nil
}
