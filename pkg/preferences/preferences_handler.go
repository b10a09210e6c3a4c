package preferences

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CurrencyDTO struct {
	Currency string `json:"currency"`
}

type CategoryDTO struct {
	Label string `json:"label"`
}

type ThemeDTO struct {
	Theme string `json:"theme"`
}

type PreferencesHandler struct {
	store PreferenceStore
}

func NewPreferencesHandler(store PreferenceStore) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

func (handler *PreferencesHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	dto := CurrencyDTO{Currency: handler.store.Currency(r.Context())}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *PreferencesHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto CurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !handler.store.SetCurrency(r.Context(), dto.Currency) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid currency code",
			Details: "currency must be a 3-letter code",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(CurrencyDTO{Currency: handler.store.Currency(r.Context())})
}

func (handler *PreferencesHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(handler.store.Categories(r.Context())); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *PreferencesHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !handler.store.AddCategory(r.Context(), dto.Label) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Category not added",
			Details: "label is empty or already present",
		})
		return
	}
	log.Debugf("added category %q", dto.Label)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(handler.store.Categories(r.Context()))
}

func (handler *PreferencesHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	label := mux.Vars(r)["label"]
	if !handler.store.RemoveCategory(r.Context(), label) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Category not removed",
			Details: "the reserved category cannot be removed",
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	dto := ThemeDTO{Theme: string(handler.store.Theme(r.Context()))}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto ThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !handler.store.SetTheme(r.Context(), Theme(dto.Theme)) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid theme",
			Details: "theme must be one of light, dark, system",
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto)
}
