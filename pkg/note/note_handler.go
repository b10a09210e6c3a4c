package note

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pennywise/pennywise/internal/storage"
)

type ChecklistItemDTO struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type NoteDTO struct {
	ID        string             `json:"id,omitempty"`
	Title     string             `json:"title"`
	Type      string             `json:"type"`
	Content   string             `json:"content"`
	Checklist []ChecklistItemDTO `json:"checklist"`
	Files     []string           `json:"files"`
	Labels    []string           `json:"labels"`
	CreatedAt *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

type NoteHandler struct {
	service NoteService
}

func NewNoteHandler(service NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func (handler *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	notes := handler.service.List(r.Context())

	dtos := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, noteToDTO(n))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var dto NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(r.Context(), dtoToNote(dto))
	if errors.Is(err, storage.ErrUnavailable) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(noteToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var dto NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == "" || dto.ID != id {
		http.Error(w, "Invalid note id in request body", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(r.Context(), dtoToNote(dto))
	if err != nil {
		http.Error(w, "Note not saved", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(noteToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// AutoSave accepts the same payload as Update but only schedules a
// debounced write; it answers immediately.
func (handler *NoteHandler) AutoSave(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var dto NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.ID == "" || dto.ID != id {
		http.Error(w, "Invalid note id in request body", http.StatusBadRequest)
		return
	}

	handler.service.AutoSave(r.Context(), dtoToNote(dto))
	w.WriteHeader(http.StatusAccepted)
}

func (handler *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if !handler.service.Delete(r.Context(), id) {
		http.Error(w, "Note not removed", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func noteToDTO(n Note) NoteDTO {
	checklist := make([]ChecklistItemDTO, 0, len(n.Checklist))
	for _, item := range n.Checklist {
		checklist = append(checklist, ChecklistItemDTO(item))
	}
	createdAt := n.CreatedAt
	updatedAt := n.UpdatedAt
	return NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Type:      string(n.Type),
		Content:   n.Content,
		Checklist: checklist,
		Files:     n.Files,
		Labels:    n.Labels,
		CreatedAt: &createdAt,
		UpdatedAt: &updatedAt,
	}
}

func dtoToNote(dto NoteDTO) Note {
	checklist := make([]ChecklistItem, 0, len(dto.Checklist))
	for _, item := range dto.Checklist {
		checklist = append(checklist, ChecklistItem(item))
	}
	n := Note{
		ID:        dto.ID,
		Title:     dto.Title,
		Type:      NoteType(dto.Type),
		Content:   dto.Content,
		Checklist: checklist,
		Files:     dto.Files,
		Labels:    dto.Labels,
	}
	if dto.CreatedAt != nil {
		n.CreatedAt = *dto.CreatedAt
	}
	return n.repaired()
}
