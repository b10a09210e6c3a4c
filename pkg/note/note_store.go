package note

import (
	"context"

	"github.com/pennywise/pennywise/internal/storage"
	log "github.com/sirupsen/logrus"
)

const storageKey = "pennywise.notes"

// NoteStore persists the note collection as one blob. Reading repairs notes
// that were stored without a checklist (or files/labels) so downstream code
// never sees nil collections; that repair is a store invariant, not the
// caller's job.
type NoteStore interface {
	List(ctx context.Context) []Note
	Add(ctx context.Context, n Note) bool
	Update(ctx context.Context, n Note) bool
	Remove(ctx context.Context, id string) bool
}

type NoteStoreImpl struct {
	store storage.Store
}

func NewNoteStore(store storage.Store) *NoteStoreImpl {
	return &NoteStoreImpl{store: store}
}

func (s *NoteStoreImpl) List(ctx context.Context) []Note {
	notes := storage.ReadJSON[Note](ctx, s.store, storageKey)
	for i := range notes {
		notes[i] = notes[i].repaired()
	}
	return notes
}

func (s *NoteStoreImpl) Add(ctx context.Context, n Note) bool {
	if !s.store.IsAvailable(ctx) {
		log.Warn("storage unavailable, note not saved")
		return false
	}
	notes := s.List(ctx)
	return storage.WriteJSON(ctx, s.store, storageKey, append(notes, n.repaired()))
}

func (s *NoteStoreImpl) Update(ctx context.Context, n Note) bool {
	notes := s.List(ctx)
	for i := range notes {
		if notes[i].ID == n.ID {
			notes[i] = n.repaired()
			break
		}
	}
	return storage.WriteJSON(ctx, s.store, storageKey, notes)
}

func (s *NoteStoreImpl) Remove(ctx context.Context, id string) bool {
	notes := s.List(ctx)
	remaining := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	return storage.WriteJSON(ctx, s.store, storageKey, remaining)
}
