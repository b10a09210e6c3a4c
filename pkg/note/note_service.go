package note

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise/pennywise/internal/autosave"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/pennywise/pennywise/internal/utils"
	log "github.com/sirupsen/logrus"
)

type NoteService interface {
	List(ctx context.Context) []Note
	Create(ctx context.Context, n Note) (Note, error)
	Update(ctx context.Context, n Note) (Note, error)
	// AutoSave schedules a debounced write of an in-progress edit. Edits to
	// the same note supersede each other, so only the latest state lands.
	AutoSave(ctx context.Context, n Note)
	Delete(ctx context.Context, id string) bool
}

type NoteServiceImpl struct {
	store     NoteStore
	debouncer *autosave.Debouncer
	clock     utils.Clock
}

func NewNoteService(store NoteStore, debouncer *autosave.Debouncer, clock utils.Clock) *NoteServiceImpl {
	return &NoteServiceImpl{store: store, debouncer: debouncer, clock: clock}
}

func (s *NoteServiceImpl) List(ctx context.Context) []Note {
	return s.store.List(ctx)
}

func (s *NoteServiceImpl) Create(ctx context.Context, n Note) (Note, error) {
	n.ID = uuid.NewString()
	now := s.clock.Now()
	n.CreatedAt = now
	n = s.prepare(n, now)

	if !s.store.Add(ctx, n) {
		return Note{}, storage.ErrUnavailable
	}
	return n, nil
}

// Update saves the note and returns it as stored, with the stamped UpdatedAt
// and save-time defaults applied.
func (s *NoteServiceImpl) Update(ctx context.Context, n Note) (Note, error) {
	// a pending auto-save for this note would rewrite older state on top
	s.debouncer.Cancel(n.ID)

	n = s.prepare(n, s.clock.Now())
	if !s.store.Update(ctx, n) {
		return Note{}, storage.ErrUnavailable
	}
	return n, nil
}

func (s *NoteServiceImpl) AutoSave(ctx context.Context, n Note) {
	prepared := s.prepare(n, s.clock.Now())
	s.debouncer.Schedule(n.ID, func() {
		// the request context is gone by the time the debounce fires
		if !s.store.Update(context.Background(), prepared) {
			log.Warnf("auto-save for note %s failed, storage unavailable", prepared.ID)
		}
	})
}

func (s *NoteServiceImpl) Delete(ctx context.Context, id string) bool {
	s.debouncer.Cancel(id)
	return s.store.Remove(ctx, id)
}

// prepare enforces the save-time invariants: a non-empty title, an advanced
// UpdatedAt, and exactly one active content field for the note's type.
func (s *NoteServiceImpl) prepare(n Note, now time.Time) Note {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = DefaultTitle
	}
	if !n.Type.Valid() {
		n.Type = TextNote
	}
	switch n.Type {
	case TextNote:
		n.Checklist = []ChecklistItem{}
	case ChecklistNote:
		n.Content = ""
	}
	n.UpdatedAt = now
	return n.repaired()
}
