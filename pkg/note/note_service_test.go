package note

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/pennywise/internal/autosave"
	"github.com/pennywise/pennywise/internal/storage"
	"github.com/pennywise/pennywise/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNoteService(t *testing.T, delay time.Duration) (*NoteServiceImpl, *utils.MockClock) {
	t.Helper()
	debouncer := autosave.NewDebouncer(delay)
	t.Cleanup(debouncer.Stop)
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)}
	service := NewNoteService(NewNoteStore(storage.NewMemoryStore()), debouncer, clock)
	return service, clock
}

func TestCreate_DefaultsTitleAndType(t *testing.T) {
	ctx := context.Background()
	service, clock := setupNoteService(t, time.Millisecond)

	created, err := service.Create(ctx, Note{Content: "just some text"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, DefaultTitle, created.Title)
	assert.Equal(t, TextNote, created.Type)
	assert.Equal(t, clock.Now(), created.CreatedAt)
	assert.Equal(t, clock.Now(), created.UpdatedAt)
	assert.NotNil(t, created.Checklist)
	assert.NotNil(t, created.Files)
	assert.NotNil(t, created.Labels)
}

func TestCreate_ClearsInactiveField(t *testing.T) {
	ctx := context.Background()
	service, _ := setupNoteService(t, time.Millisecond)

	t.Run("text note loses stale checklist", func(t *testing.T) {
		created, err := service.Create(ctx, Note{
			Title:     "Text",
			Type:      TextNote,
			Content:   "body",
			Checklist: []ChecklistItem{{Text: "stale"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "body", created.Content)
		assert.Empty(t, created.Checklist)
	})

	t.Run("checklist note loses stale content", func(t *testing.T) {
		created, err := service.Create(ctx, Note{
			Title:     "List",
			Type:      ChecklistNote,
			Content:   "stale",
			Checklist: []ChecklistItem{{Text: "item"}},
		})
		require.NoError(t, err)
		assert.Empty(t, created.Content)
		require.Len(t, created.Checklist, 1)
	})
}

func TestUpdate_AdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	service, clock := setupNoteService(t, time.Millisecond)

	created, err := service.Create(ctx, Note{Title: "Note", Type: TextNote, Content: "v1"})
	require.NoError(t, err)

	clock.SetNow(clock.Now().Add(time.Hour))
	created.Content = "v2"
	updated, err := service.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)

	listed := service.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, updated, listed[0])
	assert.Equal(t, "v2", listed[0].Content)
	assert.True(t, listed[0].UpdatedAt.After(listed[0].CreatedAt))
}

func TestAutoSave_OnlyLatestStateIsWritten(t *testing.T) {
	ctx := context.Background()
	service, _ := setupNoteService(t, 20*time.Millisecond)

	created, err := service.Create(ctx, Note{Title: "Draft", Type: TextNote, Content: "v1"})
	require.NoError(t, err)

	created.Content = "v2"
	service.AutoSave(ctx, created)
	created.Content = "v3"
	service.AutoSave(ctx, created)

	require.Eventually(t, func() bool {
		listed := service.List(ctx)
		return len(listed) == 1 && listed[0].Content == "v3"
	}, time.Second, 5*time.Millisecond)

	// the superseded v2 snapshot must never land afterwards
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "v3", service.List(ctx)[0].Content)
}

func TestUpdate_CancelsPendingAutoSave(t *testing.T) {
	ctx := context.Background()
	service, _ := setupNoteService(t, 20*time.Millisecond)

	created, err := service.Create(ctx, Note{Title: "Draft", Type: TextNote, Content: "v1"})
	require.NoError(t, err)

	created.Content = "auto"
	service.AutoSave(ctx, created)

	created.Content = "explicit"
	_, err = service.Update(ctx, created)
	require.NoError(t, err)

	// the debounced snapshot must not overwrite the explicit save
	time.Sleep(50 * time.Millisecond)
	listed := service.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "explicit", listed[0].Content)
}

func TestDelete_CancelsPendingAutoSave(t *testing.T) {
	ctx := context.Background()
	service, _ := setupNoteService(t, 20*time.Millisecond)

	created, err := service.Create(ctx, Note{Title: "Draft", Type: TextNote, Content: "v1"})
	require.NoError(t, err)

	created.Content = "late edit"
	service.AutoSave(ctx, created)
	require.True(t, service.Delete(ctx, created.ID))

	// the pending auto-save must not resurrect the deleted note
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, service.List(ctx))
}
