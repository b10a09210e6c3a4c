package autosave

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.values = append(r.values, v)
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncer_RunsAfterDelay(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule("note-1", rec.record("v1"))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"v1"}, rec.snapshot())
}

func TestDebouncer_NewerScheduleSupersedesPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule("note-1", rec.record("stale"))
	time.Sleep(10 * time.Millisecond)
	d.Schedule("note-1", rec.record("latest"))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"latest"}, rec.snapshot())

	// the stale save must never fire afterwards
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"latest"}, rec.snapshot())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule("note-1", rec.record("a"))
	d.Schedule("note-2", rec.record("b"))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"a", "b"}, rec.snapshot())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule("note-1", rec.record("v1"))
	d.Cancel("note-1")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_CancelWaitsForInFlightSave(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	started := make(chan struct{})
	release := make(chan struct{})
	d.Schedule("note-1", func() {
		close(started)
		<-release
		rec.record("debounced")()
	})

	// the timer has fired and the save is blocked mid-write
	<-started

	cancelled := make(chan struct{})
	go func() {
		d.Cancel("note-1")
		rec.record("explicit")()
		close(cancelled)
	}()

	select {
	case <-cancelled:
		t.Fatal("Cancel returned while a save was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-cancelled

	// the write after Cancel must land after the in-flight save, never
	// the other way around
	assert.Equal(t, []string{"debounced", "explicit"}, rec.snapshot())
}

func TestDebouncer_FlushRunsImmediately(t *testing.T) {
	d := NewDebouncer(10 * time.Second)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule("note-1", rec.record("v1"))
	d.Flush("note-1")

	assert.Equal(t, []string{"v1"}, rec.snapshot())

	// flush with nothing pending is a no-op
	d.Flush("note-1")
	assert.Equal(t, []string{"v1"}, rec.snapshot())
}

func TestDebouncer_StopCancelsEverything(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	rec := &recorder{}

	d.Schedule("note-1", rec.record("a"))
	d.Schedule("note-2", rec.record("b"))
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
