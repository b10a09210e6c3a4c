// Package autosave schedules debounced saves for in-progress edits. Each
// entity being edited is tracked under its own key; scheduling a newer save
// cancels the pending one, so an older snapshot can never be written after a
// newer one was scheduled.
package autosave

import (
	"sync"
	"time"
)

type pendingSave struct {
	timer *time.Timer
	save  func()
	gen   uint64
}

type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingSave
	gens    map[string]uint64
	// running serializes save execution per key. Cancel and Flush block on
	// it, so a save whose timer already fired is finished before they
	// return and the caller's own write cannot be overwritten.
	running map[string]*sync.Mutex
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*pendingSave),
		gens:    make(map[string]uint64),
		running: make(map[string]*sync.Mutex),
	}
}

func (d *Debouncer) runLock(key string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.running[key]
	if !ok {
		l = &sync.Mutex{}
		d.running[key] = l
	}
	return l
}

// Schedule queues save to run after the configured delay. A save already
// pending for the same key is superseded and will not fire.
func (d *Debouncer) Schedule(key string, save func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gens[key]++
	gen := d.gens[key]

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	p := &pendingSave{save: save, gen: gen}
	p.timer = time.AfterFunc(d.delay, func() {
		lock := d.runLock(key)
		lock.Lock()
		defer lock.Unlock()

		d.mu.Lock()
		// a newer schedule or a cancel may have raced the timer firing
		if d.gens[key] != gen {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		save()
	})
	d.pending[key] = p
}

// Cancel drops any pending save for key without running it. When the save's
// timer has already fired, Cancel blocks until the save finishes, so the
// caller can write immediately after Cancel returns.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	d.gens[key]++
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	// wait out an in-flight save
	lock := d.runLock(key)
	lock.Lock()
	lock.Unlock()
}

// Flush runs the pending save for key immediately, if there is one. Used
// when an edit session ends and the latest state must land right away.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		d.gens[key]++
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	lock := d.runLock(key)
	lock.Lock()
	defer lock.Unlock()
	if ok {
		p.save()
	}
}

// FlushAll runs every pending save immediately, so in-flight edits are not
// lost on shutdown.
func (d *Debouncer) FlushAll() {
	type flush struct {
		key  string
		save func()
	}

	d.mu.Lock()
	flushes := make([]flush, 0, len(d.pending))
	for key, p := range d.pending {
		d.gens[key]++
		p.timer.Stop()
		delete(d.pending, key)
		flushes = append(flushes, flush{key: key, save: p.save})
	}
	d.mu.Unlock()

	for _, f := range flushes {
		lock := d.runLock(f.key)
		lock.Lock()
		f.save()
		lock.Unlock()
	}
}

// Stop cancels every pending save and waits for in-flight ones. Called on
// shutdown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	for key, p := range d.pending {
		d.gens[key]++
		p.timer.Stop()
		delete(d.pending, key)
	}
	locks := make([]*sync.Mutex, 0, len(d.running))
	for _, l := range d.running {
		locks = append(locks, l)
	}
	d.mu.Unlock()

	for _, l := range locks {
		l.Lock()
		l.Unlock()
	}
}
