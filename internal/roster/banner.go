package roster

import (
	"sync"
	"time"
)

// FeedbackDelay is how long a message stays visible.
const FeedbackDelay = 5 * time.Second

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

// AfterFunc is the default Scheduler.
func AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Banner owns the single feedback slot. Each Show starts a new generation
// and schedules a hide for it; a hide whose generation has been superseded
// does nothing, so an old timer never clears a newer message.
type Banner struct {
	box      MessageBox
	delay    time.Duration
	schedule Scheduler

	mu      sync.Mutex
	gen     uint64
	visible bool
	text    string
	kind    Kind
}

// NewBanner binds a Banner to box. A nil schedule uses AfterFunc.
func NewBanner(box MessageBox, delay time.Duration, schedule Scheduler) *Banner {
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Banner{box: box, delay: delay, schedule: schedule}
}

// Show displays text, replacing any current message, and restarts the
// auto-hide window.
func (b *Banner) Show(text string, kind Kind) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.visible, b.text, b.kind = true, text, kind
	b.box.Display(text, kind)
	b.mu.Unlock()

	b.schedule(b.delay, func() { b.expire(gen) })
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen || !b.visible {
		return
	}
	b.visible = false
	b.box.Hide()
}

// State reports what the slot currently shows.
func (b *Banner) State() (visible bool, text string, kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible, b.text, b.kind
}
