// Package notify re-evaluates due-date state on a timer and emits
// notification events. It only reads the record store; delivery belongs to
// whatever Notifier is plugged in, and repeated events for a condition that
// is still true are expected rather than deduplicated.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/status"
	"github.com/ptarn/cadence/internal/store"
)

// DefaultInterval is how often the watcher re-checks when the config does
// not say otherwise.
const DefaultInterval = time.Hour

// Icon is attached to every emitted event.
const Icon = "notification-icon.png"

// Event is one notification to surface to the user.
type Event struct {
	Title string
	Body  string
	Icon  string
}

// Notifier delivers events. Implementations own permission handling and
// retries; the watcher's obligation ends at Notify.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f.
func (f NotifierFunc) Notify(e Event) { f(e) }

// Watcher periodically checks the store and emits events for every company
// that is overdue or due today.
type Watcher struct {
	store    *store.Store
	notifier Notifier
	interval time.Duration

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher over the given store. A non-positive
// interval falls back to DefaultInterval.
func NewWatcher(s *store.Store, n Notifier, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{store: s, notifier: n, interval: interval}
}

// Start launches the check loop in a goroutine. An initial check fires
// immediately. Starting a running watcher is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.Check(model.Today())
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				w.Check(model.Today())
			}
		}
	}()
}

// Stop halts the check loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

// Check runs a single evaluation as of the given date and emits one event
// per overdue or due-today company. Disabled notifications suppress all
// events.
func (w *Watcher) Check(today model.Date) {
	state := w.store.State()
	if !state.Settings.NotificationsEnabled {
		return
	}

	for _, company := range status.OverdueCompanies(state, today) {
		w.notifier.Notify(Event{
			Title: "Overdue Communication",
			Body:  fmt.Sprintf("Communication with %s is overdue", company.Name),
			Icon:  Icon,
		})
	}
	for _, company := range status.DueTodayCompanies(state, today) {
		w.notifier.Notify(Event{
			Title: "Communication Due Today",
			Body:  fmt.Sprintf("Communication with %s is due today", company.Name),
			Icon:  Icon,
		})
	}
}
