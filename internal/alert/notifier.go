// Package alert renders transient, dismissible status messages. Alerts
// expire on their own after a fixed lifetime; the stack is capped with FIFO
// eviction so rapid repeated failures cannot grow it without bound.
package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Level is the alert severity.
type Level string

const (
	Success Level = "success"
	Warning Level = "warning"
	Danger  Level = "danger"
)

// DefaultTTL is how long an alert stays visible unless dismissed earlier.
const DefaultTTL = 5 * time.Second

// DefaultCap is the maximum number of stacked alerts before the oldest is
// evicted.
const DefaultCap = 5

// Alert is one visible notification.
type Alert struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Notifier owns the alert stack. The zero value is not usable; create one
// with NewNotifier.
type Notifier struct {
	mu     sync.Mutex
	alerts []Alert
	timers map[string]*time.Timer
	max    int
	ttl    time.Duration
	logger *zap.Logger
}

// NewNotifier creates a notifier. Non-positive max or ttl fall back to the
// defaults.
func NewNotifier(max int, ttl time.Duration, logger *zap.Logger) *Notifier {
	if max <= 0 {
		max = DefaultCap
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		timers: map[string]*time.Timer{},
		max:    max,
		ttl:    ttl,
		logger: logger,
	}
}

// Push adds an alert and returns its ID. When the stack is full the oldest
// alert is dismissed first. Duplicate messages stack; there is no
// deduplication.
func (n *Notifier) Push(level Level, message string) string {
	a := Alert{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	for len(n.alerts) >= n.max {
		evicted := n.alerts[0]
		n.alerts = n.alerts[1:]
		n.stopTimerLocked(evicted.ID)
	}
	n.alerts = append(n.alerts, a)
	n.timers[a.ID] = time.AfterFunc(n.ttl, func() { n.Dismiss(a.ID) })
	n.mu.Unlock()

	n.logger.Debug("alert shown", zap.String("level", string(level)), zap.String("message", message))
	return a.ID
}

// Success pushes a success-level alert.
func (n *Notifier) Success(message string) { n.Push(Success, message) }

// Warning pushes a warning-level alert.
func (n *Notifier) Warning(message string) { n.Push(Warning, message) }

// Danger pushes a danger-level alert.
func (n *Notifier) Danger(message string) { n.Push(Danger, message) }

// Dismiss removes the alert with the given ID. Unknown IDs are ignored, so
// an expiry racing a manual dismissal is harmless.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, a := range n.alerts {
		if a.ID == id {
			n.alerts = append(n.alerts[:i], n.alerts[i+1:]...)
			break
		}
	}
	n.stopTimerLocked(id)
}

// Active returns the currently visible alerts, oldest first.
func (n *Notifier) Active() []Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Alert(nil), n.alerts...)
}

// Close stops all pending expiry timers and clears the stack.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
	n.alerts = nil
}

func (n *Notifier) stopTimerLocked(id string) {
	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
}
