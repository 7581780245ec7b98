// Package notify delivers transient operator notifications.
package notify

import (
	"log"
	"sort"
	"sync"
	"time"
)

// Level is the severity of a notification.
type Level int

const (
	Success Level = iota
	Info
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Notification is one message shown to the operator.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
	TTL     time.Duration
}

// Expired reports whether n should no longer be displayed at now.
func (n Notification) Expired(now time.Time) bool {
	return n.TTL > 0 && !now.Before(n.At.Add(n.TTL))
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Multi fans a notification out to every notifier.
type Multi []Notifier

// Notify forwards n to each member.
func (m Multi) Notify(n Notification) {
	for _, target := range m {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Tray keeps notifications in memory until their TTL elapses.
type Tray struct {
	mu    sync.Mutex
	items []Notification
	ttl   time.Duration
	now   func() time.Time
}

// NewTray creates a tray whose notifications auto-dismiss after ttl.
func NewTray(ttl time.Duration) *Tray {
	return &Tray{ttl: ttl, now: time.Now}
}

// Notify stores n, stamping its time and TTL when unset.
func (t *Tray) Notify(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n.At.IsZero() {
		n.At = t.now()
	}
	if n.TTL == 0 {
		n.TTL = t.ttl
	}
	t.items = append(t.items, n)
}

// Active drops expired notifications and returns the rest, oldest first.
func (t *Tray) Active(now time.Time) []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.items[:0]
	for _, n := range t.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	t.items = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// All returns every notification received, including expired ones that
// have not been swept by Active yet.
func (t *Tray) All() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Notification, len(t.items))
	copy(out, t.items)
	return out
}

// Dismiss removes every notification.
func (t *Tray) Dismiss() {
	t.mu.Lock()
	t.items = nil
	t.mu.Unlock()
}

// Logger mirrors notifications into a standard logger.
type Logger struct {
	Log *log.Logger
}

// Notify writes n as a single log line.
func (l Logger) Notify(n Notification) {
	logger := l.Log
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[%s] %s", n.Level, n.Message)
}
