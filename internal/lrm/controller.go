// Package lrm keeps an in-memory mirror of a server collection consistent
// with the backend across polling and single-entity mutations.
//
// Every read is tagged with a sequence number. A read result is applied only
// when it was issued after the last applied read and after the last
// completed mutation, so a poll that was in flight while a mutation
// completed can never overwrite the reconciled state.
package lrm

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/utils"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 4 * time.Second

const (
	loadFallback   = "Não foi possível carregar os dados"
	submitFallback = "Ocorreu um erro, tente novamente"
)

// Fetcher reads the collection for filter.
type Fetcher[T any] func(ctx context.Context, filter string) ([]T, error)

// Options configures a Controller.
type Options[T any] struct {
	Name  string
	Fetch Fetcher[T]
	Key   func(T) string
	// RequireFilter makes an empty filter yield an empty mirror without a
	// request.
	RequireFilter bool
	Filter        string
	Interval      time.Duration
	Notifier      notify.Notifier
	Validate      func(any) error
}

// Intent is the kind of mutation submitted.
type Intent int

const (
	Create Intent = iota
	Update
	Delete
	Action
)

func (i Intent) String() string {
	switch i {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "action"
}

// Mutation is a single-entity change sent to the server.
type Mutation struct {
	Intent Intent
	// ID is the row being changed; it keys the busy flag.
	ID string
	// Payload is validated before Send for Create and Update.
	Payload    any
	Send       func(ctx context.Context) (models.Message, error)
	CloseModal bool
}

// Controller is a List-Reconcile-Mutate controller over entities of type T.
type Controller[T any] struct {
	name          string
	fetch         Fetcher[T]
	key           func(T) string
	requireFilter bool
	interval      time.Duration
	notifier      notify.Notifier
	validate      func(any) error

	mu        sync.Mutex
	items     []T
	filter    string
	staged    *T
	stagedID  string
	busy      map[string]bool
	issued    uint64
	applied   uint64
	barrier   uint64
	inflight  int
	failing   bool
	listeners []func()
}

// New constructs a Controller.
func New[T any](opts Options[T]) *Controller[T] {
	c := &Controller[T]{
		name:          opts.Name,
		fetch:         opts.Fetch,
		key:           opts.Key,
		requireFilter: opts.RequireFilter,
		filter:        opts.Filter,
		interval:      opts.Interval,
		notifier:      opts.Notifier,
		validate:      opts.Validate,
		busy:          make(map[string]bool),
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.notifier == nil {
		c.notifier = notify.Discard
	}
	if c.validate == nil {
		c.validate = utils.ValidateStruct
	}
	return c
}

// OnChange registers fn to run after the mirror, staging or busy flags change.
func (c *Controller[T]) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller[T]) changed() {
	c.mu.Lock()
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (c *Controller[T]) emit(level notify.Level, msg string) {
	c.notifier.Notify(notify.Notification{Level: level, Message: msg, At: time.Now()})
}

// Items returns a copy of the mirror.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the mirrored entity with id.
func (c *Controller[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(id)
}

func (c *Controller[T]) findLocked(id string) (T, bool) {
	for _, item := range c.items {
		if c.key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the current filter.
func (c *Controller[T]) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading reports whether a read is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

// Busy reports whether a mutation keyed by key is in flight.
func (c *Controller[T]) Busy(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[key]
}

// SetFilter changes the filter and reads the collection for it. Reads issued
// for earlier filters are discarded.
func (c *Controller[T]) SetFilter(ctx context.Context, filter string) error {
	c.mu.Lock()
	c.filter = filter
	c.barrier = c.issued
	c.mu.Unlock()
	return c.Load(ctx)
}

// Load reads the collection once. On failure the mirror is kept and an
// error notification is emitted, once per run of consecutive failures.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	filter := c.filter
	if c.requireFilter && filter == "" {
		c.applied = seq
		c.items = nil
		c.mu.Unlock()
		c.changed()
		return nil
	}
	c.inflight++
	c.mu.Unlock()

	items, err := c.fetch(ctx, filter)

	c.mu.Lock()
	c.inflight--
	current := seq > c.applied && seq > c.barrier
	if err == nil {
		c.failing = false
		if current {
			c.items = items
			c.applied = seq
		}
	}
	// Only the first failure of an outage is reported.
	report := err != nil && current && ctx.Err() == nil && !c.failing
	if report {
		c.failing = true
	}
	c.mu.Unlock()

	if err != nil {
		if report {
			log.Printf("[LRM %s] load failed: %v", c.name, err)
			c.emit(notify.Error, api.MessageOf(err, loadFallback))
		}
		c.changed()
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	c.changed()
	return nil
}

// Reconcile discards every read issued so far and reads again.
func (c *Controller[T]) Reconcile(ctx context.Context) error {
	c.mu.Lock()
	c.barrier = c.issued
	c.mu.Unlock()
	return c.Load(ctx)
}

// BeginEdit copies the mirrored entity with id into staging. It returns
// ErrNotFound and a warning when the entity is no longer mirrored.
func (c *Controller[T]) BeginEdit(id string) (T, error) {
	c.mu.Lock()
	item, ok := c.findLocked(id)
	if ok {
		staged := item
		c.staged, c.stagedID = &staged, id
	} else {
		c.staged, c.stagedID = nil, ""
	}
	c.mu.Unlock()

	if !ok {
		c.emit(notify.Warning, ErrNotFound.Error())
		return item, ErrNotFound
	}
	c.changed()
	return item, nil
}

// CancelEdit discards staging.
func (c *Controller[T]) CancelEdit() {
	c.mu.Lock()
	c.staged, c.stagedID = nil, ""
	c.mu.Unlock()
	c.changed()
}

// Staging returns the staged entity and its id.
func (c *Controller[T]) Staging() (T, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.staged == nil {
		var zero T
		return zero, "", false
	}
	return *c.staged, c.stagedID, true
}

// Submit validates and sends m. On success staging is cleared, a success
// notification carries the server message and the collection is reconciled
// exactly once. On failure staging and the mirror are left untouched.
func (c *Controller[T]) Submit(ctx context.Context, m Mutation) Result {
	if (m.Intent == Create || m.Intent == Update) && m.Payload != nil {
		if err := c.validate(m.Payload); err != nil {
			c.emit(notify.Warning, utils.ValidationMessage(err))
			return Failed(fmt.Errorf("%w: %w", ErrValidation, err))
		}
	}

	key := m.ID
	if key == "" {
		key = m.Intent.String()
	}
	c.setBusy(key, true)
	msg, err := m.Send(ctx)
	c.setBusy(key, false)

	if err != nil {
		log.Printf("[LRM %s] %s %s failed: %v", c.name, m.Intent, m.ID, err)
		c.emit(notify.Error, api.MessageOf(err, submitFallback))
		return Failed(err)
	}

	c.mu.Lock()
	c.barrier = c.issued
	c.staged, c.stagedID = nil, ""
	c.mu.Unlock()

	c.emit(notify.Success, msg.Message)
	_ = c.Load(ctx)

	id := msg.ID
	if id == "" {
		id = m.ID
	}
	return Succeeded(msg.Message, id, m.CloseModal)
}

// Do runs a row action such as a delete or an active toggle keyed by id.
func (c *Controller[T]) Do(ctx context.Context, id string, intent Intent, send func(ctx context.Context) (models.Message, error)) Result {
	return c.Submit(ctx, Mutation{Intent: intent, ID: id, Send: send})
}

func (c *Controller[T]) setBusy(key string, busy bool) {
	c.mu.Lock()
	if busy {
		c.busy[key] = true
	} else {
		delete(c.busy, key)
	}
	c.mu.Unlock()
	c.changed()
}

// Run reads immediately and then on every tick until ctx is done. Each tick
// issues an independent read; late results are discarded by sequence.
func (c *Controller[T]) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	poll := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Load(ctx)
		}()
	}

	poll()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
