package lrm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
)

type size struct {
	ID   string
	Size string `validate:"required"`
}

// backend is an in-memory collection whose reads can be held open.
type backend struct {
	mu    sync.Mutex
	rows  []size
	calls []string
	hold  chan struct{}
	fail  error
}

func (b *backend) fetch(ctx context.Context, filter string) ([]size, error) {
	b.mu.Lock()
	b.calls = append(b.calls, filter)
	snapshot := append([]size(nil), b.rows...)
	hold, fail := b.hold, b.fail
	b.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return snapshot, fail
}

func (b *backend) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.rows[:0]
	for _, r := range b.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	b.rows = kept
}

func newController(b *backend, tray *notify.Tray) *Controller[size] {
	return New(Options[size]{
		Name:     "sizes",
		Fetch:    b.fetch,
		Key:      func(s size) string { return s.ID },
		Notifier: tray,
		Filter:   "p1",
	})
}

func ids(items []size) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestUpdateIsVisibleAfterReconcile(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)
	require.NoError(t, c.Load(context.Background()))

	staged, err := c.BeginEdit("s1")
	require.NoError(t, err)
	staged.Size = "GG"

	res := c.Submit(context.Background(), Mutation{
		Intent:  Update,
		ID:      "s1",
		Payload: staged,
		Send: func(ctx context.Context) (models.Message, error) {
			b.mu.Lock()
			b.rows[0] = staged
			b.mu.Unlock()
			return models.Message{Message: "Tamanho atualizado"}, nil
		},
		CloseModal: true,
	})

	require.True(t, res.OK)
	assert.True(t, res.CloseModal)
	assert.Equal(t, "Tamanho atualizado", res.Message)
	assert.Equal(t, "GG", c.Items()[0].Size)
	_, _, ok := c.Staging()
	assert.False(t, ok)

	notes := tray.All()
	require.NotEmpty(t, notes)
	assert.Equal(t, notify.Success, notes[len(notes)-1].Level)
	assert.Equal(t, "Tamanho atualizado", notes[len(notes)-1].Message)
}

func TestSubmitTriggersExactlyOneRead(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	c := newController(b, notify.NewTray(time.Minute))

	res := c.Do(context.Background(), "s1", Delete, func(ctx context.Context) (models.Message, error) {
		b.remove("s1")
		return models.Message{Message: "ok"}, nil
	})
	require.True(t, res.OK)
	assert.Len(t, b.calls, 1)
}

func TestDeleteWhileStalePollInFlight(t *testing.T) {
	for _, staleFirst := range []bool{true, false} {
		b := &backend{rows: []size{{ID: "s1", Size: "P"}, {ID: "s2", Size: "M"}}}
		c := newController(b, notify.NewTray(time.Minute))
		require.NoError(t, c.Load(context.Background()))

		release := make(chan struct{})
		b.mu.Lock()
		b.hold = release
		b.mu.Unlock()

		stale := make(chan struct{})
		go func() {
			defer close(stale)
			_ = c.Load(context.Background())
		}()
		require.Eventually(t, func() bool { return c.Loading() }, time.Second, time.Millisecond)

		b.mu.Lock()
		b.hold = nil
		b.mu.Unlock()

		if staleFirst {
			close(release)
			<-stale
		}

		res := c.Do(context.Background(), "s1", Delete, func(ctx context.Context) (models.Message, error) {
			b.remove("s1")
			return models.Message{Message: "Tamanho excluído"}, nil
		})
		require.True(t, res.OK)

		if !staleFirst {
			close(release)
			<-stale
		}

		assert.Equal(t, []string{"s2"}, ids(c.Items()), "staleFirst=%v", staleFirst)
	}
}

func TestLoadFailureKeepsMirror(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)
	require.NoError(t, c.Load(context.Background()))

	b.fail = &api.Error{StatusCode: http.StatusInternalServerError, Message: "banco indisponível"}
	b.rows = nil
	err := c.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"s1"}, ids(c.Items()))
	notes := tray.All()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Error, notes[0].Level)
	assert.Equal(t, "banco indisponível", notes[0].Message)
}

func TestSubmitFailureKeepsStaging(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)
	require.NoError(t, c.Load(context.Background()))
	_, err := c.BeginEdit("s1")
	require.NoError(t, err)

	res := c.Submit(context.Background(), Mutation{
		Intent:  Update,
		ID:      "s1",
		Payload: size{ID: "s1", Size: "G"},
		Send: func(ctx context.Context) (models.Message, error) {
			return models.Message{}, errors.New("connection reset")
		},
	})

	assert.False(t, res.OK)
	assert.Equal(t, KindTransport, res.Kind)
	_, id, ok := c.Staging()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)
	assert.Equal(t, submitFallback, tray.All()[0].Message)
	assert.False(t, c.Busy("s1"))
}

func TestValidationFailsBeforeRequest(t *testing.T) {
	b := &backend{}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)

	var sent atomic.Bool
	res := c.Submit(context.Background(), Mutation{
		Intent:  Create,
		Payload: size{},
		Send: func(ctx context.Context) (models.Message, error) {
			sent.Store(true)
			return models.Message{}, nil
		},
	})

	assert.False(t, res.OK)
	assert.Equal(t, KindValidation, res.Kind)
	assert.ErrorIs(t, res.Err, ErrValidation)
	assert.False(t, sent.Load())
	require.Len(t, tray.All(), 1)
	assert.Equal(t, notify.Warning, tray.All()[0].Level)
	assert.Equal(t, "Insira um tamanho", tray.All()[0].Message)
}

func TestBeginEditMissingEntity(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.BeginEdit("gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, Classify(err))
	_, _, ok := c.Staging()
	assert.False(t, ok)
	assert.Equal(t, notify.Warning, tray.All()[0].Level)
}

func TestEmptyFilterIssuesNoRequest(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	c := New(Options[size]{
		Name:          "sizes",
		Fetch:         b.fetch,
		Key:           func(s size) string { return s.ID },
		RequireFilter: true,
	})

	require.NoError(t, c.Load(context.Background()))
	assert.Empty(t, c.Items())
	assert.Empty(t, b.calls)

	require.NoError(t, c.SetFilter(context.Background(), "p1"))
	assert.Len(t, c.Items(), 1)

	require.NoError(t, c.SetFilter(context.Background(), ""))
	assert.Empty(t, c.Items())
	assert.Equal(t, []string{"p1"}, b.calls)
}

func TestRunPollsOnInterval(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	c := New(Options[size]{
		Name:     "sizes",
		Fetch:    b.fetch,
		Key:      func(s size) string { return s.ID },
		Interval: 10 * time.Millisecond,
	})

	var changes atomic.Int32
	c.OnChange(func() { changes.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.calls) >= 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Positive(t, changes.Load())
	assert.Len(t, c.Items(), 1)
}

func TestLoadFailureReportedOncePerOutage(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}}}
	tray := notify.NewTray(time.Minute)
	c := newController(b, tray)
	require.NoError(t, c.Load(context.Background()))

	b.fail = errors.New("connection refused")
	for i := 0; i < 5; i++ {
		require.Error(t, c.Load(context.Background()))
	}
	require.Len(t, tray.All(), 1)
	assert.Equal(t, loadFallback, tray.All()[0].Message)

	b.fail = nil
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, tray.All(), 1)

	b.fail = errors.New("connection refused")
	require.Error(t, c.Load(context.Background()))
	assert.Len(t, tray.All(), 2)
}

func TestRunDuringOutageNotifiesOnce(t *testing.T) {
	b := &backend{fail: errors.New("connection refused")}
	tray := notify.NewTray(time.Minute)
	c := New(Options[size]{
		Name:     "sizes",
		Fetch:    b.fetch,
		Key:      func(s size) string { return s.ID },
		Interval: 5 * time.Millisecond,
		Notifier: tray,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.calls) >= 10
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Len(t, tray.All(), 1)
}

func TestSetFilterDiscardsReadsForEarlierFilter(t *testing.T) {
	release := make(chan struct{})
	c := New(Options[size]{
		Name: "sizes",
		Key:  func(s size) string { return s.ID },
		Fetch: func(ctx context.Context, productID string) ([]size, error) {
			if productID == "p1" {
				<-release
				return []size{{ID: "old", Size: "P"}}, nil
			}
			return []size{{ID: "new", Size: "G"}}, nil
		},
		RequireFilter: true,
	})

	ctx := context.Background()
	first := make(chan error, 1)
	go func() { first <- c.SetFilter(ctx, "p1") }()
	require.Eventually(t, c.Loading, time.Second, time.Millisecond)

	require.NoError(t, c.SetFilter(ctx, "p2"))
	close(release)
	require.NoError(t, <-first)

	assert.Equal(t, []string{"new"}, ids(c.Items()))
	assert.Equal(t, "p2", c.Filter())
}

func TestBusyWhileMutationInFlight(t *testing.T) {
	b := &backend{rows: []size{{ID: "s1", Size: "P"}, {ID: "s2", Size: "M"}}}
	c := newController(b, notify.NewTray(time.Minute))
	require.NoError(t, c.Load(context.Background()))

	var rowBusy, otherBusy bool
	res := c.Do(context.Background(), "s1", Delete, func(ctx context.Context) (models.Message, error) {
		rowBusy, otherBusy = c.Busy("s1"), c.Busy("s2")
		b.remove("s1")
		return models.Message{Message: "Tamanho excluído"}, nil
	})
	require.True(t, res.OK)
	assert.True(t, rowBusy)
	assert.False(t, otherBusy)
	assert.False(t, c.Busy("s1"))

	var createBusy bool
	res = c.Submit(context.Background(), Mutation{
		Intent:  Create,
		Payload: size{Size: "G"},
		Send: func(ctx context.Context) (models.Message, error) {
			createBusy = c.Busy(Create.String())
			return models.Message{Message: "ok", ID: "s3"}, nil
		},
	})
	require.True(t, res.OK)
	assert.True(t, createBusy)
	assert.False(t, c.Busy(Create.String()))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindNotFound, Classify(ErrNotFound))
	assert.Equal(t, KindNotFound, Classify(&api.Error{StatusCode: http.StatusNotFound, Message: "Tamanho não encontrado"}))
	assert.Equal(t, KindAPI, Classify(&api.Error{StatusCode: http.StatusConflict}))
	assert.Equal(t, KindValidation, Classify(fmt.Errorf("%w: name", ErrValidation)))
	assert.Equal(t, KindTransport, Classify(&api.TransportError{Op: "GET /sizes", Err: errors.New("reset")}))
}
