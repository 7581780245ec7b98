package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/notify"
)

func TestWatcherRedrawsWholeFrames(t *testing.T) {
	var out bytes.Buffer
	tray := notify.NewTray(time.Minute)
	tray.Notify(notify.Notification{Level: notify.Error, Message: "Não foi possível carregar os dados"})
	w := newWatcher(context.Background(), tray, &out)

	render := func() {
		out.WriteString("begin\n")
		time.Sleep(time.Millisecond)
		out.WriteString("end\n")
	}
	var changed func()
	run := func(ctx context.Context) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				changed()
			}()
		}
		wg.Wait()
	}
	w.watch(func(fn func()) { changed = fn }, render, run)

	frames := strings.Split(out.String(), "\033[H\033[2J")[1:]
	require.Len(t, frames, 9)
	for _, f := range frames {
		assert.Equal(t, "begin\nend\n\nerror: Não foi possível carregar os dados\n", f)
	}
}

type scopeStub struct {
	selected []string
	err      error
}

func (s *scopeStub) SelectProduct(ctx context.Context, productID string) error {
	s.selected = append(s.selected, productID)
	return s.err
}

func (s *scopeStub) Delete(ctx context.Context, id string) lrm.Result {
	return lrm.Result{}
}

func TestWatchProduct(t *testing.T) {
	s := &scopeStub{}
	assert.Error(t, watchProduct(context.Background(), s, ""))
	assert.Empty(t, s.selected)

	s.err = errors.New("load sizes: connection refused")
	assert.NoError(t, watchProduct(context.Background(), s, "p1"))
	assert.Equal(t, []string{"p1"}, s.selected)
}
