package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayExpiresAfterTTL(t *testing.T) {
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	tray := NewTray(3 * time.Second)
	tray.now = func() time.Time { return start }

	tray.Notify(Notification{Level: Success, Message: "Categoria criada"})
	tray.Notify(Notification{Level: Error, Message: "falhou", TTL: 10 * time.Second})

	assert.Len(t, tray.Active(start.Add(time.Second)), 2)

	active := tray.Active(start.Add(3 * time.Second))
	require.Len(t, active, 1)
	assert.Equal(t, "falhou", active[0].Message)

	assert.Empty(t, tray.Active(start.Add(11*time.Second)))
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewTray(time.Minute), NewTray(time.Minute)
	Multi{a, nil, b}.Notify(Notification{Level: Info, Message: "ok"})
	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)
}

func TestTelegramForwardsWarningsOnly(t *testing.T) {
	var mu sync.Mutex
	var got []telegramMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		var msg telegramMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "42").WithBaseURL(srv.URL)
	tg.Notify(Notification{Level: Success, Message: "fine"})
	tg.Notify(Notification{Level: Error, Message: "<boom>"})
	tg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "42", got[0].ChatID)
	assert.Contains(t, got[0].Text, "&lt;boom&gt;")
}

func TestTelegramInertWithoutConfig(t *testing.T) {
	assert.NoError(t, NewTelegram("", "").Send("hello"))
}

func TestTelegramDropsRepeatedAlerts(t *testing.T) {
	var mu sync.Mutex
	sent := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		sent++
		mu.Unlock()
	}))
	defer srv.Close()

	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	tg := NewTelegram("TOKEN", "42").WithBaseURL(srv.URL).WithRepeatWindow(time.Minute)
	tg.now = func() time.Time { return clock }

	for i := 0; i < 20; i++ {
		tg.Notify(Notification{Level: Error, Message: "Não foi possível carregar os dados"})
	}
	tg.Notify(Notification{Level: Warning, Message: "Pagamento recusado"})
	tg.Wait()

	mu.Lock()
	assert.Equal(t, 2, sent)
	mu.Unlock()

	clock = clock.Add(time.Minute)
	tg.Notify(Notification{Level: Error, Message: "Não foi possível carregar os dados"})
	tg.Wait()

	mu.Lock()
	assert.Equal(t, 3, sent)
	mu.Unlock()
}

func TestTelegramDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()

	tg := NewTelegram("TOKEN", "42").WithBaseURL(srv.URL)
	returned := make(chan struct{})
	go func() {
		tg.Notify(Notification{Level: Error, Message: "API fora do ar"})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify waited for the Bot API")
	}
	close(release)
	tg.Wait()
}
