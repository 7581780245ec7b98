package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	defaultTelegramURL = "https://api.telegram.org"
	// DefaultRepeatWindow is how long an identical alert is suppressed.
	DefaultRepeatWindow = 10 * time.Minute
)

// Telegram forwards warnings and errors to an admin chat.
type Telegram struct {
	botToken    string
	adminChatID string
	baseURL     string
	client      *http.Client
	minLevel    Level
	window      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	lastSent map[string]time.Time
	pending  sync.WaitGroup
}

// NewTelegram creates a Telegram notifier. It is inert when either the bot
// token or the chat id is empty.
func NewTelegram(botToken, adminChatID string) *Telegram {
	return &Telegram{
		botToken:    botToken,
		adminChatID: adminChatID,
		baseURL:     defaultTelegramURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		minLevel:    Warning,
		window:      DefaultRepeatWindow,
		now:         time.Now,
		lastSent:    make(map[string]time.Time),
	}
}

// WithRepeatWindow changes how long an identical alert is suppressed.
func (t *Telegram) WithRepeatWindow(d time.Duration) *Telegram {
	t.window = d
	return t
}

// WithBaseURL points the notifier at another Bot API host.
func (t *Telegram) WithBaseURL(u string) *Telegram {
	t.baseURL = u
	return t
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify sends n in the background when it is at least a warning. An alert
// identical to one sent within the repeat window is dropped. Failures are
// logged only.
func (t *Telegram) Notify(n Notification) {
	if n.Level < t.minLevel || t.botToken == "" || t.adminChatID == "" {
		return
	}
	if !t.claim(n) {
		return
	}

	text := format(n)
	t.pending.Add(1)
	go func() {
		defer t.pending.Done()
		if err := t.Send(text); err != nil {
			log.Printf("[Telegram] Failed to send message: %v", err)
		}
	}()
}

func (t *Telegram) claim(n Notification) bool {
	key := n.Level.String() + "|" + n.Message
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.lastSent[key]; ok && now.Sub(last) < t.window {
		return false
	}
	t.lastSent[key] = now
	for k, at := range t.lastSent {
		if now.Sub(at) >= t.window {
			delete(t.lastSent, k)
		}
	}
	return true
}

// Wait blocks until every message queued by Notify has been sent or failed.
func (t *Telegram) Wait() {
	t.pending.Wait()
}

// Send posts text to the admin chat.
func (t *Telegram) Send(text string) error {
	if t.botToken == "" || t.adminChatID == "" {
		return nil
	}

	body, err := json.Marshal(telegramMessage{ChatID: t.adminChatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return fmt.Errorf("marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	resp, err := t.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

func format(n Notification) string {
	icon := "⚠️"
	if n.Level == Error {
		icon = "❌"
	}
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}
	return fmt.Sprintf("%s <b>Painel da loja</b>\n%s\n<i>%s</i>", icon, html.EscapeString(n.Message), at.Format("02/01/2006 15:04:05"))
}
