// Package upload implements the single-image upload flow: client-side size
// validation, a local preview and a multipart request carrying the file and
// its metadata.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/schema"

	"github.com/example/backoffice/internal/api"
	"github.com/example/backoffice/internal/lrm"
	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/notify"
	"github.com/example/backoffice/internal/utils"
)

// FileField is the multipart field holding the image.
const FileField = "file"

// DefaultMaxBytes is the largest accepted file, exclusive.
const DefaultMaxBytes = 500 * 1024

var (
	// ErrNoFile is returned when uploading with nothing selected.
	ErrNoFile = errors.New("nenhum arquivo selecionado")
	// ErrTooLarge is returned when the selected file exceeds the limit.
	ErrTooLarge = errors.New("arquivo muito grande")
)

// Sender performs the multipart request.
type Sender interface {
	Upload(ctx context.Context, method, path string, body io.Reader, contentType string) (models.Message, error)
}

// Target addresses an upload at a parent entity.
type Target struct {
	Method string
	Path   string
	// CloseOnSuccess is echoed back in the result so the caller knows
	// whether to dismiss its modal.
	CloseOnSuccess bool
}

// File is a selected image.
type File struct {
	Name string
	Data []byte
}

// SizeKB returns the file size in kilobytes with two decimals.
func (f File) SizeKB() float64 {
	return float64(int64(len(f.Data))*100/1024) / 100
}

// Uploader holds at most one selected file.
type Uploader struct {
	sender   Sender
	notifier notify.Notifier
	maxBytes int64
	encoder  *schema.Encoder

	mu       sync.Mutex
	file     *File
	tooLarge bool
	preview  string
}

// New constructs an Uploader. maxBytes <= 0 selects DefaultMaxBytes.
func New(sender Sender, notifier notify.Notifier, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Uploader{
		sender:   sender,
		notifier: notifier,
		maxBytes: maxBytes,
		encoder:  schema.NewEncoder(),
	}
}

func (u *Uploader) tooLargeMessage() string {
	return fmt.Sprintf("Arquivo muito grande insira um arquivo de até %dkb", u.maxBytes/1024)
}

// Select replaces the current selection, revoking the previous preview. It
// reports whether the new file may be uploaded; oversized files raise a
// warning and keep upload disabled.
func (u *Uploader) Select(name string, data []byte) bool {
	u.mu.Lock()
	u.revokeLocked()
	u.file = &File{Name: name, Data: data}
	u.tooLarge = int64(len(data)) >= u.maxBytes
	tooLarge := u.tooLarge
	u.mu.Unlock()

	if tooLarge {
		u.notifier.Notify(notify.Notification{Level: notify.Warning, Message: u.tooLargeMessage(), At: time.Now()})
	}
	return !tooLarge
}

// SelectPath reads a file from disk and selects it.
func (u *Uploader) SelectPath(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return u.Select(filepath.Base(path), data), nil
}

// Clear drops the selection and its preview.
func (u *Uploader) Clear() {
	u.mu.Lock()
	u.revokeLocked()
	u.file = nil
	u.tooLarge = false
	u.mu.Unlock()
}

// clearIf clears the selection only when it is still sent, keeping a file
// chosen while the upload was in flight.
func (u *Uploader) clearIf(sent *File) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.file != sent {
		return
	}
	u.revokeLocked()
	u.file = nil
	u.tooLarge = false
}

// Selection returns the selected file.
func (u *Uploader) Selection() (File, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.file == nil {
		return File{}, false
	}
	return *u.file, true
}

// CanUpload reports whether a file is selected and within the limit.
func (u *Uploader) CanUpload() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.file != nil && !u.tooLarge
}

// Preview writes the selection to a temporary file and returns its path.
// The file is removed when the selection is replaced or cleared.
func (u *Uploader) Preview() (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.file == nil {
		return "", ErrNoFile
	}
	if u.preview != "" {
		return u.preview, nil
	}
	f, err := os.CreateTemp("", "preview-*"+filepath.Ext(u.file.Name))
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(u.file.Data); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write preview: %w", err)
	}
	u.preview = f.Name()
	return u.preview, nil
}

func (u *Uploader) revokeLocked() {
	if u.preview == "" {
		return
	}
	if err := os.Remove(u.preview); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[Upload] Failed to remove preview %s: %v", u.preview, err)
	}
	u.preview = ""
}

// Upload sends the selection with meta encoded as form fields. meta may be
// nil, a url.Values, a map[string]string or a struct with schema tags. On
// success the sent selection is cleared; on failure it is kept for a retry.
func (u *Uploader) Upload(ctx context.Context, t Target, meta any) lrm.Result {
	u.mu.Lock()
	file, tooLarge := u.file, u.tooLarge
	u.mu.Unlock()

	if file == nil {
		return u.warn(ErrNoFile, "Selecione uma imagem")
	}
	if tooLarge {
		return u.warn(ErrTooLarge, u.tooLargeMessage())
	}

	fields, err := u.fields(meta)
	if err != nil {
		return u.warn(err, utils.ValidationMessage(err))
	}

	body, contentType, err := encode(*file, fields)
	if err != nil {
		return lrm.Failed(err)
	}

	msg, err := u.sender.Upload(ctx, t.Method, t.Path, body, contentType)
	if err != nil {
		log.Printf("[Upload] %s %s failed: %v", t.Method, t.Path, err)
		u.notifier.Notify(notify.Notification{
			Level:   notify.Error,
			Message: api.MessageOf(err, "Erro ao enviar a imagem"),
			At:      time.Now(),
		})
		return lrm.Failed(err)
	}

	u.notifier.Notify(notify.Notification{Level: notify.Success, Message: msg.Message, At: time.Now()})
	u.clearIf(file)
	return lrm.Succeeded(msg.Message, msg.ID, t.CloseOnSuccess)
}

func (u *Uploader) warn(err error, msg string) lrm.Result {
	u.notifier.Notify(notify.Notification{Level: notify.Warning, Message: msg, At: time.Now()})
	return lrm.Failed(fmt.Errorf("%w: %w", lrm.ErrValidation, err))
}

func (u *Uploader) fields(meta any) (url.Values, error) {
	switch m := meta.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return m, nil
	case map[string]string:
		values := url.Values{}
		for k, v := range m {
			values.Set(k, v)
		}
		return values, nil
	}
	if err := utils.ValidateStruct(meta); err != nil {
		return nil, err
	}
	values := url.Values{}
	if err := u.encoder.Encode(meta, values); err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return values, nil
}

func encode(file File, fields url.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(FileField, file.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
