package lrm

import (
	"errors"

	"github.com/example/backoffice/internal/api"
)

var (
	// ErrNotFound is returned when editing an entity absent from the mirror.
	ErrNotFound = errors.New("registro não encontrado, atualize a lista")
	// ErrValidation wraps client-side validation failures.
	ErrValidation = errors.New("validation failed")
)

// Kind classifies a failed operation.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindAPI
	KindTransport
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	}
	return "none"
}

// Classify maps err to its Kind. A 404 from the API counts as not found:
// the row was removed by someone else.
func Classify(err error) Kind {
	var apiErr *api.Error
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound), api.IsNotFound(err):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.As(err, &apiErr):
		return KindAPI
	}
	return KindTransport
}

// Result is the outcome of a mutation. Either OK is set, with the server
// message and whether the caller should close its modal, or Err and Kind
// describe the failure.
type Result struct {
	OK         bool
	Message    string
	ID         string
	CloseModal bool

	Err  error
	Kind Kind
}

// Succeeded builds a successful result.
func Succeeded(message, id string, closeModal bool) Result {
	return Result{OK: true, Message: message, ID: id, CloseModal: closeModal}
}

// Failed builds a failed result classified from err.
func Failed(err error) Result {
	return Result{Err: err, Kind: Classify(err)}
}
