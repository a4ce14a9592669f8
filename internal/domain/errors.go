package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation          = errors.New("validation")
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate")
	ErrDuplicateTable      = errors.New("duplicate table number")
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrNoOpenOrder         = errors.New("no open order")
	ErrPending             = errors.New("request already in flight")
	ErrUnavailable         = errors.New("service unavailable")
	ErrRemote              = errors.New("remote failure")
)

const (
	msgNoOpenOrder = "no open order found"
	msgUnavailable = "service unavailable"
)

// RemoteError is a failure reported by a remote collaborator. Error returns the
// short operator-facing message; errors.Is matches Kind and Cause.
type RemoteError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

var noOpenOrderPrefixes = []string{
	"no se encontró un pedido abierto",
	"no open order",
}

// IsNoOpenOrderMessage recognises the sales service's "no open order for table" reply.
func IsNoOpenOrderMessage(msg string) bool {
	m := strings.ToLower(strings.TrimSpace(msg))
	for _, p := range noOpenOrderPrefixes {
		if strings.HasPrefix(m, p) {
			return true
		}
	}
	return false
}

func NoOpenOrder() *RemoteError {
	return &RemoteError{Kind: ErrNoOpenOrder, Message: msgNoOpenOrder}
}

func Unavailable(cause error) *RemoteError {
	return &RemoteError{Kind: ErrUnavailable, Message: msgUnavailable, Cause: cause}
}

// Short returns a message fit for showing to the operator.
func Short(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Error()
	}
	switch {
	case errors.Is(err, ErrNoOpenOrder):
		return msgNoOpenOrder
	case errors.Is(err, ErrUnavailable):
		return msgUnavailable
	}
	return err.Error()
}
