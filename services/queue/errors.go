package queue

import "fmt"

// Kind classifies coordinator failures so transports can map them.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation"
	KindTransient  Kind = "transient"
)

// Error is returned by every QueueService operation. Conflict errors carry
// enough context for the caller to recover: the current Position for a
// duplicate join, or the other provider for a join while queued elsewhere.
type Error struct {
	Kind         Kind
	Message      string
	Position     *int
	ProviderID   string
	ProviderName string
	Err          error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, so errors.Is(err, queue.ErrConflict) works for any conflict.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict   = &Error{Kind: KindConflict, Message: "conflict"}
	ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrTransient  = &Error{Kind: KindTransient, Message: "transient failure"}
)

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

func alreadyQueuedHere(position int) *Error {
	return &Error{
		Kind:     KindConflict,
		Message:  fmt.Sprintf("customer is already in this queue at position %d", position),
		Position: &position,
	}
}

func queuedElsewhere(providerID, providerName string) *Error {
	return &Error{
		Kind:         KindConflict,
		Message:      fmt.Sprintf("customer is already queued at %s", providerName),
		ProviderID:   providerID,
		ProviderName: providerName,
	}
}
