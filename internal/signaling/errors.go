package signaling

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed     = errors.New("malformed message")
	ErrRoomRequired  = errors.New("room id is required")
	ErrAlreadyJoined = errors.New("already joined a room")
	ErrNotJoined     = errors.New("not joined to any room")
	ErrNoHost        = errors.New("room has no live host")
	ErrUnknownTarget = errors.New("target is not a member of this room")
	ErrUnknownType   = errors.New("unknown message type")
)

// ProtocolError wraps a protocol violation with the operation that
// rejected it. It is reported back to the sender as an error message;
// the connection stays open.
type ProtocolError struct {
	Op      string
	Err     error
	Details string
}

func (e *ProtocolError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func NewError(op string, err error) *ProtocolError {
	return &ProtocolError{Op: op, Err: err}
}

func WrapError(op string, err error, details string) *ProtocolError {
	return &ProtocolError{Op: op, Err: err, Details: details}
}
