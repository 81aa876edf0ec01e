package upstream

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnreachable Kind = iota + 1
	KindStatus
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "upstream_unreachable"
	case KindStatus:
		return "upstream_error"
	case KindMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error describes a failed upstream call. Status is set only for KindStatus.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Malformed returns a KindMalformed error for op.
func Malformed(op, msg string, err error) *Error {
	return &Error{Op: op, Kind: KindMalformed, Message: msg, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return 0, false
}
