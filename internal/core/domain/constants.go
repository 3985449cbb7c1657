package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrCommandNotFound    = errors.New("command not found")
	ErrFetchFailed        = errors.New("failed to fetch updates")
	ErrInvalidEntitySpan  = errors.New("entity span out of range")

	// ErrSkip marks an update that carries nothing to dispatch. It is not a failure.
	ErrSkip       = errors.New("nothing to dispatch")
	ErrNoMessage  = fmt.Errorf("%w: update has no message", ErrSkip)
	ErrNoText     = fmt.Errorf("%w: message has no text", ErrSkip)
	ErrNoEntities = fmt.Errorf("%w: message has no entities", ErrSkip)
)
