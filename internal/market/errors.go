package market

import "errors"

var (
	// ErrConfiguration reports an invalid pool or game configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidDecision reports a decision for an inactive phase or with an
	// unacceptable value. The caller is expected to re-prompt.
	ErrInvalidDecision = errors.New("invalid decision")
	// ErrIncompleteRound reports settlement attempted before every active
	// decision was collected.
	ErrIncompleteRound = errors.New("incomplete round")

	ErrUnknownPlayer   = errors.New("unknown player")
	ErrUnknownGroup    = errors.New("unknown group")
	ErrNotSeller       = errors.New("player is not a seller")
	ErrSessionFinished = errors.New("session finished")
)
