package holdem

import "errors"

var ErrBoardCountMismatch = errors.New("action count does not match NUM_BOARDS")

// InvalidStateError marks an engine-internal invariant violation (stack
// underflow, negative pot; a wrong action count is reported separately as
// ErrBoardCountMismatch): a bug, not a player
// fault. Per §7 the match driver must not let one of these corrupt the
// log; it aborts the round with zero deltas instead of propagating a panic.
type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
