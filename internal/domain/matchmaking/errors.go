package matchmaking

import "errors"

// Sentinel errors for every expected failure of an engine operation. All of
// them describe routine conditions; callers branch with errors.Is and render
// their own messaging.
var (
	ErrNotFound            = errors.New("matchmaking entity not found")
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrPermissionDenied    = errors.New("player not allowed to perform this transition")
	ErrInsufficientPlayers = errors.New("not enough players in queue")
	ErrUnresolvable        = errors.New("match result rejected twice, escalation required")
	ErrAlreadyQueued       = errors.New("player already queued")
)
