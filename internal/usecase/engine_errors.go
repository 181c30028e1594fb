package usecase

import (
	"errors"
	"fmt"

	"github.com/openmix/mixqueue/internal/domain/matchmaking"
)

// mapEngineError lifts engine sentinels into the service taxonomy so the
// transport layer can classify failures without importing the engine package.
// The original chain stays attached for errors.Is on engine sentinels.
func mapEngineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matchmaking.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, matchmaking.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, matchmaking.ErrAlreadyQueued),
		errors.Is(err, matchmaking.ErrInvalidState),
		errors.Is(err, matchmaking.ErrInsufficientPlayers),
		errors.Is(err, matchmaking.ErrUnresolvable):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
