package commands

import (
	"errors"

	"exoprotrack/internal/pkg/guard"
)

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

// ReleaseExpiredReservationsCommand cancels every active reservation whose
// raw lot can no longer be drawn from. It has no parameters and is run by
// the reservation sweep job.
type ReleaseExpiredReservationsCommand struct {
	guard guard.ConstructorGuard
}

func NewReleaseExpiredReservationsCommand() ReleaseExpiredReservationsCommand {
	return ReleaseExpiredReservationsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredReservationsCommandIsNotConstructed)
}
