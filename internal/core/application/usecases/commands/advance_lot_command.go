package commands

import (
	"errors"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/guard"
)

var ErrAdvanceLotCommandIsNotConstructed = errors.New(
	"AdvanceLotCommand must be created via NewAdvanceLotCommand constructor",
)

// AdvanceLotCommand moves a lot one stage forward when its prerequisites
// are met. It is handled by AdvanceRawLotCommandHandler or
// AdvancePackagedLotCommandHandler.
type AdvanceLotCommand struct {
	lotID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceLotCommand(lotID kernel.UUID) (AdvanceLotCommand, error) {
	if err := lotID.Validate(); err != nil {
		return AdvanceLotCommand{}, err
	}
	return AdvanceLotCommand{lotID: lotID, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceLotCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceLotCommandIsNotConstructed)
}

func (c AdvanceLotCommand) LotID() kernel.UUID { return c.lotID }
