package commands

import (
	"errors"
	"strings"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/rawlot"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrCreateRawLotCommandIsNotConstructed = errors.New(
	"CreateRawLotCommand must be created via NewCreateRawLotCommand constructor",
)

// CreateRawLotCommand opens a raw lot for a product. The product's
// requirements are frozen onto the lot when the command is handled.
//
// Example:
//
//	cmd, err := NewCreateRawLotCommand(kernel.NewUUID(), "EXO-100", rawlot.ModeStockBuild, kernel.MustVolume("1000"), nil)
//	if err != nil {
//	    return fmt.Errorf("invalid raw lot: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateRawLotCommand struct { //nolint:recvcheck //using for validation
	lotID             kernel.UUID
	productCode       string
	mode              rawlot.Mode
	nominalVolume     kernel.Volume
	sourceOrderLineID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateRawLotCommand(
	lotID kernel.UUID,
	productCode string,
	mode rawlot.Mode,
	nominalVolume kernel.Volume,
	sourceOrderLineID *kernel.UUID,
) (CreateRawLotCommand, error) {
	c := CreateRawLotCommand{
		mode:              mode,
		sourceOrderLineID: sourceOrderLineID,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setLotID(lotID),
		c.setProductCode(productCode),
		mode.Validate(),
		c.setNominalVolume(nominalVolume),
	); err != nil {
		return CreateRawLotCommand{}, err
	}

	return c, nil
}

func (c CreateRawLotCommand) Validate() error {
	return c.guard.Validate(ErrCreateRawLotCommandIsNotConstructed)
}

func (c CreateRawLotCommand) LotID() kernel.UUID              { return c.lotID }
func (c CreateRawLotCommand) ProductCode() string             { return c.productCode }
func (c CreateRawLotCommand) Mode() rawlot.Mode               { return c.mode }
func (c CreateRawLotCommand) NominalVolume() kernel.Volume    { return c.nominalVolume }
func (c CreateRawLotCommand) SourceOrderLineID() *kernel.UUID { return c.sourceOrderLineID }

func (c *CreateRawLotCommand) setLotID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.lotID = id
	return nil
}

func (c *CreateRawLotCommand) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	c.productCode = code
	return nil
}

func (c *CreateRawLotCommand) setNominalVolume(v kernel.Volume) error {
	if v.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("nominal volume", errors.New("must be greater than 0"))
	}
	c.nominalVolume = v
	return nil
}
