// Package container models the vessel that holds a lot's material: a bag or
// bottle of raw product measured in millilitres, or the unit count of a
// packaged lot. The container enforces current ≤ nominal on every write.
package container

import (
	"errors"
	"fmt"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

var ErrContainerIsNotConstructed = errors.New("Container must be created via NewContainer or RestoreContainer")

// OwnerType names the aggregate a container belongs to.
type OwnerType string

const (
	OwnerRawLot      OwnerType = "raw_lot"
	OwnerPackagedLot OwnerType = "packaged_lot"
)

func (t OwnerType) Validate() error {
	if t != OwnerRawLot && t != OwnerPackagedLot {
		return errs.NewValueIsInvalidErrorWithCause("owner type is invalid", fmt.Errorf("%q is not a valid owner type", string(t)))
	}
	return nil
}

// Status is Empty until something is filled and again once fully drawn.
type Status string

const (
	StatusEmpty  Status = "Empty"
	StatusFilled Status = "Filled"
)

type Container struct {
	id            kernel.UUID
	ownerID       kernel.UUID
	ownerType     OwnerType
	nominal       kernel.Volume
	current       kernel.Volume
	status        Status
	isConstructed bool
}

// NewContainer creates an empty container. Nominal capacity must be positive.
func NewContainer(id, ownerID kernel.UUID, ownerType OwnerType, nominal kernel.Volume) (*Container, error) {
	c := &Container{
		status:        StatusEmpty,
		isConstructed: true,
	}
	if err := errors.Join(
		c.setID(id),
		c.setOwner(ownerID, ownerType),
		c.setNominal(nominal),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreContainer rebuilds a container loaded from storage.
func RestoreContainer(
	id, ownerID kernel.UUID, ownerType OwnerType, nominal, current kernel.Volume, status Status,
) (*Container, error) {
	c, err := NewContainer(id, ownerID, ownerType, nominal)
	if err != nil {
		return nil, err
	}
	if current.GreaterThan(nominal) {
		return nil, errs.NewValueIsOutOfRangeError("current volume", current.String(), 0, nominal.String())
	}
	c.current = current
	c.status = status
	return c, nil
}

func (c *Container) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContainerIsNotConstructed
	}
	return nil
}

func (c *Container) ID() kernel.UUID        { return c.id }
func (c *Container) OwnerID() kernel.UUID   { return c.ownerID }
func (c *Container) OwnerType() OwnerType   { return c.ownerType }
func (c *Container) Nominal() kernel.Volume { return c.nominal }
func (c *Container) Current() kernel.Volume { return c.current }
func (c *Container) Status() Status         { return c.status }

// Headroom is the volume that can still be filled.
func (c *Container) Headroom() kernel.Volume {
	return c.nominal.SaturatingSub(c.current)
}

// CanFill reports whether v fits without exceeding nominal capacity.
func (c *Container) CanFill(v kernel.Volume) error {
	if next := c.current.Add(v); next.GreaterThan(c.nominal) {
		return errs.NewValueIsOutOfRangeErrorWithCause("container volume", next.String(), 0, c.nominal.String(),
			fmt.Errorf("adding %s to %s exceeds nominal %s", v, c.current, c.nominal))
	}
	return nil
}

// Fill adds v. The container is unchanged when the fill is rejected.
func (c *Container) Fill(v kernel.Volume) error {
	if v.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("fill volume", errors.New("must be greater than 0"))
	}
	if err := c.CanFill(v); err != nil {
		return err
	}
	c.current = c.current.Add(v)
	c.status = StatusFilled
	return nil
}

// Draw removes v. Drawing more than the current volume is InsufficientVolume.
func (c *Container) Draw(v kernel.Volume) error {
	next, err := c.current.Sub(v)
	if err != nil {
		return errs.NewInsufficientVolumeError(c.ownerID, v.String(), c.current.String())
	}
	c.current = next
	if next.IsZero() {
		c.status = StatusEmpty
	}
	return nil
}

func (c *Container) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Container) setOwner(ownerID kernel.UUID, ownerType OwnerType) error {
	if err := errors.Join(ownerID.Validate(), ownerType.Validate()); err != nil {
		return err
	}
	c.ownerID = ownerID
	c.ownerType = ownerType
	return nil
}

func (c *Container) setNominal(nominal kernel.Volume) error {
	if nominal.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("nominal volume is invalid", errors.New("must be greater than 0"))
	}
	c.nominal = nominal
	return nil
}
