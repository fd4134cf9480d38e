package commands

import (
	"errors"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/guard"
)

var ErrRecordCollectionCommandIsNotConstructed = errors.New(
	"RecordCollectionCommand must be created via NewRecordCollectionCommand constructor",
)

// RecordCollectionCommand records one harvest into a raw lot. The culture's
// cell type is looked up by the handler.
type RecordCollectionCommand struct {
	lotID       kernel.UUID
	eventID     kernel.UUID
	volume      kernel.Volume
	cultureID   kernel.UUID
	mediaSpecID string
	collectedAt time.Time
	operator    string

	guard guard.ConstructorGuard
}

func NewRecordCollectionCommand(
	lotID, eventID kernel.UUID,
	volume kernel.Volume,
	cultureID kernel.UUID,
	mediaSpecID string,
	collectedAt time.Time,
	operator string,
) (RecordCollectionCommand, error) {
	c := RecordCollectionCommand{
		lotID:       lotID,
		eventID:     eventID,
		volume:      volume,
		cultureID:   cultureID,
		mediaSpecID: strings.TrimSpace(mediaSpecID),
		collectedAt: collectedAt,
		operator:    strings.TrimSpace(operator),
		guard:       guard.NewConstructorGuard(),
	}

	errList := []error{lotID.Validate(), eventID.Validate()}
	if err := cultureID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("culture", err))
	}
	if volume.IsZero() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("volume", errors.New("must be greater than 0")))
	}
	if c.mediaSpecID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("media spec"))
	}
	if c.operator == "" {
		errList = append(errList, errs.NewValueIsRequiredError("operator"))
	}
	if err := errors.Join(errList...); err != nil {
		return RecordCollectionCommand{}, err
	}

	return c, nil
}

func (c RecordCollectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCollectionCommandIsNotConstructed)
}

func (c RecordCollectionCommand) LotID() kernel.UUID     { return c.lotID }
func (c RecordCollectionCommand) EventID() kernel.UUID   { return c.eventID }
func (c RecordCollectionCommand) Volume() kernel.Volume  { return c.volume }
func (c RecordCollectionCommand) CultureID() kernel.UUID { return c.cultureID }
func (c RecordCollectionCommand) MediaSpecID() string    { return c.mediaSpecID }
func (c RecordCollectionCommand) CollectedAt() time.Time { return c.collectedAt }
func (c RecordCollectionCommand) Operator() string       { return c.operator }
