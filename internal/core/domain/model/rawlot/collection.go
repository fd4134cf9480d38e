package rawlot

import (
	"errors"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/errs"
)

// CollectionInput describes one harvest into the lot's container. CellType
// is the cell type of the referenced culture, resolved by the caller.
type CollectionInput struct {
	Volume      kernel.Volume
	CultureID   kernel.UUID
	CellType    string
	MediaSpecID string
	CollectedAt time.Time
	Operator    string
}

// Collection is one recorded collection event.
type Collection struct {
	id          kernel.UUID
	volume      kernel.Volume
	cultureID   kernel.UUID
	cellType    string
	mediaSpecID string
	collectedAt time.Time
	operator    string
}

func newCollection(id kernel.UUID, in CollectionInput) (*Collection, error) {
	c := &Collection{
		volume:      in.Volume,
		collectedAt: in.CollectedAt,
		operator:    strings.TrimSpace(in.Operator),
	}
	var errList []error
	errList = append(errList, id.Validate(), in.CultureID.Validate())
	if in.Volume.IsZero() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("collection volume", errors.New("must be greater than 0")))
	}
	if strings.TrimSpace(in.CellType) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("cell type"))
	}
	if strings.TrimSpace(in.MediaSpecID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("media specification"))
	}
	if in.CollectedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("collected at"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	c.id = id
	c.cultureID = in.CultureID
	c.cellType = strings.TrimSpace(in.CellType)
	c.mediaSpecID = strings.TrimSpace(in.MediaSpecID)
	return c, nil
}

// RestoreCollection rebuilds a collection event loaded from storage.
func RestoreCollection(id kernel.UUID, in CollectionInput) (*Collection, error) {
	return newCollection(id, in)
}

func (c *Collection) ID() kernel.UUID        { return c.id }
func (c *Collection) Volume() kernel.Volume  { return c.volume }
func (c *Collection) CultureID() kernel.UUID { return c.cultureID }
func (c *Collection) CellType() string       { return c.cellType }
func (c *Collection) MediaSpecID() string    { return c.mediaSpecID }
func (c *Collection) CollectedAt() time.Time { return c.collectedAt }
func (c *Collection) Operator() string       { return c.operator }
