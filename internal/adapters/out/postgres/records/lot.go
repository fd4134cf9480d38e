package records

import (
	"encoding/json"
	"time"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContainerDTO is the vessel of one lot. Raw lots measure millilitres,
// packaged lots count units.
type ContainerDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	OwnerType string          `gorm:"size:16"`
	Nominal   decimal.Decimal `gorm:"type:decimal(20,4)"`
	Current   decimal.Decimal `gorm:"type:decimal(20,4)"`
	Status    string          `gorm:"size:16"`
}

func (ContainerDTO) TableName() string { return "containers" }

type StepDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotID      uuid.UUID `gorm:"type:uuid;index"`
	Section    string    `gorm:"size:16"`
	MethodID   string    `gorm:"size:64"`
	Occurrence int
	InputQty   *decimal.Decimal `gorm:"type:decimal(20,4)"`
	OutputQty  *decimal.Decimal `gorm:"type:decimal(20,4)"`
	StartedAt  time.Time
	EndedAt    *time.Time
	Operator   string
	Notes      string
}

func (StepDTO) TableName() string { return "processing_steps" }

type QCRequestDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotID       uuid.UUID `gorm:"type:uuid;index"`
	Group       string    `gorm:"column:qc_group;size:16"`
	Status      int
	OpenedAt    time.Time
	CompletedAt *time.Time
	Results     []QCResultDTO `gorm:"foreignKey:RequestID"`
}

func (QCRequestDTO) TableName() string { return "qc_requests" }

type QCResultDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID        `gorm:"type:uuid;index"`
	Code       string           `gorm:"size:64"`
	Value      *decimal.Decimal `gorm:"type:decimal(20,4)"`
	Text       string
	Verdict    string `gorm:"size:16"`
	RecordedAt time.Time
	RecordedBy string
}

func (QCResultDTO) TableName() string { return "qc_results" }

type DecisionDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LotID         uuid.UUID `gorm:"type:uuid;index"`
	Gate          string    `gorm:"size:16"`
	Verdict       string    `gorm:"size:16"`
	ShelfLifeDays int
	Reason        string
	DecidedAt     time.Time
	DecidedBy     string
}

func (DecisionDTO) TableName() string { return "qa_decisions" }

// LotChildren is everything a lot owns besides its own row.
type LotChildren struct {
	Container ContainerDTO
	Steps     []StepDTO
	Requests  []QCRequestDTO
	Decisions []DecisionDTO
}

// Models lists the tables of LotChildren for migration.
func Models() []any {
	return []any{&ContainerDTO{}, &StepDTO{}, &QCRequestDTO{}, &QCResultDTO{}, &DecisionDTO{}}
}

// ChildrenFromDomain maps the entities owned by lot lotID.
func ChildrenFromDomain(
	lotID kernel.UUID,
	c *container.Container,
	steps []*step.ProcessingStep,
	requests []*qc.Request,
	decisions []*qc.Decision,
) LotChildren {
	out := LotChildren{
		Container: ContainerDTO{
			ID:        c.ID().Bytes(),
			OwnerID:   c.OwnerID().Bytes(),
			OwnerType: string(c.OwnerType()),
			Nominal:   c.Nominal().Decimal(),
			Current:   c.Current().Decimal(),
			Status:    string(c.Status()),
		},
	}
	for _, s := range steps {
		out.Steps = append(out.Steps, StepDTO{
			ID:         s.ID().Bytes(),
			LotID:      lotID.Bytes(),
			Section:    s.Section().String(),
			MethodID:   s.MethodID(),
			Occurrence: s.Occurrence(),
			InputQty:   DecimalPtr(s.InputQty()),
			OutputQty:  DecimalPtr(s.OutputQty()),
			StartedAt:  s.StartedAt(),
			EndedAt:    s.EndedAt(),
			Operator:   s.Operator(),
			Notes:      s.Notes(),
		})
	}
	for _, r := range requests {
		dto := QCRequestDTO{
			ID:          r.ID().Bytes(),
			LotID:       lotID.Bytes(),
			Group:       r.Group().String(),
			Status:      int(r.Status()),
			OpenedAt:    r.OpenedAt(),
			CompletedAt: r.CompletedAt(),
		}
		for _, res := range r.Results() {
			dto.Results = append(dto.Results, QCResultDTO{
				ID:         res.ID().Bytes(),
				RequestID:  r.ID().Bytes(),
				Code:       res.Code(),
				Value:      res.Value(),
				Text:       res.Text(),
				Verdict:    res.Verdict().String(),
				RecordedAt: res.RecordedAt(),
				RecordedBy: res.RecordedBy(),
			})
		}
		out.Requests = append(out.Requests, dto)
	}
	for _, d := range decisions {
		out.Decisions = append(out.Decisions, DecisionDTO{
			ID:            d.ID().Bytes(),
			LotID:         lotID.Bytes(),
			Gate:          d.Gate().String(),
			Verdict:       d.Verdict().String(),
			ShelfLifeDays: d.ShelfLifeDays(),
			Reason:        d.Reason(),
			DecidedAt:     d.DecidedAt(),
			DecidedBy:     d.DecidedBy(),
		})
	}
	return out
}

// Save upserts every child row. Children are never removed from a lot, so
// rows missing from ch are left alone.
func (ch LotChildren) Save(db *gorm.DB) error {
	upsert := db.Clauses(clause.OnConflict{UpdateAll: true})
	if err := upsert.Create(&ch.Container).Error; err != nil {
		return err
	}
	if len(ch.Steps) > 0 {
		if err := upsert.Create(&ch.Steps).Error; err != nil {
			return err
		}
	}
	for i := range ch.Requests {
		req := ch.Requests[i]
		results := req.Results
		req.Results = nil
		if err := upsert.Create(&req).Error; err != nil {
			return err
		}
		if len(results) > 0 {
			if err := upsert.Create(&results).Error; err != nil {
				return err
			}
		}
	}
	if len(ch.Decisions) > 0 {
		if err := upsert.Create(&ch.Decisions).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadChildren reads the rows owned by lotID in recording order.
func LoadChildren(db *gorm.DB, lotID uuid.UUID) (LotChildren, error) {
	var ch LotChildren
	if err := db.First(&ch.Container, "owner_id = ?", lotID).Error; err != nil {
		return ch, err
	}
	if err := db.Order("started_at, id").Find(&ch.Steps, "lot_id = ?", lotID).Error; err != nil {
		return ch, err
	}
	err := db.Preload("Results", func(tx *gorm.DB) *gorm.DB { return tx.Order("recorded_at, id") }).
		Order("opened_at, id").Find(&ch.Requests, "lot_id = ?", lotID).Error
	if err != nil {
		return ch, err
	}
	if err = db.Order("decided_at, id").Find(&ch.Decisions, "lot_id = ?", lotID).Error; err != nil {
		return ch, err
	}
	return ch, nil
}

// ToContainer rebuilds the lot's container.
func (ch LotChildren) ToContainer() (*container.Container, error) {
	id, err := KernelUUID(ch.Container.ID)
	if err != nil {
		return nil, err
	}
	owner, err := KernelUUID(ch.Container.OwnerID)
	if err != nil {
		return nil, err
	}
	nominal, err := kernel.NewVolume(ch.Container.Nominal)
	if err != nil {
		return nil, err
	}
	current, err := kernel.NewVolume(ch.Container.Current)
	if err != nil {
		return nil, err
	}
	return container.RestoreContainer(id, owner, container.OwnerType(ch.Container.OwnerType),
		nominal, current, container.Status(ch.Container.Status))
}

func (ch LotChildren) ToSteps() ([]*step.ProcessingStep, error) {
	out := make([]*step.ProcessingStep, 0, len(ch.Steps))
	for _, dto := range ch.Steps {
		id, err := KernelUUID(dto.ID)
		if err != nil {
			return nil, err
		}
		section, err := spec.ParseSection(dto.Section)
		if err != nil {
			return nil, err
		}
		in, err := VolumePtr(dto.InputQty)
		if err != nil {
			return nil, err
		}
		outQty, err := VolumePtr(dto.OutputQty)
		if err != nil {
			return nil, err
		}
		s, err := step.RestoreProcessingStep(id, step.Input{
			MethodID:   dto.MethodID,
			Occurrence: dto.Occurrence,
			Section:    section,
			InputQty:   in,
			OutputQty:  outQty,
			StartedAt:  dto.StartedAt,
			EndedAt:    dto.EndedAt,
			Operator:   dto.Operator,
			Notes:      dto.Notes,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (ch LotChildren) ToRequests() ([]*qc.Request, error) {
	out := make([]*qc.Request, 0, len(ch.Requests))
	for _, dto := range ch.Requests {
		id, err := KernelUUID(dto.ID)
		if err != nil {
			return nil, err
		}
		group, err := spec.ParseQCGroup(dto.Group)
		if err != nil {
			return nil, err
		}
		results := make([]*qc.Result, 0, len(dto.Results))
		for _, r := range dto.Results {
			resID, err := KernelUUID(r.ID)
			if err != nil {
				return nil, err
			}
			verdict, err := qc.ParsePassFail(r.Verdict)
			if err != nil {
				return nil, err
			}
			res, err := qc.RestoreResult(resID, id, r.Code, r.Value, r.Text, verdict, r.RecordedAt, r.RecordedBy)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
		req, err := qc.RestoreRequest(id, group, qc.RequestStatus(dto.Status), dto.OpenedAt, dto.CompletedAt, results)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func (ch LotChildren) ToDecisions() ([]*qc.Decision, error) {
	out := make([]*qc.Decision, 0, len(ch.Decisions))
	for _, dto := range ch.Decisions {
		id, err := KernelUUID(dto.ID)
		if err != nil {
			return nil, err
		}
		gate, err := spec.ParseQCGroup(dto.Gate)
		if err != nil {
			return nil, err
		}
		verdict, err := qc.ParseVerdict(dto.Verdict)
		if err != nil {
			return nil, err
		}
		d, err := qc.NewDecision(id, qc.DecisionInput{
			Gate:          gate,
			Verdict:       verdict,
			ShelfLifeDays: dto.ShelfLifeDays,
			Reason:        dto.Reason,
			DecidedBy:     dto.DecidedBy,
		}, dto.DecidedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// SpecJSON serializes a frozen spec for a jsonb column.
func SpecJSON(s spec.FrozenSpec) (datatypes.JSON, error) {
	raw, err := json.Marshal(s.Document())
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("frozen spec", err)
	}
	return datatypes.JSON(raw), nil
}

// FrozenSpec parses a jsonb column back into a frozen spec.
func FrozenSpec(raw datatypes.JSON) (spec.FrozenSpec, error) {
	var doc spec.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return spec.FrozenSpec{}, errs.NewValueIsInvalidErrorWithCause("frozen spec", err)
	}
	return spec.FromDocument(doc)
}

func DecimalPtr(v *kernel.Volume) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := v.Decimal()
	return &d
}

func VolumePtr(d *decimal.Decimal) (*kernel.Volume, error) {
	if d == nil {
		return nil, nil
	}
	v, err := kernel.NewVolume(*d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
