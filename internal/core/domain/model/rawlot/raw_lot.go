package rawlot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"
)

var ErrRawLotIsNotConstructed = errors.New("RawLot must be created via NewRawLot or RestoreRawLot")

// NewInput carries what is known when a raw lot is opened.
type NewInput struct {
	ProductCode       string
	Mode              Mode
	FrozenSpec        spec.FrozenSpec
	NominalVolume     kernel.Volume
	SourceOrderLineID *kernel.UUID
}

// RawLot is the aggregate root for one batch of raw material.
type RawLot struct {
	id                kernel.UUID
	productCode       string
	mode              Mode
	status            Status
	frozenSpec        spec.FrozenSpec
	container         *container.Container
	sourceOrderLineID *kernel.UUID
	collectionStartAt *time.Time
	collectionEndAt   *time.Time
	collections       []*Collection
	steps             []*step.ProcessingStep
	qcRequests        []*qc.Request
	decisions         []*qc.Decision
	createdAt         time.Time
	version           int
	isConstructed     bool
}

// NewRawLot opens a lot with an empty container of the given nominal volume.
// Order-build lots must name their source order line; stock-build lots must not.
func NewRawLot(id kernel.UUID, in NewInput, createdAt time.Time) (*RawLot, error) {
	l := &RawLot{
		status:        Open,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setProductCode(in.ProductCode),
		l.setMode(in.Mode, in.SourceOrderLineID),
		l.setFrozenSpec(in.FrozenSpec),
	); err != nil {
		return nil, err
	}

	c, err := container.NewContainer(kernel.NewUUID(), id, container.OwnerRawLot, in.NominalVolume)
	if err != nil {
		return nil, err
	}
	l.container = c

	return l, nil
}

// RestoreInput carries a raw lot loaded from storage.
type RestoreInput struct {
	ID                kernel.UUID
	ProductCode       string
	Mode              Mode
	Status            Status
	FrozenSpec        spec.FrozenSpec
	Container         *container.Container
	SourceOrderLineID *kernel.UUID
	CollectionStartAt *time.Time
	CollectionEndAt   *time.Time
	Collections       []*Collection
	Steps             []*step.ProcessingStep
	QCRequests        []*qc.Request
	Decisions         []*qc.Decision
	CreatedAt         time.Time
	Version           int
}

func RestoreRawLot(in RestoreInput) (*RawLot, error) {
	l := &RawLot{
		collectionStartAt: in.CollectionStartAt,
		collectionEndAt:   in.CollectionEndAt,
		collections:       in.Collections,
		steps:             in.Steps,
		qcRequests:        in.QCRequests,
		decisions:         in.Decisions,
		createdAt:         in.CreatedAt,
		version:           in.Version,
		isConstructed:     true,
	}

	if err := errors.Join(
		l.setID(in.ID),
		l.setProductCode(in.ProductCode),
		l.setMode(in.Mode, in.SourceOrderLineID),
		l.setFrozenSpec(in.FrozenSpec),
		in.Status.Validate(),
		in.Container.Validate(),
	); err != nil {
		return nil, err
	}
	l.status = in.Status
	l.container = in.Container

	return l, nil
}

func (l *RawLot) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrRawLotIsNotConstructed
	}
	return nil
}

func (l *RawLot) ID() kernel.UUID                 { return l.id }
func (l *RawLot) ProductCode() string             { return l.productCode }
func (l *RawLot) Mode() Mode                      { return l.mode }
func (l *RawLot) Status() Status                  { return l.status }
func (l *RawLot) FrozenSpec() spec.FrozenSpec     { return l.frozenSpec }
func (l *RawLot) Container() *container.Container { return l.container }
func (l *RawLot) SourceOrderLineID() *kernel.UUID { return l.sourceOrderLineID }
func (l *RawLot) CollectionStartAt() *time.Time   { return l.collectionStartAt }
func (l *RawLot) CollectionEndAt() *time.Time     { return l.collectionEndAt }
func (l *RawLot) Collections() []*Collection      { return append([]*Collection(nil), l.collections...) }
func (l *RawLot) Steps() []*step.ProcessingStep   { return append([]*step.ProcessingStep(nil), l.steps...) }
func (l *RawLot) QCRequests() []*qc.Request       { return append([]*qc.Request(nil), l.qcRequests...) }
func (l *RawLot) Decisions() []*qc.Decision       { return append([]*qc.Decision(nil), l.decisions...) }
func (l *RawLot) CreatedAt() time.Time            { return l.createdAt }
func (l *RawLot) Version() int                    { return l.version }
func (l *RawLot) IsEqual(other *RawLot) bool      { return other != nil && l.id.IsEqual(other.id) }
func (l *RawLot) CurrentVolume() kernel.Volume    { return l.container.Current() }

// CellType is fixed by the first collection; empty until then.
func (l *RawLot) CellType() string {
	if len(l.collections) == 0 {
		return ""
	}
	return l.collections[0].cellType
}

// MediaSpecID is fixed by the first collection; empty until then.
func (l *RawLot) MediaSpecID() string {
	if len(l.collections) == 0 {
		return ""
	}
	return l.collections[0].mediaSpecID
}

// RecordCollection adds a collection event and fills the container. The
// event is rejected, leaving the volume unchanged, if it would overflow the
// container or if its media specification or cell type differ from the
// first collection's.
func (l *RawLot) RecordCollection(id kernel.UUID, in CollectionInput) (*Collection, error) {
	if err := l.requireStatus("record a collection", Open); err != nil {
		return nil, err
	}
	c, err := newCollection(id, in)
	if err != nil {
		return nil, err
	}
	if len(l.collections) > 0 {
		var errList []error
		if c.mediaSpecID != l.MediaSpecID() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("media specification",
				fmt.Errorf("%s conflicts with the lot's media specification %s", c.mediaSpecID, l.MediaSpecID())))
		}
		if !strings.EqualFold(c.cellType, l.CellType()) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("cell type",
				fmt.Errorf("culture cell type %s differs from the lot's cell type %s", c.cellType, l.CellType())))
		}
		if err = errors.Join(errList...); err != nil {
			return nil, err
		}
	}
	if err = l.container.Fill(c.volume); err != nil {
		return nil, err
	}

	l.collections = append(l.collections, c)
	if l.collectionStartAt == nil || c.collectedAt.Before(*l.collectionStartAt) {
		at := c.collectedAt
		l.collectionStartAt = &at
	}
	return c, nil
}

// RecordStep records one execution of a raw processing method, checked
// against the frozen spec.
func (l *RawLot) RecordStep(id kernel.UUID, in step.Input) (*step.ProcessingStep, error) {
	if err := l.requireStatus("record a processing step", ClosedCollected, InProcessing); err != nil {
		return nil, err
	}
	if in.Section == spec.SectionUnknown {
		in.Section = spec.SectionRaw
	}
	if in.Section != spec.SectionRaw {
		return nil, errs.NewValueIsInvalidErrorWithCause("section",
			fmt.Errorf("raw lots record %s steps only, got %s", spec.SectionRaw, in.Section))
	}
	if err := step.CheckAgainstSpec(l.frozenSpec, l.steps, in); err != nil {
		return nil, err
	}
	s, err := step.NewProcessingStep(id, in)
	if err != nil {
		return nil, err
	}
	l.steps = append(l.steps, s)
	return s, nil
}

// CompleteStep ends a running step.
func (l *RawLot) CompleteStep(stepID kernel.UUID, endedAt time.Time, output *kernel.Volume) error {
	if err := l.requireStatus("complete a processing step", ClosedCollected, InProcessing); err != nil {
		return err
	}
	for _, s := range l.steps {
		if s.ID().IsEqual(stepID) {
			return s.Complete(endedAt, output)
		}
	}
	return errs.NewObjectNotFoundError("processing step", stepID)
}

// RecordResult records a QC result on the lot's open raw request.
func (l *RawLot) RecordResult(requestID, resultID kernel.UUID, in qc.ResultInput, now time.Time) (*qc.Result, error) {
	if err := l.requireStatus("record a qc result", QCPending); err != nil {
		return nil, err
	}
	req, ok := l.QCRequest(requestID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("qc request", requestID)
	}
	test, ok := l.frozenSpec.Test(spec.QCGroupRaw, strings.TrimSpace(in.Code))
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("test code",
			fmt.Errorf("%s is not a raw qc test of lot %s", in.Code, l.id))
	}
	return req.RecordResult(resultID, test, in, now)
}

// QCRequest finds one of the lot's QC requests.
func (l *RawLot) QCRequest(id kernel.UUID) (*qc.Request, bool) {
	for _, r := range l.qcRequests {
		if r.ID().IsEqual(id) {
			return r, true
		}
	}
	return nil, false
}

// RecordDecision records a QA decision at the raw gate. Approving while any
// required raw test lacks a passing latest result requires a reason.
func (l *RawLot) RecordDecision(id kernel.UUID, in qc.DecisionInput, now time.Time) (*qc.Decision, error) {
	if err := l.requireStatus("record a qa decision", QCCompleted, OnHold); err != nil {
		return nil, err
	}
	if in.Gate == spec.QCGroupUnknown {
		in.Gate = spec.QCGroupRaw
	}
	if in.Gate != spec.QCGroupRaw {
		return nil, errs.NewValueIsInvalidErrorWithCause("qa gate",
			fmt.Errorf("raw lots take %s decisions only, got %s", spec.QCGroupRaw, in.Gate))
	}
	d, err := qc.NewDecision(id, in, now)
	if err != nil {
		return nil, err
	}
	if err = d.RequireReasonUnlessPassing(l.notPassingRawTests()); err != nil {
		return nil, err
	}
	l.decisions = append(l.decisions, d)
	return d, nil
}

func (l *RawLot) notPassingRawTests() []string {
	tests := l.frozenSpec.QC(spec.QCGroupRaw)
	codes := make([]string, 0, len(tests))
	for _, t := range tests {
		codes = append(codes, t.Code)
	}
	req, ok := qc.LatestRequest(l.qcRequests, spec.QCGroupRaw)
	if !ok {
		return codes
	}
	return req.NotPassing(codes)
}

// NextStatus evaluates the transition the lot would take on Advance without
// changing it.
func (l *RawLot) NextStatus() (Status, error) {
	event, err := l.nextEvent()
	if err != nil {
		return Unknown, err
	}
	to, ok, err := transitions.Evaluate(l.status, event, l)
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("raw lot cannot %s from %s", event, l.status))
	}
	if err != nil {
		return Unknown, err
	}
	return to, nil
}

// CanAdvance reports whether Advance would succeed now.
func (l *RawLot) CanAdvance() bool {
	_, err := l.NextStatus()
	return err == nil
}

// Advance moves the lot to its next status and applies the stage side effects.
func (l *RawLot) Advance(now time.Time) error {
	to, err := l.NextStatus()
	if err != nil {
		return err
	}

	switch to {
	case ClosedCollected:
		l.collectionEndAt = &now
	case QCPending:
		req, reqErr := qc.NewRequest(kernel.NewUUID(), spec.QCGroupRaw, now)
		if reqErr != nil {
			return reqErr
		}
		l.qcRequests = append(l.qcRequests, req)
	case QCCompleted:
		if req, ok := qc.LatestRequest(l.qcRequests, spec.QCGroupRaw); ok && req.Status() == qc.RequestOpened {
			if err = req.Complete(now); err != nil {
				return err
			}
		}
	}

	l.status = to
	return nil
}

func (l *RawLot) nextEvent() (Event, error) {
	if l.status != QCCompleted && l.status != OnHold {
		return EventAdvance, nil
	}
	d, ok := qc.LatestDecision(l.decisions, spec.QCGroupRaw)
	if !ok {
		return 0, errs.NewPreconditionNotMetError("raw lot", l.id, "qa decision")
	}
	switch d.Verdict() {
	case qc.Approved:
		return EventApprove, nil
	case qc.Rejected:
		return EventReject, nil
	default:
		if l.status == OnHold {
			return 0, errs.NewPreconditionNotMetError("raw lot", l.id, "qa decision Approved or Rejected")
		}
		return EventHold, nil
	}
}

// ExpiryDate is the expiry of the approving QA decision.
func (l *RawLot) ExpiryDate() (time.Time, bool) {
	if l.status != Approved {
		return time.Time{}, false
	}
	d, ok := qc.LatestDecision(l.decisions, spec.QCGroupRaw)
	if !ok || d.Verdict() != qc.Approved {
		return time.Time{}, false
	}
	return d.ExpiryDate(), true
}

// IsUsable reports an approved lot whose expiry date is not before now.
func (l *RawLot) IsUsable(now time.Time) bool {
	exp, ok := l.ExpiryDate()
	return ok && !exp.Before(now)
}

// DrawVolume debits material consumed by filling from an approved lot.
func (l *RawLot) DrawVolume(v kernel.Volume) error {
	if err := l.requireStatus("draw volume", Approved); err != nil {
		return err
	}
	return l.container.Draw(v)
}

func (l *RawLot) requireStatus(action string, allowed ...Status) error {
	for _, s := range allowed {
		if l.status == s {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("cannot %s on a raw lot in %s", action, l.status))
}

func (l *RawLot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *RawLot) setProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	l.productCode = code
	return nil
}

func (l *RawLot) setMode(mode Mode, sourceOrderLineID *kernel.UUID) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	switch {
	case mode == ModeOrderBuild && sourceOrderLineID == nil:
		return errs.NewValueIsRequiredError("source order line")
	case mode == ModeStockBuild && sourceOrderLineID != nil:
		return errs.NewValueIsInvalidErrorWithCause("source order line",
			errors.New("stock-build lots have no source order line"))
	case sourceOrderLineID != nil:
		if err := sourceOrderLineID.Validate(); err != nil {
			return err
		}
	}
	l.mode = mode
	l.sourceOrderLineID = sourceOrderLineID
	return nil
}

func (l *RawLot) setFrozenSpec(s spec.FrozenSpec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	l.frozenSpec = s
	return nil
}
