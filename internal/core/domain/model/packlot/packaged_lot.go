package packlot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/container"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/obligation"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"
)

var ErrPackagedLotIsNotConstructed = errors.New("PackagedLot must be created via NewPackagedLot or RestorePackagedLot")

// NewInput carries what is known when a packaged lot is planned.
type NewInput struct {
	RawLotID     kernel.UUID
	PackFormatID string
	FillVolume   kernel.Volume
	QtyPlanned   int
	FrozenSpec   spec.FrozenSpec
	OrderID      *kernel.UUID
	OrderLineID  *kernel.UUID
}

type PackagedLot struct {
	id            kernel.UUID
	rawLotID      kernel.UUID
	packFormatID  string
	fillVolume    kernel.Volume
	qtyPlanned    int
	qtyProduced   *int
	status        Status
	frozenSpec    spec.FrozenSpec
	orderID       *kernel.UUID
	orderLineID   *kernel.UUID
	container     *container.Container
	steps         []*step.ProcessingStep
	qcRequests    []*qc.Request
	decisions     []*qc.Decision
	shipments     []*Shipment
	createdAt     time.Time
	version       int
	isConstructed bool
}

// NewPackagedLot plans a lot. Its container counts units, with capacity
// equal to the planned quantity.
func NewPackagedLot(id kernel.UUID, in NewInput, createdAt time.Time) (*PackagedLot, error) {
	l := &PackagedLot{
		status:        Planned,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if err := errors.Join(
		l.setID(id),
		l.setRawLot(in.RawLotID),
		l.setPackFormat(in.PackFormatID, in.FillVolume),
		l.setQtyPlanned(in.QtyPlanned),
		l.setFrozenSpec(in.FrozenSpec),
		l.setOrder(in.OrderID, in.OrderLineID),
	); err != nil {
		return nil, err
	}

	units, err := kernel.VolumeFromInt(int64(in.QtyPlanned))
	if err != nil {
		return nil, err
	}
	c, err := container.NewContainer(kernel.NewUUID(), id, container.OwnerPackagedLot, units)
	if err != nil {
		return nil, err
	}
	l.container = c
	return l, nil
}

// RestoreInput carries a packaged lot loaded from storage.
type RestoreInput struct {
	ID           kernel.UUID
	RawLotID     kernel.UUID
	PackFormatID string
	FillVolume   kernel.Volume
	QtyPlanned   int
	QtyProduced  *int
	Status       Status
	FrozenSpec   spec.FrozenSpec
	OrderID      *kernel.UUID
	OrderLineID  *kernel.UUID
	Container    *container.Container
	Steps        []*step.ProcessingStep
	QCRequests   []*qc.Request
	Decisions    []*qc.Decision
	Shipments    []*Shipment
	CreatedAt    time.Time
	Version      int
}

func RestorePackagedLot(in RestoreInput) (*PackagedLot, error) {
	l := &PackagedLot{
		qtyProduced:   in.QtyProduced,
		steps:         in.Steps,
		qcRequests:    in.QCRequests,
		decisions:     in.Decisions,
		shipments:     in.Shipments,
		createdAt:     in.CreatedAt,
		version:       in.Version,
		isConstructed: true,
	}
	if err := errors.Join(
		l.setID(in.ID),
		l.setRawLot(in.RawLotID),
		l.setPackFormat(in.PackFormatID, in.FillVolume),
		l.setQtyPlanned(in.QtyPlanned),
		l.setFrozenSpec(in.FrozenSpec),
		l.setOrder(in.OrderID, in.OrderLineID),
		in.Status.Validate(),
		in.Container.Validate(),
	); err != nil {
		return nil, err
	}
	l.status = in.Status
	l.container = in.Container
	return l, nil
}

func (l *PackagedLot) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrPackagedLotIsNotConstructed
	}
	return nil
}

func (l *PackagedLot) ID() kernel.UUID                 { return l.id }
func (l *PackagedLot) RawLotID() kernel.UUID           { return l.rawLotID }
func (l *PackagedLot) PackFormatID() string            { return l.packFormatID }
func (l *PackagedLot) FillVolume() kernel.Volume       { return l.fillVolume }
func (l *PackagedLot) QtyPlanned() int                 { return l.qtyPlanned }
func (l *PackagedLot) Status() Status                  { return l.status }
func (l *PackagedLot) FrozenSpec() spec.FrozenSpec     { return l.frozenSpec }
func (l *PackagedLot) OrderID() *kernel.UUID           { return l.orderID }
func (l *PackagedLot) OrderLineID() *kernel.UUID       { return l.orderLineID }
func (l *PackagedLot) Container() *container.Container { return l.container }
func (l *PackagedLot) Steps() []*step.ProcessingStep   { return append([]*step.ProcessingStep(nil), l.steps...) }
func (l *PackagedLot) QCRequests() []*qc.Request       { return append([]*qc.Request(nil), l.qcRequests...) }
func (l *PackagedLot) Decisions() []*qc.Decision       { return append([]*qc.Decision(nil), l.decisions...) }
func (l *PackagedLot) Shipments() []*Shipment          { return append([]*Shipment(nil), l.shipments...) }
func (l *PackagedLot) CreatedAt() time.Time            { return l.createdAt }
func (l *PackagedLot) Version() int                    { return l.version }
func (l *PackagedLot) IsEqual(other *PackagedLot) bool { return other != nil && l.id.IsEqual(other.id) }
func (l *PackagedLot) Shape() spec.Shape               { return l.frozenSpec.Shape() }
func (l *PackagedLot) Path() []Status                  { return Path(l.Shape()) }

// QtyProduced is zero until filling completes.
func (l *PackagedLot) QtyProduced() int {
	if l.qtyProduced == nil {
		return 0
	}
	return *l.qtyProduced
}

// HasProduced reports whether filling recorded a produced quantity.
func (l *PackagedLot) HasProduced() bool {
	return l.qtyProduced != nil
}

func (l *PackagedLot) QtyShipped() int {
	total := 0
	for _, s := range l.shipments {
		total += s.qty
	}
	return total
}

// RequiredVolume is the raw volume needed to fill the planned quantity.
func (l *PackagedLot) RequiredVolume() kernel.Volume {
	v, _ := l.fillVolume.Mul(l.qtyPlanned)
	return v
}

// ConsumedVolume is the raw volume debited for the produced quantity.
func (l *PackagedLot) ConsumedVolume() kernel.Volume {
	v, _ := l.fillVolume.Mul(l.QtyProduced())
	return v
}

// Shortfall is planned minus produced, zero before filling completes.
func (l *PackagedLot) Shortfall() int {
	if l.qtyProduced == nil || *l.qtyProduced >= l.qtyPlanned {
		return 0
	}
	return l.qtyPlanned - *l.qtyProduced
}

// ProcessingChecklist lists the obligations of the pre-fill or post-fill section.
func (l *PackagedLot) ProcessingChecklist(section spec.Section) obligation.Checklist {
	return obligation.ForProcessing(l.frozenSpec.Processing(section), step.CompletedKeys(l.steps, section))
}

// QCChecklist lists the obligations of a QC group against its latest request.
func (l *PackagedLot) QCChecklist(group spec.QCGroup) obligation.Checklist {
	recorded := map[string]bool{}
	if req, ok := qc.LatestRequest(l.qcRequests, group); ok {
		recorded = req.RecordedCodes()
	}
	return obligation.ForQC(l.frozenSpec.QC(group), recorded)
}

// RecordStep records a pre-fill step while Processing or a post-fill step
// while PostProcessing.
func (l *PackagedLot) RecordStep(id kernel.UUID, in step.Input) (*step.ProcessingStep, error) {
	section, err := l.activeSection("record a processing step")
	if err != nil {
		return nil, err
	}
	if in.Section == spec.SectionUnknown {
		in.Section = section
	}
	if in.Section != section {
		return nil, errs.NewValueIsInvalidErrorWithCause("section",
			fmt.Errorf("lot in %s records %s steps, got %s", l.status, section, in.Section))
	}
	if err = step.CheckAgainstSpec(l.frozenSpec, l.steps, in); err != nil {
		return nil, err
	}
	s, err := step.NewProcessingStep(id, in)
	if err != nil {
		return nil, err
	}
	l.steps = append(l.steps, s)
	return s, nil
}

// CompleteStep ends a running step of the active section.
func (l *PackagedLot) CompleteStep(stepID kernel.UUID, endedAt time.Time, output *kernel.Volume) error {
	if _, err := l.activeSection("complete a processing step"); err != nil {
		return err
	}
	for _, s := range l.steps {
		if s.ID().IsEqual(stepID) {
			return s.Complete(endedAt, output)
		}
	}
	return errs.NewObjectNotFoundError("processing step", stepID)
}

func (l *PackagedLot) activeSection(action string) (spec.Section, error) {
	switch l.status {
	case Processing:
		return spec.SectionPreFill, nil
	case PostProcessing:
		return spec.SectionPostFill, nil
	default:
		return spec.SectionUnknown, l.statusError(action)
	}
}

// RecordResult records a QC result on the request of the current QC stage.
func (l *PackagedLot) RecordResult(requestID, resultID kernel.UUID, in qc.ResultInput, now time.Time) (*qc.Result, error) {
	var group spec.QCGroup
	switch l.status {
	case PreFillQCPending:
		group = spec.QCGroupPreFill
	case PostFillQCPending:
		group = spec.QCGroupProduct
	default:
		return nil, l.statusError("record a qc result")
	}
	req, ok := l.QCRequest(requestID)
	if !ok || req.Group() != group {
		return nil, errs.NewObjectNotFoundError("qc request", requestID)
	}
	test, ok := l.frozenSpec.Test(group, strings.TrimSpace(in.Code))
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("test code",
			fmt.Errorf("%s is not a %s qc test of lot %s", in.Code, group, l.id))
	}
	return req.RecordResult(resultID, test, in, now)
}

func (l *PackagedLot) QCRequest(id kernel.UUID) (*qc.Request, bool) {
	for _, r := range l.qcRequests {
		if r.ID().IsEqual(id) {
			return r, true
		}
	}
	return nil, false
}

// RecordDecision records a QA decision at the current gate, or at the held
// gate while OnHold. Approving over non-passing results requires a reason.
func (l *PackagedLot) RecordDecision(id kernel.UUID, in qc.DecisionInput, now time.Time) (*qc.Decision, error) {
	var gate spec.QCGroup
	switch l.status {
	case PreFillQAPending, PostFillQAPending:
		gate = gateOf(l.status)
	case OnHold:
		held, ok := latestDecisionAnyGate(l.decisions)
		if !ok {
			return nil, l.statusError("record a qa decision")
		}
		gate = held.Gate()
	default:
		return nil, l.statusError("record a qa decision")
	}
	if in.Gate == spec.QCGroupUnknown {
		in.Gate = gate
	}
	if in.Gate != gate {
		return nil, errs.NewValueIsInvalidErrorWithCause("qa gate",
			fmt.Errorf("lot in %s takes %s decisions, got %s", l.status, gate, in.Gate))
	}
	d, err := qc.NewDecision(id, in, now)
	if err != nil {
		return nil, err
	}
	if err = d.RequireReasonUnlessPassing(l.notPassing(gate)); err != nil {
		return nil, err
	}
	l.decisions = append(l.decisions, d)
	return d, nil
}

func (l *PackagedLot) notPassing(group spec.QCGroup) []string {
	tests := l.frozenSpec.QC(group)
	codes := make([]string, 0, len(tests))
	for _, t := range tests {
		codes = append(codes, t.Code)
	}
	req, ok := qc.LatestRequest(l.qcRequests, group)
	if !ok {
		return codes
	}
	return req.NotPassing(codes)
}

// CompleteFilling records the produced quantity and moves Filling → Filled.
// Producing more than planned is rejected.
func (l *PackagedLot) CompleteFilling(qtyProduced int, now time.Time) error {
	if l.status != Filling {
		return l.statusError("complete filling")
	}
	if qtyProduced < 1 || qtyProduced > l.qtyPlanned {
		return errs.NewValueIsOutOfRangeError("produced quantity", qtyProduced, 1, l.qtyPlanned)
	}
	units, err := kernel.VolumeFromInt(int64(qtyProduced))
	if err != nil {
		return err
	}
	if err = l.container.Fill(units); err != nil {
		return err
	}
	l.qtyProduced = &qtyProduced
	return l.Advance(now)
}

// RecordShipment dispatches units and moves the lot to PartiallyShipped or,
// once every produced unit has shipped, to Shipped.
func (l *PackagedLot) RecordShipment(id kernel.UUID, qty int, reference string, now time.Time) (*Shipment, error) {
	if l.status != Released && l.status != PartiallyShipped {
		return nil, l.statusError("record a shipment")
	}
	remaining := l.QtyProduced() - l.QtyShipped()
	if qty > remaining {
		return nil, errs.NewValueIsOutOfRangeError("shipment quantity", qty, 1, remaining)
	}
	s, err := NewShipment(id, qty, reference, now)
	if err != nil {
		return nil, err
	}
	units, err := kernel.VolumeFromInt(int64(qty))
	if err != nil {
		return nil, err
	}
	if err = l.container.Draw(units); err != nil {
		return nil, err
	}
	l.shipments = append(l.shipments, s)

	event := EventShipPartial
	if l.QtyShipped() >= l.QtyProduced() {
		event = EventShipComplete
	}
	if err = l.fire(event, now); err != nil {
		return nil, err
	}
	return s, nil
}

// NextStatus evaluates the transition Advance would take without changing the lot.
func (l *PackagedLot) NextStatus() (Status, error) {
	event, err := l.nextEvent()
	if err != nil {
		return Unknown, err
	}
	return l.evaluate(event)
}

func (l *PackagedLot) CanAdvance() bool {
	_, err := l.NextStatus()
	return err == nil
}

// Advance moves the lot one stage along its computed path, or out of a QA
// gate according to the latest decision there.
func (l *PackagedLot) Advance(now time.Time) error {
	event, err := l.nextEvent()
	if err != nil {
		return err
	}
	return l.fire(event, now)
}

func (l *PackagedLot) fire(event Event, now time.Time) error {
	to, err := l.evaluate(event)
	if err != nil {
		return err
	}

	switch to {
	case PreFillQCPending, PostFillQCPending:
		group := spec.QCGroupPreFill
		if to == PostFillQCPending {
			group = spec.QCGroupProduct
		}
		req, reqErr := qc.NewRequest(kernel.NewUUID(), group, now)
		if reqErr != nil {
			return reqErr
		}
		l.qcRequests = append(l.qcRequests, req)
	case PreFillQCCompleted, PostFillQCCompleted:
		group := spec.QCGroupPreFill
		if to == PostFillQCCompleted {
			group = spec.QCGroupProduct
		}
		if req, ok := qc.LatestRequest(l.qcRequests, group); ok && req.Status() == qc.RequestOpened {
			if err = req.Complete(now); err != nil {
				return err
			}
		}
	}

	l.status = to
	return nil
}

func (l *PackagedLot) evaluate(event Event) (Status, error) {
	to, ok, err := graphs[l.Shape()].Evaluate(l.status, event, l)
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("packaged lot cannot %s from %s", event, l.status))
	}
	if err != nil {
		return Unknown, err
	}
	return to, nil
}

func (l *PackagedLot) nextEvent() (Event, error) {
	switch l.status {
	case PreFillQAPending, PostFillQAPending:
		d, ok := qc.LatestDecision(l.decisions, gateOf(l.status))
		if !ok {
			return 0, errs.NewPreconditionNotMetError("packaged lot", l.id, "qa decision")
		}
		switch d.Verdict() {
		case qc.Approved:
			return EventApprove, nil
		case qc.Rejected:
			return EventReject, nil
		default:
			return EventHold, nil
		}
	case OnHold:
		d, ok := latestDecisionAnyGate(l.decisions)
		if !ok || d.Verdict() == qc.OnHold {
			return 0, errs.NewPreconditionNotMetError("packaged lot", l.id, "qa decision Approved or Rejected")
		}
		if d.Verdict() == qc.Rejected {
			return EventReject, nil
		}
		if d.Gate() == spec.QCGroupPreFill {
			return EventResumeFilling, nil
		}
		return EventResumeRelease, nil
	default:
		return EventAdvance, nil
	}
}

func (l *PackagedLot) statusError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("cannot %s on a packaged lot in %s", action, l.status))
}

func (l *PackagedLot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *PackagedLot) setRawLot(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("raw lot", err)
	}
	l.rawLotID = id
	return nil
}

func (l *PackagedLot) setPackFormat(id string, fillVolume kernel.Volume) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("pack format")
	}
	if fillVolume.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("fill volume", errors.New("must be greater than 0"))
	}
	l.packFormatID = id
	l.fillVolume = fillVolume
	return nil
}

func (l *PackagedLot) setQtyPlanned(qty int) error {
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("planned quantity", qty, 1, "unbounded")
	}
	l.qtyPlanned = qty
	return nil
}

func (l *PackagedLot) setFrozenSpec(s spec.FrozenSpec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	l.frozenSpec = s
	return nil
}

func (l *PackagedLot) setOrder(orderID, lineID *kernel.UUID) error {
	if (orderID == nil) != (lineID == nil) {
		return errs.NewValueIsInvalidErrorWithCause("order line", errors.New("order and order line are set together"))
	}
	if orderID != nil {
		if err := errors.Join(orderID.Validate(), lineID.Validate()); err != nil {
			return err
		}
	}
	l.orderID = orderID
	l.orderLineID = lineID
	return nil
}
