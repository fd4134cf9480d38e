package rawlot

import (
	"exoprotrack/internal/core/domain/model/obligation"
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/core/domain/model/step"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/fsm"
)

// Event drives the raw-lot machine. Advance moves along the linear path; the
// QA events are chosen by the latest QA decision.
type Event int

const (
	EventAdvance Event = iota + 1
	EventApprove
	EventReject
	EventHold
)

func (e Event) String() string {
	switch e {
	case EventAdvance:
		return "advance"
	case EventApprove:
		return "approve"
	case EventReject:
		return "reject"
	case EventHold:
		return "hold"
	default:
		return "unknown"
	}
}

type transition = fsm.Transition[Status, Event, *RawLot]

var transitions = fsm.NewTable(
	transition{From: Open, Event: EventAdvance, To: ClosedCollected, Guard: requireCollection},
	transition{From: ClosedCollected, Event: EventAdvance, To: InProcessing, Guard: requireStep},
	transition{From: InProcessing, Event: EventAdvance, To: QCPending},
	transition{From: QCPending, Event: EventAdvance, To: QCCompleted, Guard: requireRawResults},
	transition{From: QCCompleted, Event: EventApprove, To: Approved, Guard: requireVerdict(qc.Approved)},
	transition{From: QCCompleted, Event: EventReject, To: Rejected, Guard: requireVerdict(qc.Rejected)},
	transition{From: QCCompleted, Event: EventHold, To: OnHold, Guard: requireVerdict(qc.OnHold)},
	transition{From: OnHold, Event: EventApprove, To: Approved, Guard: requireVerdict(qc.Approved)},
	transition{From: OnHold, Event: EventReject, To: Rejected, Guard: requireVerdict(qc.Rejected)},
)

// Transitions lists the raw-lot graph.
func Transitions() []fsm.Transition[Status, Event, *RawLot] {
	return transitions.Transitions()
}

func requireCollection(l *RawLot) error {
	if len(l.collections) == 0 {
		return errs.NewPreconditionNotMetError("raw lot", l.id, "collection event")
	}
	return nil
}

func requireStep(l *RawLot) error {
	if len(l.steps) == 0 {
		return errs.NewPreconditionNotMetError("raw lot", l.id, "processing step")
	}
	return nil
}

// requireRawResults gates on completeness, not on passing: any verdict counts.
func requireRawResults(l *RawLot) error {
	list := l.QCChecklist()
	if list.IsEmpty() || list.AllSatisfied() {
		return nil
	}
	return errs.NewPreconditionNotMetError("raw lot", l.id, list.Missing()...)
}

func requireVerdict(v qc.Verdict) fsm.Guard[*RawLot] {
	return func(l *RawLot) error {
		d, ok := qc.LatestDecision(l.decisions, spec.QCGroupRaw)
		if !ok || d.Verdict() != v {
			return errs.NewPreconditionNotMetError("raw lot", l.id, "qa decision "+v.String())
		}
		return nil
	}
}

// ProcessingChecklist lists raw processing obligations in declared order.
func (l *RawLot) ProcessingChecklist() obligation.Checklist {
	return obligation.ForProcessing(l.frozenSpec.Processing(spec.SectionRaw), step.CompletedKeys(l.steps, spec.SectionRaw))
}

// QCChecklist lists raw QC obligations against the current raw request.
func (l *RawLot) QCChecklist() obligation.Checklist {
	recorded := map[string]bool{}
	if req, ok := qc.LatestRequest(l.qcRequests, spec.QCGroupRaw); ok {
		recorded = req.RecordedCodes()
	}
	return obligation.ForQC(l.frozenSpec.QC(spec.QCGroupRaw), recorded)
}
