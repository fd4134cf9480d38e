package packlot

import (
	"exoprotrack/internal/core/domain/model/qc"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
	"exoprotrack/internal/pkg/fsm"
)

type Event int

const (
	EventAdvance Event = iota + 1
	EventApprove
	EventReject
	EventHold
	EventResumeFilling
	EventResumeRelease
	EventShipPartial
	EventShipComplete
)

var eventNames = map[Event]string{
	EventAdvance:       "advance",
	EventApprove:       "approve",
	EventReject:        "reject",
	EventHold:          "hold",
	EventResumeFilling: "resume-filling",
	EventResumeRelease: "resume-release",
	EventShipPartial:   "ship-partial",
	EventShipComplete:  "ship-complete",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return "unknown"
}

type (
	transition = fsm.Transition[Status, Event, *PackagedLot]
	table      = fsm.Table[Status, Event, *PackagedLot]
)

// Path returns the linear stage sequence for a spec shape, Planned through
// Released.
func Path(shape spec.Shape) []Status {
	path := []Status{Planned}
	if shape.HasPre {
		path = append(path, Processing)
	}
	if shape.HasPreQC {
		path = append(path, PreFillQCPending, PreFillQCCompleted, PreFillQAPending)
	}
	path = append(path, Filling, Filled)
	if shape.HasPost {
		path = append(path, PostProcessing)
	}
	if shape.HasPostQC {
		path = append(path, PostFillQCPending, PostFillQCCompleted, PostFillQAPending)
	}
	return append(path, Released)
}

// graphs holds one table per spec shape.
var graphs = buildGraphs()

func buildGraphs() map[spec.Shape]*table {
	out := make(map[spec.Shape]*table, 16)
	for i := range 16 {
		shape := spec.Shape{
			HasPre:    i&1 != 0,
			HasPreQC:  i&2 != 0,
			HasPost:   i&4 != 0,
			HasPostQC: i&8 != 0,
		}
		out[shape] = buildGraph(shape)
	}
	return out
}

func buildGraph(shape spec.Shape) *table {
	path := Path(shape)
	var edges []transition

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		switch from {
		case PreFillQAPending, PostFillQAPending:
			gate := gateOf(from)
			edges = append(edges,
				transition{From: from, Event: EventApprove, To: to, Guard: requireVerdict(gate, qc.Approved)},
				transition{From: from, Event: EventReject, To: Rejected, Guard: requireVerdict(gate, qc.Rejected)},
				transition{From: from, Event: EventHold, To: OnHold, Guard: requireVerdict(gate, qc.OnHold)},
			)
		default:
			edges = append(edges, transition{From: from, Event: EventAdvance, To: to, Guard: advanceGuard(from)})
		}
	}

	if shape.HasPreQC || shape.HasPostQC {
		edges = append(edges, transition{From: OnHold, Event: EventReject, To: Rejected, Guard: requireHeldVerdict(qc.Rejected)})
	}
	if shape.HasPreQC {
		edges = append(edges, transition{From: OnHold, Event: EventResumeFilling, To: Filling, Guard: requireHeldVerdict(qc.Approved)})
	}
	if shape.HasPostQC {
		edges = append(edges, transition{From: OnHold, Event: EventResumeRelease, To: Released, Guard: requireHeldVerdict(qc.Approved)})
	}

	edges = append(edges,
		transition{From: Released, Event: EventShipPartial, To: PartiallyShipped, Guard: requireShipped(false)},
		transition{From: Released, Event: EventShipComplete, To: Shipped, Guard: requireShipped(true)},
		transition{From: PartiallyShipped, Event: EventShipPartial, To: PartiallyShipped, Guard: requireShipped(false)},
		transition{From: PartiallyShipped, Event: EventShipComplete, To: Shipped, Guard: requireShipped(true)},
	)

	return fsm.NewTable(edges...)
}

// Transitions lists the graph for a spec shape.
func Transitions(shape spec.Shape) []fsm.Transition[Status, Event, *PackagedLot] {
	return graphs[shape].Transitions()
}

func gateOf(s Status) spec.QCGroup {
	switch s {
	case PreFillQAPending:
		return spec.QCGroupPreFill
	case PostFillQAPending:
		return spec.QCGroupProduct
	default:
		return spec.QCGroupUnknown
	}
}

func advanceGuard(from Status) fsm.Guard[*PackagedLot] {
	switch from {
	case Processing:
		return requireSteps(spec.SectionPreFill)
	case PreFillQCPending:
		return requireResults(spec.QCGroupPreFill)
	case Filling:
		return requireProduced
	case PostProcessing:
		return requireSteps(spec.SectionPostFill)
	case PostFillQCPending:
		return requireResults(spec.QCGroupProduct)
	default:
		return nil
	}
}

func requireSteps(section spec.Section) fsm.Guard[*PackagedLot] {
	return func(l *PackagedLot) error {
		list := l.ProcessingChecklist(section)
		if list.AllSatisfied() {
			return nil
		}
		return errs.NewPreconditionNotMetError("packaged lot", l.id, list.Missing()...)
	}
}

func requireResults(group spec.QCGroup) fsm.Guard[*PackagedLot] {
	return func(l *PackagedLot) error {
		list := l.QCChecklist(group)
		if list.AllSatisfied() {
			return nil
		}
		return errs.NewPreconditionNotMetError("packaged lot", l.id, list.Missing()...)
	}
}

func requireProduced(l *PackagedLot) error {
	if l.qtyProduced == nil || *l.qtyProduced < 1 {
		return errs.NewPreconditionNotMetError("packaged lot", l.id, "produced quantity")
	}
	return nil
}

func requireVerdict(gate spec.QCGroup, v qc.Verdict) fsm.Guard[*PackagedLot] {
	return func(l *PackagedLot) error {
		d, ok := qc.LatestDecision(l.decisions, gate)
		if !ok || d.Verdict() != v {
			return errs.NewPreconditionNotMetError("packaged lot", l.id, "qa decision "+v.String())
		}
		return nil
	}
}

func requireHeldVerdict(v qc.Verdict) fsm.Guard[*PackagedLot] {
	return func(l *PackagedLot) error {
		d, ok := latestDecisionAnyGate(l.decisions)
		if !ok || d.Verdict() != v {
			return errs.NewPreconditionNotMetError("packaged lot", l.id, "qa decision "+v.String())
		}
		return nil
	}
}

func requireShipped(complete bool) fsm.Guard[*PackagedLot] {
	return func(l *PackagedLot) error {
		produced := l.QtyProduced()
		shipped := l.QtyShipped()
		if complete == (shipped >= produced) && shipped > 0 {
			return nil
		}
		return errs.NewPreconditionNotMetError("packaged lot", l.id, "shipment")
	}
}

func latestDecisionAnyGate(decisions []*qc.Decision) (*qc.Decision, bool) {
	var latest *qc.Decision
	for _, d := range decisions {
		if latest == nil || !d.DecidedAt().Before(latest.DecidedAt()) {
			latest = d
		}
	}
	return latest, latest != nil
}
