package qc

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
)

var ErrDecisionIsNotConstructed = errors.New("Decision must be created via NewDecision")

// Verdict is the value of a QA decision.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	Approved
	Rejected
	OnHold
)

var verdictNames = map[Verdict]string{
	Approved: "Approved",
	Rejected: "Rejected",
	OnHold:   "OnHold",
}

func (v Verdict) String() string {
	if n, ok := verdictNames[v]; ok {
		return n
	}
	return "Unknown"
}

func (v Verdict) Validate() error {
	if _, ok := verdictNames[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid", fmt.Errorf("%d is not a valid decision", v))
	}
	return nil
}

func ParseVerdict(s string) (Verdict, error) {
	for k, v := range verdictNames {
		if v == s {
			return k, nil
		}
	}
	return VerdictUnknown, errs.NewValueIsInvalidErrorWithCause("decision is invalid", fmt.Errorf("%q is not a valid decision", s))
}

// DecisionInput is what QA submits at a gate.
type DecisionInput struct {
	Gate          spec.QCGroup
	Verdict       Verdict
	ShelfLifeDays int
	Reason        string
	DecidedBy     string
}

// Decision is one QA decision. The gate names the QC group it follows.
type Decision struct {
	id            kernel.UUID
	gate          spec.QCGroup
	verdict       Verdict
	shelfLifeDays int
	reason        string
	decidedAt     time.Time
	decidedBy     string
	isConstructed bool
}

// NewDecision validates a decision. Approvals need a shelf life of at least
// one day so that an expiry date exists.
func NewDecision(id kernel.UUID, in DecisionInput, decidedAt time.Time) (*Decision, error) {
	if err := errors.Join(id.Validate(), in.Gate.Validate(), in.Verdict.Validate()); err != nil {
		return nil, err
	}
	if in.ShelfLifeDays < 0 || (in.Verdict == Approved && in.ShelfLifeDays < 1) {
		return nil, errs.NewValueIsOutOfRangeError("shelf life days", in.ShelfLifeDays, 1, "unbounded")
	}
	if decidedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("decided at")
	}
	return &Decision{
		id:            id,
		gate:          in.Gate,
		verdict:       in.Verdict,
		shelfLifeDays: in.ShelfLifeDays,
		reason:        strings.TrimSpace(in.Reason),
		decidedAt:     decidedAt,
		decidedBy:     in.DecidedBy,
		isConstructed: true,
	}, nil
}

func (d *Decision) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDecisionIsNotConstructed
	}
	return nil
}

func (d *Decision) ID() kernel.UUID      { return d.id }
func (d *Decision) Gate() spec.QCGroup   { return d.gate }
func (d *Decision) Verdict() Verdict     { return d.verdict }
func (d *Decision) ShelfLifeDays() int   { return d.shelfLifeDays }
func (d *Decision) Reason() string       { return d.reason }
func (d *Decision) DecidedAt() time.Time { return d.decidedAt }
func (d *Decision) DecidedBy() string    { return d.decidedBy }

// ExpiryDate is decided_at + shelf_life_days.
func (d *Decision) ExpiryDate() time.Time {
	return d.decidedAt.AddDate(0, 0, d.shelfLifeDays)
}

// RequireReasonUnlessPassing enforces that approving over results that are
// not all Pass carries a justification.
func (d *Decision) RequireReasonUnlessPassing(notPassing []string) error {
	if d.verdict != Approved || len(notPassing) == 0 || d.reason != "" {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause("reason",
		fmt.Errorf("approval over non-passing results %s", strings.Join(notPassing, ", ")))
}

// LatestDecision picks the most recent decision taken at gate.
func LatestDecision(decisions []*Decision, gate spec.QCGroup) (*Decision, bool) {
	var latest *Decision
	for _, d := range decisions {
		if d.gate != gate {
			continue
		}
		if latest == nil || !d.decidedAt.Before(latest.decidedAt) {
			latest = d
		}
	}
	return latest, latest != nil
}
