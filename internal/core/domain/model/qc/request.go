package qc

import (
	"errors"
	"fmt"
	"time"

	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/core/domain/model/spec"
	"exoprotrack/internal/pkg/errs"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

// RequestStatus is the checkpoint lifecycle: Opened → Completed.
type RequestStatus int

const (
	RequestStatusUnknown RequestStatus = iota
	RequestOpened
	RequestCompleted
)

func (s RequestStatus) String() string {
	switch s {
	case RequestOpened:
		return "Opened"
	case RequestCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s RequestStatus) Validate() error {
	if s != RequestOpened && s != RequestCompleted {
		return errs.NewValueIsInvalidErrorWithCause("qc request status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Request is a QC checkpoint opened against a lot for one test group.
type Request struct {
	id            kernel.UUID
	group         spec.QCGroup
	status        RequestStatus
	openedAt      time.Time
	completedAt   *time.Time
	results       []*Result
	isConstructed bool
}

func NewRequest(id kernel.UUID, group spec.QCGroup, openedAt time.Time) (*Request, error) {
	if err := errors.Join(id.Validate(), group.Validate()); err != nil {
		return nil, err
	}
	return &Request{
		id:            id,
		group:         group,
		status:        RequestOpened,
		openedAt:      openedAt,
		isConstructed: true,
	}, nil
}

// RestoreRequest rebuilds a request and its results loaded from storage.
func RestoreRequest(
	id kernel.UUID, group spec.QCGroup, status RequestStatus, openedAt time.Time, completedAt *time.Time, results []*Result,
) (*Request, error) {
	r, err := NewRequest(id, group, openedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	r.status = status
	r.completedAt = completedAt
	r.results = results
	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID         { return r.id }
func (r *Request) Group() spec.QCGroup     { return r.group }
func (r *Request) Status() RequestStatus   { return r.status }
func (r *Request) OpenedAt() time.Time     { return r.openedAt }
func (r *Request) CompletedAt() *time.Time { return r.completedAt }

func (r *Request) Results() []*Result {
	out := make([]*Result, len(r.results))
	copy(out, r.results)
	return out
}

// RecordResult appends a result for test. Completed requests are closed.
func (r *Request) RecordResult(id kernel.UUID, test spec.QCTest, in ResultInput, now time.Time) (*Result, error) {
	if r.status != RequestOpened {
		return nil, errs.NewValueIsInvalidErrorWithCause("qc request status is invalid",
			fmt.Errorf("cannot record results on a %s request", r.status))
	}
	res, err := newResult(id, r.id, test, in, now)
	if err != nil {
		return nil, err
	}
	r.results = append(r.results, res)
	return res, nil
}

// Complete closes the request.
func (r *Request) Complete(now time.Time) error {
	if r.status != RequestOpened {
		return errs.NewValueIsInvalidErrorWithCause("qc request status is invalid",
			fmt.Errorf("%s request cannot be completed", r.status))
	}
	r.status = RequestCompleted
	r.completedAt = &now
	return nil
}

// Latest returns the authoritative result of code: the one with the greatest
// recorded time, the later recording winning a tie.
func (r *Request) Latest(code string) (*Result, bool) {
	var latest *Result
	for _, res := range r.results {
		if res.code != code {
			continue
		}
		if latest == nil || !res.recordedAt.Before(latest.recordedAt) {
			latest = res
		}
	}
	return latest, latest != nil
}

// RecordedCodes lists the codes holding at least one result.
func (r *Request) RecordedCodes() map[string]bool {
	codes := make(map[string]bool, len(r.results))
	for _, res := range r.results {
		codes[res.code] = true
	}
	return codes
}

// NotPassing returns the required codes whose latest result is missing or is
// not Pass, in the given order.
func (r *Request) NotPassing(codes []string) []string {
	var out []string
	for _, code := range codes {
		if res, ok := r.Latest(code); !ok || res.verdict != Pass {
			out = append(out, code)
		}
	}
	return out
}

// LatestRequest picks the most recently opened request of a group.
func LatestRequest(requests []*Request, group spec.QCGroup) (*Request, bool) {
	var latest *Request
	for _, req := range requests {
		if req.group != group {
			continue
		}
		if latest == nil || !req.openedAt.Before(latest.openedAt) {
			latest = req
		}
	}
	return latest, latest != nil
}
