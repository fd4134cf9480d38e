package queries

import (
	"errors"

	"exoprotrack/internal/core/application/usecases/commands"
	"exoprotrack/internal/core/domain/model/kernel"
	"exoprotrack/internal/pkg/guard"
)

var ErrGetLotChecklistQueryIsNotConstructed = errors.New(
	"GetLotChecklistQuery must be created via NewGetLotChecklistQuery constructor",
)

// GetLotChecklistQuery asks what a lot still owes before it can advance.
type GetLotChecklistQuery struct {
	kind  commands.LotKind
	lotID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetLotChecklistQuery(kind string, lotID kernel.UUID) (GetLotChecklistQuery, error) {
	k, kindErr := commands.ParseLotKind(kind)
	if err := errors.Join(kindErr, lotID.Validate()); err != nil {
		return GetLotChecklistQuery{}, err
	}
	return GetLotChecklistQuery{kind: k, lotID: lotID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLotChecklistQuery) Validate() error {
	return q.guard.Validate(ErrGetLotChecklistQueryIsNotConstructed)
}

func (q GetLotChecklistQuery) Kind() commands.LotKind { return q.kind }
func (q GetLotChecklistQuery) LotID() kernel.UUID     { return q.lotID }

// ChecklistItem is one required step occurrence ("METHOD#n") or QC test code.
type ChecklistItem struct {
	Key       string
	Name      string
	Satisfied bool
}

// ChecklistStage groups the obligations of one processing section or QC
// group. Stages the frozen spec leaves empty are omitted.
type ChecklistStage struct {
	Stage        string
	Items        []ChecklistItem
	AllSatisfied bool
}

// OpenQCRequest is a QC request still accepting results.
type OpenQCRequest struct {
	ID    kernel.UUID
	Group string
}

// GetLotChecklistQueryResponse describes where a lot stands. NextStatus is
// empty and Blocker explains why when the lot cannot advance.
type GetLotChecklistQueryResponse struct {
	LotID      kernel.UUID
	Kind       commands.LotKind
	Status     string
	Version    int
	CanAdvance bool
	NextStatus string
	Blocker    string
	Stages     []ChecklistStage
	OpenQC     []OpenQCRequest
}
