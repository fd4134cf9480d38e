// Package rawlot implements the RawLot aggregate: a batch of collected raw
// biological material and its stage sequence
//
//	Open → ClosedCollected → InProcessing → QCPending → QCCompleted → Approved | Rejected | OnHold
//
// Every legal move is declared once in a transition table whose guards read
// the lot's recorded collections, steps, QC results and QA decisions. OnHold
// is left again by recording a new Approved or Rejected decision.
package rawlot
