// Package packlot implements the PackagedLot aggregate: a batch of filled
// finished product drawn from one approved raw lot.
//
// The stage graph is computed from the lot's frozen spec. The canonical path
//
//	Planned → [Processing] → [PreFill_QC_Pending → PreFill_QC_Completed → PreFill_QA_Pending]
//	        → Filling → Filled → [PostProcessing]
//	        → [PostFill_QC_Pending → PostFill_QC_Completed → PostFill_QA_Pending] → Released
//
// drops every bracketed stage whose requirement group is empty; a QA gate is
// present exactly when the QC group before it is. Released lots move to
// PartiallyShipped and Shipped as shipments are recorded. Rejected and OnHold
// are reachable from either QA gate, and a held lot resumes on a new decision.
package packlot
