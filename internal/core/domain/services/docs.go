// Package services provides domain services that coordinate several aggregates
// where the rule belongs to none of them alone.
//
// The package includes:
//   - ReservationLedger: availability of raw-lot volume, reservations and the
//     volume an order line may draw before and after filling
//   - PartialFulfillmentReconciler: settles an order line after filling, accepting a
//     short fill or splitting the remainder into a child order
//
// Services hold no state. Every decision is computed from the aggregates
// passed in, which callers load inside the same unit of work that persists
// the result.
package services
