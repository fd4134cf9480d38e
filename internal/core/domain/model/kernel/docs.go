// Package kernel provides the primitives shared by every production aggregate.
//
// The package includes:
//   - UUID: identity of lots, containers, reservations and orders
//   - Volume: a non-negative exact quantity (millilitres or units) backed by decimal
//   - Clock: the injected source of "now" for time-dependent rules
//
// All values are immutable and safe for concurrent use.
package kernel
