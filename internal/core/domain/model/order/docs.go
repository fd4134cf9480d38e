// Package order provides the demand side of production: an Order aggregate
// carrying its own frozen specification and the lines that packaged lots are
// produced against.
//
// The package includes:
//   - Order: The aggregate root holding identity, product, frozen spec and lines
//   - Line: A requested quantity of one pack format, optionally allocated to a raw lot
//   - Status: A state machine that enforces valid line status transitions
//
// Key business rules:
//   - Every order has at least one line and lines share the order's product code
//   - Line status follows Created -> Assigned -> InProduction -> Completed | PartiallyFulfilled
//   - A line can be reallocated to another raw lot while it is Assigned
//   - An order split off a short-filled line keeps a reference to its parent
package order
