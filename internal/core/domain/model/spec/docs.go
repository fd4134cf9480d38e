// Package spec holds the frozen specification attached to raw lots, orders and
// packaged lots at creation time.
//
// A FrozenSpec is an immutable copy of the processing methods and QC tests a
// lot must satisfy, including cycle counts and numeric norms. It is produced
// once by a Freezer from a mutable Definition and an injected Catalog, and is
// never re-read from reference data afterwards, so editing a product's
// requirements cannot alter lots already in flight.
//
// The persisted form is Document, a JSON tree validated by FromDocument on the
// way back in.
package spec
