// Package records holds the persistence pieces shared by the lot, order and
// reservation repositories: the child tables both lot kinds own (container,
// processing steps, QC requests and results, QA decisions), the frozen spec
// jsonb column, the versioned update used for optimistic concurrency and the
// mapping of driver errors to domain errors.
package records
