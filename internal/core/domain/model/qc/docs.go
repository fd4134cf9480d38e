// Package qc models quality checkpoints on a lot: the QC request opened when a
// lot enters a QC stage, the test results recorded against it and the QA
// decision that closes the following QA gate.
//
// Several results may exist for one test code. The latest by recorded time is
// authoritative, while the mere presence of any result satisfies the test's
// obligation.
package qc
