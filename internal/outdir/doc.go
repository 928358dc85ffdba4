// Package outdir prepares the output roots a batch writes into.
//
// Preparation is idempotent and single-level: an existing directory is left
// alone, a missing one is created with 0755, and anything else at the path is
// a fatal collision.
package outdir
