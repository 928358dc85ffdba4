// Package logging assembles structured slog loggers for clipsplit.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch code can tag log lines
// with the run identifier, source file, and job variant. The console handler
// folds the source file and variant into a compact subject so a failing job
// reads as one line.
//
// Console output defaults to stderr; stdout belongs to the run summary.
package logging
