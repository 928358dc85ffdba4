// Package services defines shared utilities consumed by the batch runner and
// the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp the run identifier, source file, and job
//     variant for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into containment tiers (fatal setup, skipped file, failed job).
//
// Use these helpers when wiring new batch steps so operational behaviour
// (error containment, observability) stays uniform.
package services
