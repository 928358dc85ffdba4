// Package batch runs one clip pass over a working directory.
//
// A run prepares the portrait and rotation roots, takes an advisory lock,
// lists qualifying videos, and pushes each through the four ffmpeg jobs in
// order. Setup problems abort before any job starts. A file whose name yields
// no usable stem is skipped with a warning. A failed job is logged and
// recorded, and the run moves on: job failures never fail the run.
//
// Execution is strictly sequential. The context is handed to every ffmpeg
// process; cancelling it kills the running job and stops the batch before the
// next one.
package batch
