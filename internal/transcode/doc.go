// Package transcode invokes ffmpeg for a single job.
//
// The encoder contract is fixed: first video stream re-encoded with libx264
// (preset faster, CRF 18), optional first audio stream copied, fast-start MP4
// layout, existing outputs overwritten. Arguments are built as a discrete
// list and handed to the process directly.
//
// Run returns a Result that is either Success or Failure; a Failure carries
// the exit status, the attempted command, and the tail of ffmpeg's stderr.
// Nothing is retried.
package transcode
