// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Only the fields the batch needs are decoded: the first video stream's
// dimensions (to predict crop geometry) and whether any audio stream exists
// (the audio map is optional, so its absence is informational).
package ffprobe
