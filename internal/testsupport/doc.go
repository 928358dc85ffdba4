// Package testsupport builds throwaway configurations and shell stand-ins for
// ffmpeg and ffprobe so the batch can be exercised end to end without the
// real tools installed.
package testsupport
