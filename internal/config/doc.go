// Package config loads, normalizes, and validates clipsplit configuration.
//
// It supplies repository defaults (the portrait_clips and rotated_left output
// roots, ffmpeg/ffprobe binaries, console logging), expands user paths, reads
// TOML files, and honours the CLIPSPLIT_LOG_LEVEL environment override.
//
// Output roots stay relative after loading; OutputRoots resolves them against
// the directory being processed.
package config
