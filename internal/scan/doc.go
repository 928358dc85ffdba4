// Package scan enumerates the video files of a single directory.
//
// Only regular entries directly inside the directory are considered. A name
// qualifies when it ends in ".mp4", ".mov", or ".mkv" in any letter case with
// at least one character before the dot.
package scan
