package transcode

import (
	"strconv"
	"strings"

	"clipsplit/internal/jobs"
)

// Fixed encoder contract shared by every job.
const (
	VideoCodec = "libx264"
	Preset     = "faster"
	CRF        = 18
)

// Args builds the ffmpeg argument list for job. Arguments are discrete, so
// file names never pass through a shell.
func Args(job jobs.Job) []string {
	return []string{
		// Overwrite existing outputs so reruns replace the previous result
		"-y",
		"-i", job.Input(),

		// First video stream, plus the first audio stream when present
		"-map", "0:v:0",
		"-map", "0:a?",

		"-vf", job.Variant.Filter(),

		// Quality-oriented H.264 re-encode
		"-c:v", VideoCodec,
		"-preset", Preset,
		"-crf", strconv.Itoa(CRF),

		// Audio untouched
		"-c:a", "copy",

		// Moov atom up front for progressive playback
		"-movflags", "+faststart",

		job.Output,
	}
}

// FormatCommand renders a command line for humans. Arguments containing
// whitespace or quotes are quoted; the result is not meant for a shell.
func FormatCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(binary))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if strings.ContainsAny(arg, " \t\n\"'\\$`") {
		return strconv.Quote(arg)
	}
	return arg
}
