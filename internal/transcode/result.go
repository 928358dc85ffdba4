package transcode

import (
	"fmt"
	"strings"
)

// Result is the outcome of one job: Success or Failure.
type Result interface {
	// Command is the human-readable command that was attempted.
	Command() string
	isResult()
}

// Success reports an exit status of zero.
type Success struct {
	Cmd string
}

func (s Success) Command() string { return s.Cmd }
func (Success) isResult()         {}

// NotStarted is the Failure.Code used when no exit status exists: the process
// could not be spawned, or it was terminated by a signal (see Signal).
const NotStarted = -1

// Failure reports a non-zero exit status, a signal, or a process that never ran.
type Failure struct {
	Code int
	// Signal is set when a signal killed the process, e.g. "killed".
	Signal string
	Cmd    string
	Err    error
	Stderr string
}

func (f Failure) Command() string { return f.Cmd }
func (Failure) isResult()         {}

// Started reports whether the process ran at all.
func (f Failure) Started() bool {
	return f.Code != NotStarted || f.Signal != ""
}

func (f Failure) Error() string {
	msg := fmt.Sprintf("ffmpeg command failed (code %d): %s", f.Code, f.Cmd)
	if f.Signal != "" {
		msg = fmt.Sprintf("ffmpeg command terminated by signal %s: %s", f.Signal, f.Cmd)
	}
	if tail := strings.TrimSpace(f.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (f Failure) Unwrap() error { return f.Err }
