package transcode

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"clipsplit/internal/jobs"
	"clipsplit/internal/services"
)

// stderrTailLimit bounds the stderr kept on a Failure.
const stderrTailLimit = 2048

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stderr io.Writer) error
}

// Option configures the transcoder.
type Option func(*Transcoder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(t *Transcoder) {
		if exec != nil {
			t.exec = exec
		}
	}
}

// WithStderr mirrors ffmpeg's stderr to w in addition to the captured tail.
func WithStderr(w io.Writer) Option {
	return func(t *Transcoder) {
		t.mirror = w
	}
}

// Transcoder runs jobs through the ffmpeg CLI, one blocking call per job.
type Transcoder struct {
	binary string
	exec   Executor
	mirror io.Writer
}

// New constructs a Transcoder for the given ffmpeg binary.
func New(binary string, opts ...Option) (*Transcoder, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcode", "init", "ffmpeg binary required", nil)
	}
	t := &Transcoder{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Command returns the human-readable command Run would execute for job.
func (t *Transcoder) Command(job jobs.Job) string {
	return FormatCommand(t.binary, Args(job))
}

// Run executes job and never retries. Any non-zero status is a Failure.
func (t *Transcoder) Run(ctx context.Context, job jobs.Job) Result {
	args := Args(job)
	command := FormatCommand(t.binary, args)

	tail := &tailBuffer{limit: stderrTailLimit}
	var stderr io.Writer = tail
	if t.mirror != nil {
		stderr = io.MultiWriter(tail, t.mirror)
	}

	err := t.exec.Run(ctx, t.binary, args, stderr)
	if err == nil {
		return Success{Cmd: command}
	}
	return Failure{
		Code:   exitCode(err),
		Signal: exitSignal(err),
		Cmd:    command,
		Err:    services.Wrap(services.ErrExternalTool, "transcode", job.Variant.String(), job.Source.Name, err),
		Stderr: tail.String(),
	}
}

func exitCode(err error) int {
	// *exec.ExitError reports -1 for signal deaths; exitSignal tells those apart.
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return NotStarted
}

// exitSignal names the signal that terminated the process, or "".
func exitSignal(err error) string {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ""
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return status.Signal().String()
	}
	return ""
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr
	return cmd.Run()
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= b.limit {
		b.buf.Reset()
		b.buf.Write(p[len(p)-b.limit:])
		return n, nil
	}
	if overflow := b.buf.Len() + len(p) - b.limit; overflow > 0 {
		b.buf.Next(overflow)
	}
	b.buf.Write(p)
	return n, nil
}

func (b *tailBuffer) String() string {
	return b.buf.String()
}
