package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipsplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// Probing is disabled unless WithStubFFprobe is applied, so tests never
// reach for a real ffprobe.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.FFmpeg.Probe = false

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRoots overrides the portrait and rotation output roots.
func WithRoots(portrait, rotate string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.PortraitDir = portrait
		b.cfg.Paths.RotateDir = rotate
	}
}

// WithLogDir points the file sink at a directory under the test temp dir.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := b.binDir()
		for _, name := range names {
			writeScript(b.t, filepath.Join(binDir, name), "#!/bin/sh\nexit 0\n")
		}
		prependPath(b.t, binDir)
	}
}

// WithStubFFmpeg installs an ffmpeg stand-in and points the config at it.
// The stub creates its last argument as an empty file and appends its
// argument list to a call log (see Calls). Inputs whose base name appears in
// failInputs make the stub print to stderr and exit with status 3 without
// writing anything.
func WithStubFFmpeg(failInputs ...string) ConfigOption {
	return func(b *configBuilder) {
		target := filepath.Join(b.binDir(), "ffmpeg")
		writeScript(b.t, target, ffmpegScript(callLog(target), failInputs))
		b.cfg.FFmpeg.Binary = target
	}
}

// WithStubFFprobe installs an ffprobe stand-in that reports one video stream
// of the given size and one audio stream, and enables probing.
func WithStubFFprobe(width, height int) ConfigOption {
	return func(b *configBuilder) {
		target := filepath.Join(b.binDir(), "ffprobe")
		writeScript(b.t, target, ffprobeScript(width, height))
		b.cfg.FFmpeg.FFprobeBinary = target
		b.cfg.FFmpeg.Probe = true
	}
}

// BaseDir returns the temp directory backing stubs created for cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.FFmpeg.Binary))
}

func (b *configBuilder) binDir() string {
	dir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	return dir
}

func writeScript(t testing.TB, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", filepath.Base(path), err)
	}
}

func prependPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	if oldPath != "" {
		dir = dir + string(os.PathListSeparator) + oldPath
	}
	t.Setenv("PATH", dir)
}
