package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"clipsplit/internal/config"
	"clipsplit/internal/jobs"
	"clipsplit/internal/logging"
	"clipsplit/internal/services"
	"clipsplit/internal/testsupport"
	"clipsplit/internal/transcode"
)

func newRunner(t *testing.T, cfg *config.Config, workDir string, opts ...Option) *Runner {
	t.Helper()
	tc, err := transcode.New(cfg.FFmpeg.Binary)
	if err != nil {
		t.Fatalf("transcode.New: %v", err)
	}
	portrait, rotate := cfg.OutputRoots(workDir)
	return New(workDir, jobs.Roots{Portrait: portrait, Rotate: rotate}, tc, opts...)
}

func bufferLogger(t *testing.T) (*bytes.Buffer, Option) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return &buf, WithLogger(logger)
}

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestRunMixedDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4", "b.MOV", "c.txt", ".mp4")
	testsupport.Mkdirs(t, workDir, "d.mkv")

	report, err := newRunner(t, cfg, workDir).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("expected 2 processed files, got %d", len(report.Files))
	}
	if report.Files[0].Source.Name != "a.mp4" || report.Files[1].Source.Name != "b.MOV" {
		t.Fatalf("unexpected processing order: %s, %s", report.Files[0].Source.Name, report.Files[1].Source.Name)
	}
	if calls := testsupport.Calls(t, cfg); len(calls) != 8 {
		t.Fatalf("expected 8 ffmpeg invocations, got %d", len(calls))
	}

	portrait := filepath.Join(workDir, "portrait_clips")
	rotate := filepath.Join(workDir, "rotated_left")
	for _, base := range []string{"a", "b"} {
		for _, suffix := range []string{"_left_9x16", "_mid_9x16", "_right_9x16"} {
			if !exists(t, filepath.Join(portrait, base+suffix+".mp4")) {
				t.Fatalf("missing portrait output %s%s.mp4", base, suffix)
			}
		}
		if !exists(t, filepath.Join(rotate, base+"_rotated_left_90.mp4")) {
			t.Fatalf("missing rotated output for %s", base)
		}
	}
	if exists(t, filepath.Join(portrait, "c_left_9x16.mp4")) {
		t.Fatal("non-video file must not be processed")
	}
	succeeded, failed := report.Counts()
	if succeeded != 8 || failed != 0 {
		t.Fatalf("unexpected counts: %d succeeded, %d failed", succeeded, failed)
	}
	if report.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestRunEmptyDirectoryCreatesRoots(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()

	report, err := newRunner(t, cfg, workDir).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Files) != 0 {
		t.Fatalf("expected no files, got %d", len(report.Files))
	}
	for _, dir := range []string{"portrait_clips", "rotated_left"} {
		info, err := os.Stat(filepath.Join(workDir, dir))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected %s to be created: %v", dir, err)
		}
	}
	if calls := testsupport.Calls(t, cfg); len(calls) != 0 {
		t.Fatalf("expected no invocations, got %v", calls)
	}
}

func TestRunIsolatesJobFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg("a.mp4"))
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4", "b.mp4")
	logs, logOpt := bufferLogger(t)

	report, err := newRunner(t, cfg, workDir, logOpt).Run(context.Background())
	if err != nil {
		t.Fatalf("job failures must not fail the run: %v", err)
	}
	succeeded, failed := report.Counts()
	if succeeded != 4 || failed != 4 {
		t.Fatalf("unexpected counts: %d succeeded, %d failed", succeeded, failed)
	}
	for _, outcome := range report.Failures() {
		failure := outcome.Result.(transcode.Failure)
		if failure.Code != 3 {
			t.Fatalf("expected exit code 3, got %d", failure.Code)
		}
		if !errors.Is(failure, services.ErrExternalTool) {
			t.Fatalf("expected external tool marker, got %v", failure.Err)
		}
		if !strings.Contains(failure.Stderr, "Invalid data") {
			t.Fatalf("expected stderr tail, got %q", failure.Stderr)
		}
	}
	if !exists(t, filepath.Join(workDir, "rotated_left", "b_rotated_left_90.mp4")) {
		t.Fatal("later file should still be processed")
	}

	out := logs.String()
	if got := strings.Count(out, `"event_type":"job_failed"`); got != 4 {
		t.Fatalf("expected 4 job_failed lines, got %d\n%s", got, out)
	}
	if !strings.Contains(out, `"exit_code":3`) || !strings.Contains(out, `"command":`) {
		t.Fatalf("failure lines missing exit code or command:\n%s", out)
	}
	if !strings.Contains(out, `"run_id":"`+report.RunID+`"`) {
		t.Fatalf("expected run id on log lines:\n%s", out)
	}
}

func TestRunOverwritesExistingOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "clip.mkv")

	runner := newRunner(t, cfg, workDir)
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	output := filepath.Join(workDir, "portrait_clips", "clip_mid_9x16.mp4")
	if err := os.WriteFile(output, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale output: %v", err)
	}

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected output to be rewritten, got %q", data)
	}
	calls := testsupport.Calls(t, cfg)
	if len(calls) != 8 {
		t.Fatalf("expected 8 invocations across two runs, got %d", len(calls))
	}
	for _, call := range calls {
		if !strings.Contains(call, " -y ") && !strings.HasPrefix(call, "-y ") {
			t.Fatalf("expected overwrite flag in %q", call)
		}
	}
}

func TestRunFatalOnRootCollision(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4", "rotated_left")

	_, err := newRunner(t, cfg, workDir).Run(context.Background())
	if err == nil {
		t.Fatal("expected collision error")
	}
	if services.Classify(err) != services.TierFatal {
		t.Fatalf("expected fatal tier, got %s", services.Classify(err))
	}
	if calls := testsupport.Calls(t, cfg); len(calls) != 0 {
		t.Fatalf("no job may run after a setup failure, got %v", calls)
	}
}

func TestRunFailsWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4")
	testsupport.Mkdirs(t, workDir, "portrait_clips")

	held := flock.New(filepath.Join(workDir, "portrait_clips", LockName))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("acquire lock: ok=%v err=%v", ok, err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	_, err = newRunner(t, cfg, workDir).Run(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if calls := testsupport.Calls(t, cfg); len(calls) != 0 {
		t.Fatalf("no job may run while locked, got %v", calls)
	}
}

func TestRunSkipsFileWithoutStem(t *testing.T) {
	original := baseName
	t.Cleanup(func() { baseName = original })
	baseName = func(name string) (string, error) {
		if name == "a.mp4" {
			return "", services.Wrap(services.ErrSkippable, "naming", "derive base", name, nil)
		}
		return original(name)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4", "b.mp4")
	logs, logOpt := bufferLogger(t)

	report, err := newRunner(t, cfg, workDir, logOpt).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Source.Name != "a.mp4" {
		t.Fatalf("expected a.mp4 skipped, got %#v", report.Skipped)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected one processed file, got %d", len(report.Files))
	}
	if !strings.Contains(logs.String(), `"event_type":"file_skipped"`) {
		t.Fatalf("expected skip warning:\n%s", logs.String())
	}
}

type fakeProber struct {
	info  MediaInfo
	err   error
	calls int
}

func (p *fakeProber) Probe(context.Context, string) (MediaInfo, error) {
	p.calls++
	return p.info, p.err
}

func TestRunProbeFailureDoesNotSkip(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4")
	logs, logOpt := bufferLogger(t)
	prober := &fakeProber{err: errors.New("moov atom not found")}

	report, err := newRunner(t, cfg, workDir, logOpt, WithProber(prober)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if prober.calls != 1 {
		t.Fatalf("expected one probe, got %d", prober.calls)
	}
	if succeeded, _ := report.Counts(); succeeded != 4 {
		t.Fatalf("expected all jobs to run, got %d", succeeded)
	}
	if !strings.Contains(logs.String(), `"event_type":"probe_failed"`) {
		t.Fatalf("expected probe warning:\n%s", logs.String())
	}
}

func TestRunProbeRecordsDimensions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg(), testsupport.WithStubFFprobe(1920, 1080))
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4")
	logs, logOpt := bufferLogger(t)

	report, err := newRunner(t, cfg, workDir, logOpt, WithProber(FFprobe{Binary: cfg.FFmpeg.FFprobeBinary})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	file := report.Files[0]
	if file.Media.Width != 1920 || file.Media.Height != 1080 || file.Media.AudioStreams != 1 {
		t.Fatalf("unexpected probe result %#v", file.Media)
	}
	if strings.Contains(logs.String(), "video-only output") {
		t.Fatalf("input with audio must not be reported as video-only:\n%s", logs.String())
	}
	if !strings.Contains(logs.String(), `"x":1313`) {
		t.Fatalf("expected right crop origin in geometry log:\n%s", logs.String())
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, cfg, workDir).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if calls := testsupport.Calls(t, cfg); len(calls) != 0 {
		t.Fatalf("expected no invocations, got %v", calls)
	}
}

type recordingTranscoder struct {
	jobs []jobs.Job
}

func (r *recordingTranscoder) Run(_ context.Context, job jobs.Job) transcode.Result {
	r.jobs = append(r.jobs, job)
	return transcode.Success{Cmd: transcode.FormatCommand("ffmpeg", transcode.Args(job))}
}

func TestRunJobOrderPerFile(t *testing.T) {
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "b.mp4", "a.mp4")
	rec := &recordingTranscoder{}
	roots := jobs.Roots{Portrait: filepath.Join(workDir, "p"), Rotate: filepath.Join(workDir, "r")}

	if _, err := New(workDir, roots, rec, WithRunID("run-1")).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.jobs) != 8 {
		t.Fatalf("expected 8 jobs, got %d", len(rec.jobs))
	}
	want := jobs.Variants()
	for i, job := range rec.jobs {
		if job.Variant != want[i%4] {
			t.Fatalf("job %d: expected %s, got %s", i, want[i%4], job.Variant)
		}
		wantSource := "a.mp4"
		if i >= 4 {
			wantSource = "b.mp4"
		}
		if job.Source.Name != wantSource {
			t.Fatalf("job %d: expected source %s, got %s", i, wantSource, job.Source.Name)
		}
	}
}

func TestRunLogsVideoOnlyInput(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "silent.mp4")
	logs, logOpt := bufferLogger(t)
	prober := &fakeProber{info: MediaInfo{Width: 1920, Height: 1080}}

	report, err := newRunner(t, cfg, workDir, logOpt, WithProber(prober)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Files[0].Media.AudioStreams != 0 {
		t.Fatalf("unexpected media %#v", report.Files[0].Media)
	}
	if !strings.Contains(logs.String(), "no audio stream, video-only output") {
		t.Fatalf("expected video-only notice:\n%s", logs.String())
	}
}

func TestRunRemovesLockFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg())
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4")

	if _, err := newRunner(t, cfg, workDir).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(workDir, "portrait_clips"))
	if err != nil {
		t.Fatalf("read portrait root: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	want := []string{"a_left_9x16.mp4", "a_mid_9x16.mp4", "a_right_9x16.mp4"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("expected only clips in portrait root, got %v", names)
	}
}

// cancellingTranscoder cancels the run while its nth job is executing.
type cancellingTranscoder struct {
	cancel context.CancelFunc
	at     int
	calls  int
}

func (c *cancellingTranscoder) Run(_ context.Context, job jobs.Job) transcode.Result {
	c.calls++
	if c.calls == c.at {
		c.cancel()
	}
	return transcode.Success{Cmd: transcode.FormatCommand("ffmpeg", transcode.Args(job))}
}

func TestRunKeepsPartialFileOnCancel(t *testing.T) {
	workDir := t.TempDir()
	testsupport.Touch(t, workDir, "a.mp4", "b.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tc := &cancellingTranscoder{cancel: cancel, at: 2}
	roots := jobs.Roots{Portrait: filepath.Join(workDir, "p"), Rotate: filepath.Join(workDir, "r")}

	report, err := New(workDir, roots, tc).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if tc.calls != 2 {
		t.Fatalf("expected the batch to stop after 2 jobs, got %d", tc.calls)
	}
	if len(report.Files) != 1 || report.Files[0].Source.Name != "a.mp4" {
		t.Fatalf("expected the interrupted file in the report, got %#v", report.Files)
	}
	if got := len(report.Files[0].Jobs); got != 2 {
		t.Fatalf("expected 2 recorded jobs, got %d", got)
	}
	if succeeded, _ := report.Counts(); succeeded != 2 {
		t.Fatalf("expected 2 succeeded jobs, got %d", succeeded)
	}
}
