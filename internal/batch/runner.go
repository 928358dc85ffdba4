package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"clipsplit/internal/jobs"
	"clipsplit/internal/logging"
	"clipsplit/internal/naming"
	"clipsplit/internal/outdir"
	"clipsplit/internal/scan"
	"clipsplit/internal/services"
	"clipsplit/internal/transcode"
)

// LockName is the advisory lock file created inside the portrait root.
const LockName = ".clipsplit.lock"

// baseName is swapped in tests; scanned names always carry a stem.
var baseName = naming.Base

// Transcoder executes a single job.
type Transcoder interface {
	Run(ctx context.Context, job jobs.Job) transcode.Result
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for run progress.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProber enables dimension probing before each file's jobs.
func WithProber(p Prober) Option {
	return func(r *Runner) {
		r.prober = p
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// Runner performs one batch over workDir.
type Runner struct {
	workDir    string
	roots      jobs.Roots
	transcoder Transcoder
	prober     Prober
	logger     *slog.Logger
	runID      string
}

// New constructs a Runner. Roots are used as given; callers resolve them
// against workDir beforehand.
func New(workDir string, roots jobs.Roots, transcoder Transcoder, opts ...Option) *Runner {
	r := &Runner{
		workDir:    workDir,
		roots:      roots,
		transcoder: transcoder,
		logger:     logging.NewNop(),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "batch")
	return r
}

// RunID returns the identifier attached to every log line of the run.
func (r *Runner) RunID() string {
	return r.runID
}

// Run executes the batch. The returned error is non-nil only for setup
// failures and cancellation; failed jobs are reported in the Report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	ctx = services.WithRunID(ctx, r.runID)
	logger := logging.WithContext(ctx, r.logger)
	report := Report{RunID: r.runID, Roots: r.roots}

	if r.transcoder == nil {
		return report, services.Wrap(services.ErrConfiguration, "batch", "init", "transcoder required", nil)
	}
	if err := outdir.PrepareAll(r.roots.Portrait, r.roots.Rotate); err != nil {
		return report, err
	}

	lock := flock.New(filepath.Join(r.roots.Portrait, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return report, services.Wrap(services.ErrConfiguration, "batch", "lock", lock.Path(), err)
	}
	if !ok {
		return report, services.Wrap(services.ErrConfiguration, "batch", "lock", "another clipsplit run is using "+r.roots.Portrait, nil)
	}
	defer releaseLock(lock, logger)

	sources, err := scan.Videos(r.workDir)
	if err != nil {
		return report, err
	}
	logger.Info("batch started",
		logging.String("work_dir", r.workDir),
		logging.Int("videos", len(sources)),
		logging.String("portrait_root", r.roots.Portrait),
		logging.String("rotate_root", r.roots.Rotate),
	)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return report, services.Wrap(services.ErrTransient, "batch", "run", "cancelled", err)
		}
		fileCtx := services.WithSourceFile(ctx, src.Name)
		fileReport, err := r.processFile(fileCtx, src)
		if err != nil {
			if services.Classify(err) != services.TierSkippable {
				if len(fileReport.Jobs) > 0 {
					report.Files = append(report.Files, fileReport)
				}
				return report, err
			}
			report.Skipped = append(report.Skipped, Skip{Source: src, Err: err})
			logging.WarnWithContext(logging.WithContext(fileCtx, r.logger), "skipping file", "file_skipped",
				logging.Error(err),
				logging.String("impact", "no outputs for this file"),
			)
			continue
		}
		report.Files = append(report.Files, fileReport)
	}

	succeeded, failed := report.Counts()
	logger.Info("batch finished",
		logging.Int("files", len(report.Files)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Int("jobs_succeeded", succeeded),
		logging.Int("jobs_failed", failed),
	)
	return report, nil
}

func (r *Runner) processFile(ctx context.Context, src scan.SourceFile) (FileReport, error) {
	logger := logging.WithContext(ctx, r.logger)

	base, err := baseName(src.Name)
	if err != nil {
		return FileReport{}, err
	}
	fileReport := FileReport{Source: src, Base: base}

	if r.prober != nil {
		fileReport.Media = r.probe(ctx, logger, src)
	}

	for _, job := range jobs.Build(src, base, r.roots) {
		if err := ctx.Err(); err != nil {
			return fileReport, services.Wrap(services.ErrTransient, "batch", "run", "cancelled", err)
		}
		result := r.runJob(services.WithVariant(ctx, job.Variant.String()), job)
		fileReport.Jobs = append(fileReport.Jobs, JobOutcome{Job: job, Result: result})
	}
	return fileReport, nil
}

func (r *Runner) runJob(ctx context.Context, job jobs.Job) transcode.Result {
	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("job started", logging.String("output", job.Output))

	result := r.transcoder.Run(ctx, job)
	switch res := result.(type) {
	case transcode.Success:
		logger.Info("job finished", logging.String("output", job.Output))
	case transcode.Failure:
		attrs := []logging.Attr{
			logging.Int("exit_code", res.Code),
			logging.String("command", res.Cmd),
			logging.String("output", job.Output),
		}
		if res.Stderr != "" {
			attrs = append(attrs, logging.String("stderr", res.Stderr))
		}
		if res.Err != nil {
			attrs = append(attrs, logging.Error(res.Err))
		}
		logging.ErrorWithContext(logger, "job failed", "job_failed", attrs...)
	}
	return result
}

// probe logs the expected geometry for each variant. Failures only warn; the
// file is still processed.
func (r *Runner) probe(ctx context.Context, logger *slog.Logger, src scan.SourceFile) MediaInfo {
	info, err := r.prober.Probe(ctx, src.Path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return MediaInfo{}
		}
		logging.WarnWithContext(logger, "probe failed", "probe_failed",
			logging.Error(err),
			logging.String("impact", "expected geometry not logged"),
		)
		return MediaInfo{}
	}
	if info.AudioStreams == 0 {
		logger.Debug("no audio stream, video-only output")
	}
	for _, v := range jobs.Variants() {
		rect := jobs.Geometry(v, info.Width, info.Height)
		if !jobs.FitsInput(v, info.Width, info.Height) {
			logging.WarnWithContext(logger, "crop exceeds input frame", "geometry_mismatch",
				logging.String(logging.FieldVariant, v.String()),
				logging.Int("input_width", info.Width),
				logging.Int("input_height", info.Height),
				logging.String("impact", "ffmpeg is expected to reject this job"),
			)
			continue
		}
		logger.Debug("expected geometry",
			logging.String(logging.FieldVariant, v.String()),
			logging.Int("width", rect.Width),
			logging.Int("height", rect.Height),
			logging.Int("x", rect.X),
			logging.Int("y", rect.Y),
		)
	}
	return info
}

// releaseLock unlocks and removes the lock file so the portrait root holds
// only clips. A run that opened the file before the removal ends up locking
// an unlinked inode.
func releaseLock(lock *flock.Flock, logger *slog.Logger) {
	if err := lock.Unlock(); err != nil {
		logger.Warn("release run lock failed", logging.Error(err))
		return
	}
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("remove run lock failed", logging.Error(err), logging.String("path", lock.Path()))
	}
}
