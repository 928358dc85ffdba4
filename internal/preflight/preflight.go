package preflight

import (
	"clipsplit/internal/config"
	"clipsplit/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Blocking reports whether the result should stop a run.
func (r Result) Blocking() bool {
	return !r.Passed && !r.Optional
}

// RunAll executes every check that applies to a run in workDir.
func RunAll(cfg *config.Config, workDir string) []Result {
	if cfg == nil {
		return nil
	}

	portrait, rotate := cfg.OutputRoots(workDir)
	results := []Result{
		CheckReadableDirectory("Working directory", workDir),
		CheckOutputRoot("Portrait output", portrait),
		CheckOutputRoot("Rotated output", rotate),
	}

	reqs := deps.MediaRequirements(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary, cfg.FFmpeg.Probe)
	for _, status := range deps.CheckBinaries(reqs) {
		results = append(results, CheckBinary(status))
	}
	return results
}

// AnyBlocking reports whether any result should stop a run.
func AnyBlocking(results []Result) bool {
	for _, r := range results {
		if r.Blocking() {
			return true
		}
	}
	return false
}
