package batch

import (
	"clipsplit/internal/jobs"
	"clipsplit/internal/scan"
	"clipsplit/internal/transcode"
)

// JobOutcome pairs a job with its transcoder result.
type JobOutcome struct {
	Job    jobs.Job
	Result transcode.Result
}

// Failed reports whether the job ended in a Failure.
func (o JobOutcome) Failed() bool {
	_, failed := o.Result.(transcode.Failure)
	return failed
}

// FileReport collects the outcomes for one source file.
type FileReport struct {
	Source scan.SourceFile
	Base   string
	// Media holds the probe result; zero when not probed or the probe failed.
	Media MediaInfo
	Jobs  []JobOutcome
}

// Skip records a source file that produced no jobs.
type Skip struct {
	Source scan.SourceFile
	Err    error
}

// Report summarises a run.
type Report struct {
	RunID   string
	Roots   jobs.Roots
	Files   []FileReport
	Skipped []Skip
}

// Counts returns the number of succeeded and failed jobs.
func (r Report) Counts() (succeeded, failed int) {
	for _, file := range r.Files {
		for _, outcome := range file.Jobs {
			if outcome.Failed() {
				failed++
			} else {
				succeeded++
			}
		}
	}
	return succeeded, failed
}

// Failures returns every failed job in execution order.
func (r Report) Failures() []JobOutcome {
	var out []JobOutcome
	for _, file := range r.Files {
		for _, outcome := range file.Jobs {
			if outcome.Failed() {
				out = append(out, outcome)
			}
		}
	}
	return out
}
