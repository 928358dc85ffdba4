package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrSkippable     = errors.New("skipped file")
	ErrExternalTool  = errors.New("external tool error")
	ErrTransient     = errors.New("transient failure")
)

// Tier is the scope at which a failure is contained.
type Tier int

const (
	// TierJob failures are reported and the batch moves to the next job.
	TierJob Tier = iota
	// TierSkippable failures drop a single source file.
	TierSkippable
	// TierFatal failures abort the whole run before any job executes.
	TierFatal
)

func (t Tier) String() string {
	switch t {
	case TierFatal:
		return "fatal"
	case TierSkippable:
		return "skippable"
	default:
		return "job"
	}
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to the containment tier the batch applies to it.
// Untagged errors are treated as job failures so they never abort the run.
func Classify(err error) Tier {
	switch {
	case errors.Is(err, ErrConfiguration):
		return TierFatal
	case errors.Is(err, ErrSkippable):
		return TierSkippable
	default:
		return TierJob
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
