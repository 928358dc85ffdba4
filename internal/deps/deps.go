package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the batch relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	// Path is the resolved location when the binary was found.
	Path   string
	Detail string
}

// Satisfied reports whether the status is acceptable for a run: either the
// binary was found or it is optional.
func (s Status) Satisfied() bool {
	return s.Available || s.Optional
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MediaRequirements lists the binaries a clip run needs. ffprobe is only
// consulted for geometry logging, so it is optional unless probing is enabled.
func MediaRequirements(ffmpegBinary, ffprobeBinary string, probe bool) []Requirement {
	reqs := []Requirement{{
		Name:        "FFmpeg",
		Command:     ffmpegBinary,
		Description: "Required for cropping and rotating clips",
	}}
	if probe {
		reqs = append(reqs, Requirement{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Reports source dimensions before each clip",
			Optional:    true,
		})
	}
	return reqs
}
