package jobs

import (
	"path/filepath"

	"clipsplit/internal/scan"
)

// Roots holds the two output directories. Values are fixed for a run.
type Roots struct {
	Portrait string
	Rotate   string
}

// For returns the root a variant writes into.
func (r Roots) For(v Variant) string {
	if v.IsCrop() {
		return r.Portrait
	}
	return r.Rotate
}

// Job is one transcode invocation: a variant applied to one source file.
type Job struct {
	Variant Variant
	Source  scan.SourceFile
	Base    string
	Output  string
}

// Input is the path handed to the transcoder.
func (j Job) Input() string {
	if j.Source.Path != "" {
		return j.Source.Path
	}
	return j.Source.Name
}

// OutputPath returns {root}/{base}{suffix}.mp4.
func OutputPath(roots Roots, base string, v Variant) string {
	return filepath.Join(roots.For(v), base+v.Suffix()+"."+OutputExt)
}

// Build returns the four jobs for src in execution order. Suffixes differ per
// variant, so outputs never collide.
func Build(src scan.SourceFile, base string, roots Roots) []Job {
	variants := Variants()
	out := make([]Job, 0, len(variants))
	for _, v := range variants {
		out = append(out, Job{
			Variant: v,
			Source:  src,
			Base:    base,
			Output:  OutputPath(roots, base, v),
		})
	}
	return out
}
