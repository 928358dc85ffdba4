// Package naming derives the stem shared by every output of one source file.
package naming

import (
	"strings"

	"clipsplit/internal/services"
)

// DeriveBase strips any directory prefix and the final extension segment from
// filename. Names without a dot are returned whole; ".mp4" yields "".
func DeriveBase(filename string) string {
	base := filename
	if i := strings.LastIndexAny(base, separators); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// Base is DeriveBase for the batch: an empty stem cannot name an output, so it
// is reported as a skippable per-file error.
func Base(filename string) (string, error) {
	base := DeriveBase(filename)
	if base == "" {
		return "", services.Wrap(services.ErrSkippable, "naming", "derive base", "empty stem for "+filename, nil)
	}
	return base, nil
}
