package scan

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"clipsplit/internal/services"
)

// videoExtensions is the fixed allow-list, without the leading dot.
var videoExtensions = []string{"mp4", "mov", "mkv"}

var fold = cases.Fold()

// SourceFile is one qualifying entry of the scanned directory.
type SourceFile struct {
	// Name is the directory entry name, e.g. "clip.MP4".
	Name string
	// Path joins the scanned directory and Name.
	Path string
	// Ext is the matched extension token in lower case, e.g. "mp4".
	Ext string
}

// Extensions returns a copy of the accepted extension tokens.
func Extensions() []string {
	return append([]string(nil), videoExtensions...)
}

// HasExtension reports whether name ends with "." + ext, ignoring case, with
// at least one character before the dot.
func HasExtension(name, ext string) bool {
	if ext == "" || len(name) < len(ext)+2 {
		return false
	}
	tail := name[len(name)-len(ext):]
	if fold.String(tail) != fold.String(ext) {
		return false
	}
	return name[len(name)-len(ext)-1] == '.'
}

// IsVideoFile reports whether a directory entry qualifies for processing.
// Directories never qualify, whatever their name.
func IsVideoFile(name string, isDir bool) bool {
	_, ok := matchExtension(name, isDir)
	return ok
}

func matchExtension(name string, isDir bool) (string, bool) {
	if isDir {
		return "", false
	}
	for _, ext := range videoExtensions {
		if HasExtension(name, ext) {
			return ext, true
		}
	}
	return "", false
}

// Videos lists the qualifying files directly inside dir, sorted by name.
// Subdirectories are never descended into. A directory that cannot be read is
// a configuration failure.
func Videos(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "scan", "read directory", dir, err)
	}

	files := make([]SourceFile, 0, len(entries))
	for _, entry := range entries {
		ext, ok := matchExtension(entry.Name(), entry.IsDir())
		if !ok {
			continue
		}
		files = append(files, SourceFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Ext:  strings.ToLower(ext),
		})
	}
	// os.ReadDir already returns entries sorted by filename.
	return files, nil
}
