package outdir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"clipsplit/internal/services"
)

// mkdirFunc is swapped in tests to simulate a concurrent creator.
var mkdirFunc = os.Mkdir

// CollisionError reports an output root that exists but is not a directory.
type CollisionError struct {
	Path string
	Mode fs.FileMode
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("path exists but is not a directory: %s (%s)", e.Path, describeMode(e.Mode))
}

// Unwrap tags collisions as configuration failures so callers treat them as fatal.
func (e *CollisionError) Unwrap() error { return services.ErrConfiguration }

// IsCollision reports whether err is a path collision.
func IsCollision(err error) bool {
	var e *CollisionError
	return errors.As(err, &e)
}

// Prepare guarantees a directory exists at path. Existing directories are left
// untouched; a non-directory at path is a *CollisionError. Only a single level
// is created, so the parent must already exist.
func Prepare(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return &CollisionError{Path: path, Mode: info.Mode()}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrConfiguration, "outdir", "stat", path, err)
	}

	err = mkdirFunc(path, 0o755)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		// Someone else created it between stat and mkdir; accept only a directory.
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			return nil
		}
		if statErr == nil {
			return &CollisionError{Path: path, Mode: info.Mode()}
		}
	}
	return services.Wrap(services.ErrConfiguration, "outdir", "mkdir", path, err)
}

// PrepareAll runs Prepare for each path in order and stops at the first failure.
func PrepareAll(paths ...string) error {
	for _, path := range paths {
		if err := Prepare(path); err != nil {
			return err
		}
	}
	return nil
}

func describeMode(mode fs.FileMode) string {
	switch {
	case mode.IsRegular():
		return "regular file"
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return mode.Type().String()
	}
}
