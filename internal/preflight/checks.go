package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"clipsplit/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, accessReadWrite, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, accessRead, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckOutputRoot passes when path is a writable directory, or when it is
// missing and its parent allows creating it. A non-directory at path fails,
// matching the collision the batch would hit at startup.
func CheckOutputRoot(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: exists and is not a directory)", path)}
	case err == nil:
		return CheckDirectoryAccess(name, path)
	case !os.IsNotExist(err):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	// outdir creates a single level, so the parent must already be a directory.
	parent := filepath.Dir(path)
	if parentInfo, err := os.Stat(parent); err != nil || !parentInfo.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: parent %s is not a directory)", path, parent)}
	}
	if err := access(parent, accessCreate); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create in %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckBinary converts a dependency status into a preflight result.
func CheckBinary(status deps.Status) Result {
	result := Result{Name: status.Name, Optional: status.Optional}
	if status.Available {
		result.Passed = true
		result.Detail = status.Path
		return result
	}
	result.Detail = status.Detail
	if status.Description != "" {
		result.Detail = fmt.Sprintf("%s (%s)", status.Detail, status.Description)
	}
	return result
}
