//go:build !windows

package naming

const separators = "/"
