// Package deps reports whether the external binaries clipsplit shells out to
// can be found on PATH.
package deps
