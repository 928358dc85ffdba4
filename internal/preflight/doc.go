// Package preflight provides readiness checks for the working directory, the
// two output roots, and the media binaries.
//
// The CLI "check" command renders the results; a failing non-optional check
// means a run would stop before the first clip. Checks never create anything.
package preflight
