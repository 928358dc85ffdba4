// Command clipsplit turns every video in a directory into three 9:16 portrait
// crops and one rotated copy by driving ffmpeg.
//
// Running clipsplit with no subcommand is the same as "clipsplit run" in the
// current directory. Logs go to stderr; the summary goes to stdout.
package main
