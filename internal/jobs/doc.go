// Package jobs turns one source file into its four transcode jobs.
//
// Three portrait crops (left, middle, right) keep the full input height and
// take floor(ih*9/16) columns; the fourth job rotates the full frame 90
// degrees counter-clockwise. Crops land in the portrait root, the rotation in
// the rotation root, each named {base}_{variant}.mp4.
package jobs
