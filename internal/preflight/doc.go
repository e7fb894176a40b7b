// Package preflight runs environment checks before a conversion batch starts.
//
// Checks cover external binaries (ffmpeg/ffprobe), input/output directory
// access, and free space on the output filesystem. The check command renders
// these results; the workflow runner aborts the run when a required check
// fails.
package preflight
