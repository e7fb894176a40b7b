// Package workflow drives the conversion batch from discovery to summary.
//
// The runner walks the input directory, plans one job per media file, and
// carries each job through encode, validation, and finalization in sequence.
// A lock file in the output directory keeps concurrent runs from clobbering
// each other's artifacts. Per-file failures are recorded on the job and the
// batch continues; only environment problems abort the run.
package workflow
