package batch

import "time"

// Summary aggregates per-job outcomes across a run.
type Summary struct {
	Total            int
	Converted        int
	Skipped          int
	EncodeFailed     int
	ValidationFailed int

	ConvertedFiles        []string
	SkippedFiles          []string
	EncodeFailedFiles     []string
	ValidationFailedFiles []string

	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration
}

// Record folds a finished job into the summary. Jobs in non-terminal states
// (interrupted runs) are counted in Total only.
func (s *Summary) Record(job *Job) {
	if job == nil {
		return
	}
	s.Total++
	s.TotalInputBytes += job.InputBytes
	switch job.Status {
	case StatusValidated:
		s.Converted++
		s.ConvertedFiles = append(s.ConvertedFiles, job.SourcePath)
		s.TotalOutputBytes += job.OutputBytes
	case StatusSkipped:
		s.Skipped++
		s.SkippedFiles = append(s.SkippedFiles, job.SourcePath)
	case StatusEncodeFailed:
		s.EncodeFailed++
		s.EncodeFailedFiles = append(s.EncodeFailedFiles, job.SourcePath)
	case StatusValidationFailed:
		s.ValidationFailed++
		s.ValidationFailedFiles = append(s.ValidationFailedFiles, job.SourcePath)
	}
}

// Failed returns the number of jobs that ended in a failure state.
func (s *Summary) Failed() int {
	return s.EncodeFailed + s.ValidationFailed
}

// SpaceSaved returns the byte difference between converted inputs and outputs.
// Positive means outputs are smaller.
func (s *Summary) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
