package batch

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a conversion job.
type Status string

const (
	StatusPending          Status = "pending"
	StatusPlanned          Status = "planned"
	StatusSkipped          Status = "skipped"
	StatusEncoding         Status = "encoding"
	StatusEncoded          Status = "encoded"
	StatusValidated        Status = "validated"
	StatusEncodeFailed     Status = "encode_failed"
	StatusValidationFailed Status = "validation_failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusPlanned,
	StatusSkipped,
	StatusEncoding,
	StatusEncoded,
	StatusValidated,
	StatusEncodeFailed,
	StatusValidationFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var terminalStatuses = map[Status]struct{}{
	StatusSkipped:          {},
	StatusValidated:        {},
	StatusEncodeFailed:     {},
	StatusValidationFailed: {},
}

var validTransitions = map[Status][]Status{
	StatusPending:  {StatusPlanned, StatusEncodeFailed},
	StatusPlanned:  {StatusSkipped, StatusEncoding},
	StatusEncoding: {StatusEncoded, StatusEncodeFailed},
	StatusEncoded:  {StatusValidated, StatusValidationFailed},
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status ends the job lifecycle.
func IsTerminal(status Status) bool {
	_, ok := terminalStatuses[status]
	return ok
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ScaleTarget is the computed downscale resolution for a job. Zero value means
// the source fits within the configured bounds and no scale filter is applied.
type ScaleTarget struct {
	Width  int
	Height int
}

// IsZero reports whether no downscale is required.
func (t ScaleTarget) IsZero() bool {
	return t.Width == 0 && t.Height == 0
}

// Job carries one source file through the conversion pipeline.
type Job struct {
	SourcePath string
	OutputPath string
	TempPath   string

	CRF          int
	AudioBitrate string
	Scale        ScaleTarget

	SourceWidth  int
	SourceHeight int

	Status      Status
	Err         error
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Transition moves the job to the requested status when the transition is
// legal and reports whether it was applied.
func (j *Job) Transition(to Status) bool {
	if !CanTransition(j.Status, to) {
		return false
	}
	j.Status = to
	return true
}

// Fail marks the job with the given failure status and records the cause.
func (j *Job) Fail(status Status, err error) {
	j.Status = status
	j.Err = err
}
