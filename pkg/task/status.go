package task

import "strings"

// Status is the closed set of lifecycle states a generation task can be in.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusCanceled  Status = "CANCELED"
	StatusUnknown   Status = "UNKNOWN"
)

// Normalize maps a provider status string onto the closed Status set.
// Providers disagree on vocabulary ("PROCESSING" vs "RUNNING", "SUCCESS"
// vs "SUCCEEDED"); anything unrecognized becomes StatusUnknown, which is
// non-terminal and retryable.
func Normalize(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING", "QUEUED", "QUEUING", "SUBMITTED":
		return StatusPending
	case "RUNNING", "PROCESSING", "IN_PROGRESS":
		return StatusRunning
	case "SUCCEEDED", "SUCCESS", "SUCCESSFUL", "COMPLETED":
		return StatusSucceeded
	case "FAILED", "FAILURE", "ERROR":
		return StatusFailed
	case "CANCELED", "CANCELLED":
		return StatusCanceled
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the task will never transition further.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

// Failed reports whether s is a terminal failure state.
func (s Status) Failed() bool {
	return s == StatusFailed || s == StatusCanceled
}
