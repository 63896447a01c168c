package task

import "fmt"

// ConfigurationError means a required credential or setting is missing.
// It is always raised before any network call is made.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s not configured: %s", e.Provider, e.Reason)
}

// BackendCallError is a transport-level failure: a non-success status
// code, a transport exception, or a reply missing the minimum required
// fields (task id on submit, status on fetch). Raw holds the provider
// reply body so callers can debug without re-running the call.
type BackendCallError struct {
	Op         string
	StatusCode int
	Reason     string
	Raw        string
}

func (e *BackendCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend call failed (status %d): %s: %s", e.Op, e.StatusCode, e.Reason, e.Raw)
	}
	return fmt.Sprintf("%s: backend call failed: %s: %s", e.Op, e.Reason, e.Raw)
}

// TerminalTaskFailure means the provider reported the task as FAILED or
// CANCELED. The task will never produce a result; Raw carries the
// provider diagnostic for caller logging.
type TerminalTaskFailure struct {
	TaskID string
	Status Status
	Raw    string
}

func (e *TerminalTaskFailure) Error() string {
	return fmt.Sprintf("task %s ended in %s: %s", e.TaskID, e.Status, e.Raw)
}

// ResponseParseError means reply fields were present but in a shape the
// adapter could not reduce to its intermediate record.
type ResponseParseError struct {
	Op     string
	Reason string
	Raw    string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("%s: unparseable provider reply: %s: %s", e.Op, e.Reason, e.Raw)
}

// EmptyResultError means the provider reported SUCCEEDED but no artifact
// reference could be extracted. Success with no artifact is never
// returned as a valid result.
type EmptyResultError struct {
	TaskID string
	Raw    string
}

func (e *EmptyResultError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("task %s succeeded but reply contains no artifacts: %s", e.TaskID, e.Raw)
	}
	return fmt.Sprintf("generation succeeded but reply contains no artifacts: %s", e.Raw)
}
