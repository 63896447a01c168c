package task

// Handle identifies a submitted asynchronous task. It is returned only
// for successful submissions and is immutable afterwards. TaskID is an
// opaque provider-issued string; it is the only key used to re-fetch the
// task. RequestID is never empty.
type Handle struct {
	TaskID    string `json:"task_id"`
	Status    Status `json:"task_status"`
	RequestID string `json:"request_id"`
}

// GenerationResult carries the artifacts of a finished task. It is
// produced only from a SUCCEEDED fetch or a synchronous generation call.
// Artifact URLs are provider-hosted and expire; the caller is expected
// to download them promptly.
type GenerationResult struct {
	TaskID    string   `json:"task_id,omitempty"`
	Status    Status   `json:"task_status"`
	Artifacts []string `json:"artifacts"`
	RequestID string   `json:"request_id"`
}
