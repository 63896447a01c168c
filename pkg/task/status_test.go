package task

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"PENDING", StatusPending},
		{"pending", StatusPending},
		{"QUEUED", StatusPending},
		{"RUNNING", StatusRunning},
		{"PROCESSING", StatusRunning},
		{"SUCCEEDED", StatusSucceeded},
		{"SUCCESS", StatusSucceeded},
		{" succeeded ", StatusSucceeded},
		{"FAILED", StatusFailed},
		{"ERROR", StatusFailed},
		{"CANCELED", StatusCanceled},
		{"CANCELLED", StatusCanceled},
		{"UNKNOWN", StatusUnknown},
		{"", StatusUnknown},
		{"something-new", StatusUnknown},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
		failed   bool
	}{
		{StatusPending, false, false},
		{StatusRunning, false, false},
		{StatusUnknown, false, false},
		{StatusSucceeded, true, false},
		{StatusFailed, true, true},
		{StatusCanceled, true, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
		if got := tt.status.Failed(); got != tt.failed {
			t.Errorf("%s.Failed() = %v, want %v", tt.status, got, tt.failed)
		}
	}
}
