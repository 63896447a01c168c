package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/agentscope-ai/bricks-go/pkg/task"
)

func TestTrackCompleteAndGet(t *testing.T) {
	s := NewStore(0)
	s.Track(task.Handle{TaskID: "t1", Status: task.StatusPending, RequestID: "r1"}, "video_submit")

	rec, ok := s.Get("t1")
	if !ok {
		t.Fatal("record missing after Track")
	}
	if rec.Status != task.StatusPending || rec.Component != "video_submit" || rec.RequestID != "r1" {
		t.Errorf("record = %+v", rec)
	}
	if rec.SubmittedAt.IsZero() || !rec.CompletedAt.IsZero() {
		t.Errorf("timestamps = %+v", rec)
	}

	s.Complete(task.GenerationResult{
		TaskID:    "t1",
		Status:    task.StatusSucceeded,
		Artifacts: []string{"https://x/video.mp4"},
		RequestID: "r2",
	})
	rec, _ = s.Get("t1")
	if rec.Status != task.StatusSucceeded || len(rec.Artifacts) != 1 {
		t.Errorf("record after Complete = %+v", rec)
	}
	if rec.CompletedAt.IsZero() {
		t.Error("CompletedAt not set")
	}
	if rec.RequestID != "r1" {
		t.Errorf("RequestID = %q, submission id should survive completion", rec.RequestID)
	}
}

func TestCompleteWithoutTrack(t *testing.T) {
	s := NewStore(0)
	s.Complete(task.GenerationResult{
		TaskID:    "t9",
		Status:    task.StatusSucceeded,
		Artifacts: []string{"https://x/late.mp4"},
		RequestID: "r9",
	})
	rec, ok := s.Get("t9")
	if !ok {
		t.Fatal("record missing after Complete on an untracked task")
	}
	if rec.RequestID != "r9" || rec.Status != task.StatusSucceeded {
		t.Errorf("record = %+v", rec)
	}
}

func TestFail(t *testing.T) {
	s := NewStore(0)
	s.Track(task.Handle{TaskID: "t1", Status: task.StatusPending}, "video_submit")
	s.Fail("t1", task.StatusFailed)

	rec, _ := s.Get("t1")
	if rec.Status != task.StatusFailed || rec.CompletedAt.IsZero() {
		t.Errorf("record = %+v", rec)
	}

	// failing an unknown task is a no-op
	s.Fail("nope", task.StatusCanceled)
	if _, ok := s.Get("nope"); ok {
		t.Error("Fail created a record out of nothing")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 5; i++ {
		s.Track(task.Handle{TaskID: fmt.Sprintf("t%d", i), Status: task.StatusPending}, "video_submit")
		time.Sleep(2 * time.Millisecond)
	}

	records := s.List(3)
	if len(records) != 3 {
		t.Fatalf("List(3) returned %d records", len(records))
	}
	if records[0].TaskID != "t4" {
		t.Errorf("newest record = %s, want t4", records[0].TaskID)
	}
	for i := 1; i < len(records); i++ {
		if records[i].SubmittedAt.After(records[i-1].SubmittedAt) {
			t.Errorf("records out of order at %d", i)
		}
	}

	if got := s.List(0); len(got) != 5 {
		t.Errorf("List(0) returned %d records, want all 5", len(got))
	}
}

func TestPruneKeepsInFlightJobs(t *testing.T) {
	s := NewStore(time.Hour)
	s.Track(task.Handle{TaskID: "pending", Status: task.StatusPending}, "video_submit")
	s.Track(task.Handle{TaskID: "old", Status: task.StatusPending}, "video_submit")
	s.Complete(task.GenerationResult{TaskID: "old", Status: task.StatusSucceeded, Artifacts: []string{"https://x/old.mp4"}})
	s.Track(task.Handle{TaskID: "fresh", Status: task.StatusPending}, "video_submit")
	s.Complete(task.GenerationResult{TaskID: "fresh", Status: task.StatusSucceeded, Artifacts: []string{"https://x/fresh.mp4"}})

	removed := s.Prune(time.Now().UTC().Add(30 * time.Minute))
	if removed != 0 {
		t.Errorf("Prune removed %d records inside the ttl window", removed)
	}

	removed = s.Prune(time.Now().UTC().Add(2 * time.Hour))
	if removed != 2 {
		t.Errorf("Prune removed %d records, want 2", removed)
	}
	if _, ok := s.Get("pending"); !ok {
		t.Error("in-flight record was pruned")
	}
}

func TestStartPruning(t *testing.T) {
	s := NewStore(time.Hour)
	if err := s.StartPruning("@hourly"); err != nil {
		t.Fatalf("StartPruning: %v", err)
	}
	defer s.Stop()

	// second start is a no-op
	if err := s.StartPruning("@hourly"); err != nil {
		t.Fatalf("second StartPruning: %v", err)
	}

	if err := NewStore(0).StartPruning("not a schedule"); err == nil {
		t.Error("invalid schedule accepted")
	}
}
