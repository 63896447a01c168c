// Package tracker is an optional caller-side record of submitted jobs.
// The core lifecycle never persists anything; hosts that want to list
// in-flight jobs or prune stale artifact URLs keep a Store next to the
// gateway.
package tracker

import (
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// Record is one tracked job. Artifacts are filled in once the job has
// been fetched successfully.
type Record struct {
	TaskID      string      `json:"task_id"`
	RequestID   string      `json:"request_id"`
	Component   string      `json:"component"`
	Status      task.Status `json:"task_status"`
	Artifacts   []string    `json:"artifacts,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
	CompletedAt time.Time   `json:"completed_at,omitempty"`
}

// Store tracks jobs in memory, keyed by task id. Completed records are
// pruned once their artifact URLs have passed the provider expiry
// window (24 hours unless configured otherwise).
type Store struct {
	mu   sync.RWMutex
	jobs map[string]Record
	ttl  time.Duration
	cron *cron.Cron
}

// NewStore creates a store whose completed records expire after ttl.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		jobs: make(map[string]Record),
		ttl:  ttl,
	}
}

// Track records a freshly submitted job.
func (s *Store) Track(handle task.Handle, componentName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[handle.TaskID] = Record{
		TaskID:      handle.TaskID,
		RequestID:   handle.RequestID,
		Component:   componentName,
		Status:      handle.Status,
		SubmittedAt: time.Now().UTC(),
	}
}

// Complete records a successful fetch.
func (s *Store) Complete(res task.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[res.TaskID]
	if !ok {
		rec = Record{TaskID: res.TaskID, RequestID: res.RequestID, SubmittedAt: time.Now().UTC()}
	}
	rec.Status = task.StatusSucceeded
	rec.Artifacts = res.Artifacts
	rec.CompletedAt = time.Now().UTC()
	s.jobs[res.TaskID] = rec
}

// Fail records a terminal failure.
func (s *Store) Fail(taskID string, status task.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.jobs[taskID]
	if !ok {
		return
	}
	rec.Status = status
	rec.CompletedAt = time.Now().UTC()
	s.jobs[taskID] = rec
}

// Get retrieves a record by task id.
func (s *Store) Get(taskID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.jobs[taskID]
	return rec, ok
}

// List returns recent records, newest first.
func (s *Store) List(limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.jobs))
	for _, r := range s.jobs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Prune removes records whose terminal outcome is older than the ttl
// and returns how many were removed. Non-terminal records are kept:
// their artifacts have not been issued yet.
func (s *Store) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, rec := range s.jobs {
		if rec.CompletedAt.IsZero() {
			continue
		}
		if now.Sub(rec.CompletedAt) > s.ttl {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// StartPruning schedules Prune on a cron expression, e.g. "@hourly".
func (s *Store) StartPruning(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		s.Prune(time.Now().UTC())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the pruning schedule.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
