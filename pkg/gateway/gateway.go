package gateway

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// Correlation is the per-call correlation context. It is passed
// explicitly through every operation instead of living in ambient state,
// so concurrent calls stay isolated. An empty RequestID is valid; the
// gateway then falls back to the provider-supplied id or generates one.
type Correlation struct {
	RequestID string
}

// Event is what the trace hook receives: the resolved request id plus a
// summary of the call's payload or error.
type Event struct {
	RequestID string
	Payload   interface{}
}

// TraceFunc is the host-supplied observability callback. It is invoked
// at most once per operation, after the outcome is known. It must not
// block; a panic inside the hook never alters the result path.
type TraceFunc func(label string, event Event)

// FetchResult is the outcome of one fetch round trip. A non-terminal
// status is a valid intermediate value, not an error: Status is set and
// Result is nil. Result is non-nil only once the task has SUCCEEDED.
type FetchResult struct {
	TaskID string
	Status task.Status
	Result *task.GenerationResult
}

// Done reports whether the task reached its successful terminal state.
func (r FetchResult) Done() bool {
	return r.Status == task.StatusSucceeded
}

// Gateway orchestrates submit and fetch against one backend adapter. It
// owns request-id correlation and the terminal-failure-raises rule, and
// performs no retries of its own: non-terminal statuses and transient
// transport failures are the caller's polling policy.
type Gateway struct {
	adapter backend.Adapter
	trace   TraceFunc
}

func New(adapter backend.Adapter, trace TraceFunc) *Gateway {
	return &Gateway{adapter: adapter, trace: trace}
}

// Submit creates an asynchronous task and validates the immediate reply.
// A reply that failed at the transport level, lacks a task id, or
// reports a terminal failure status never yields a handle.
func (g *Gateway) Submit(ctx context.Context, corr Correlation, p backend.Payload) (task.Handle, error) {
	reply, err := g.adapter.Submit(ctx, p)
	if err != nil {
		g.emit("submit_task", corr.RequestID, err.Error())
		return task.Handle{}, err
	}

	requestID := resolveRequestID(corr, reply)
	if !reply.TransportOK {
		g.emit("submit_task", requestID, reply.Raw)
		return task.Handle{}, &task.BackendCallError{Op: "submit", StatusCode: reply.StatusCode, Reason: "provider rejected task creation", Raw: reply.Raw}
	}
	if reply.TaskID == "" {
		g.emit("submit_task", requestID, reply.Raw)
		return task.Handle{}, &task.BackendCallError{Op: "submit", StatusCode: reply.StatusCode, Reason: "reply contains no task id", Raw: reply.Raw}
	}

	status := task.Normalize(reply.Status)
	if status.Failed() {
		g.emit("submit_task", requestID, reply.Raw)
		return task.Handle{}, &task.TerminalTaskFailure{TaskID: reply.TaskID, Status: status, Raw: reply.Raw}
	}

	handle := task.Handle{TaskID: reply.TaskID, Status: status, RequestID: requestID}
	g.emit("submit_task", requestID, handle)
	return handle, nil
}

// Fetch performs exactly one provider round trip for the given task id.
// Terminal success returns the extracted result, terminal failure raises
// TerminalTaskFailure, and a non-terminal status is returned as a value
// for the caller's polling loop.
func (g *Gateway) Fetch(ctx context.Context, corr Correlation, taskID string) (FetchResult, error) {
	reply, err := g.adapter.Fetch(ctx, taskID)
	if err != nil {
		g.emit("fetch_result", corr.RequestID, err.Error())
		return FetchResult{}, err
	}

	requestID := resolveRequestID(corr, reply)
	if !reply.TransportOK {
		g.emit("fetch_result", requestID, reply.Raw)
		return FetchResult{}, &task.BackendCallError{Op: "fetch", StatusCode: reply.StatusCode, Reason: "provider rejected task lookup", Raw: reply.Raw}
	}
	if reply.Status == "" {
		g.emit("fetch_result", requestID, reply.Raw)
		return FetchResult{}, &task.BackendCallError{Op: "fetch", StatusCode: reply.StatusCode, Reason: "reply contains no task status", Raw: reply.Raw}
	}

	taskRef := reply.TaskID
	if taskRef == "" {
		taskRef = taskID
	}

	status := task.Normalize(reply.Status)
	switch {
	case status.Failed():
		g.emit("fetch_result", requestID, reply.Raw)
		return FetchResult{}, &task.TerminalTaskFailure{TaskID: taskRef, Status: status, Raw: reply.Raw}
	case status == task.StatusSucceeded:
		if len(reply.Artifacts) == 0 {
			g.emit("fetch_result", requestID, reply.Raw)
			return FetchResult{}, &task.EmptyResultError{TaskID: taskRef, Raw: reply.Raw}
		}
		result := &task.GenerationResult{
			TaskID:    taskRef,
			Status:    status,
			Artifacts: reply.Artifacts,
			RequestID: requestID,
		}
		g.emit("fetch_result", requestID, result)
		return FetchResult{TaskID: taskRef, Status: status, Result: result}, nil
	default:
		g.emit("fetch_result", requestID, string(status))
		return FetchResult{TaskID: taskRef, Status: status}, nil
	}
}

// Generate performs a single synchronous generation round trip for
// capabilities whose reply already carries the artifacts.
func (g *Gateway) Generate(ctx context.Context, corr Correlation, p backend.Payload) (task.GenerationResult, error) {
	reply, err := g.adapter.Generate(ctx, p)
	if err != nil {
		g.emit("generate", corr.RequestID, err.Error())
		return task.GenerationResult{}, err
	}

	requestID := resolveRequestID(corr, reply)
	if !reply.TransportOK {
		g.emit("generate", requestID, reply.Raw)
		return task.GenerationResult{}, &task.BackendCallError{Op: "generate", StatusCode: reply.StatusCode, Reason: "provider rejected generation", Raw: reply.Raw}
	}

	status := task.Normalize(reply.Status)
	if status.Failed() {
		g.emit("generate", requestID, reply.Raw)
		return task.GenerationResult{}, &task.TerminalTaskFailure{TaskID: reply.TaskID, Status: status, Raw: reply.Raw}
	}
	if len(reply.Artifacts) == 0 {
		g.emit("generate", requestID, reply.Raw)
		return task.GenerationResult{}, &task.EmptyResultError{TaskID: reply.TaskID, Raw: reply.Raw}
	}

	result := task.GenerationResult{
		TaskID:    reply.TaskID,
		Status:    task.StatusSucceeded,
		Artifacts: reply.Artifacts,
		RequestID: requestID,
	}
	g.emit("generate", requestID, result)
	return result, nil
}

// resolveRequestID picks the request id: caller correlation context
// first, then the provider-supplied id, then a fresh one. A returned
// handle or result never carries an empty request id.
func resolveRequestID(corr Correlation, reply backend.Reply) string {
	if corr.RequestID != "" {
		return corr.RequestID
	}
	if reply.RequestID != "" {
		return reply.RequestID
	}
	return uuid.NewString()
}

func (g *Gateway) emit(label, requestID string, payload interface{}) {
	if g.trace == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("trace hook panic on %s: %v", label, r)
		}
	}()
	g.trace(label, Event{RequestID: requestID, Payload: payload})
}
