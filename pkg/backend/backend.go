package backend

import "context"

// Reply is the provider-agnostic intermediate record every transport is
// reduced to. TransportOK reflects the transport-level outcome only; the
// gateway decides what a missing task id, a terminal status, or an empty
// artifact list means.
type Reply struct {
	TransportOK bool
	StatusCode  int
	TaskID      string
	Status      string
	RequestID   string
	Artifacts   []string
	Raw         string
}

// Adapter isolates one provider's transport and payload shape. Both
// transport families reduce to the same Reply record: a pre-built client
// library returning structured reply objects (ClientAdapter) and a direct
// authenticated HTTP call returning JSON (RESTAdapter).
type Adapter interface {
	// Submit creates an asynchronous task and returns its immediate reply.
	Submit(ctx context.Context, p Payload) (Reply, error)
	// Fetch looks up a task by id. Exactly one round trip, no polling.
	Fetch(ctx context.Context, taskID string) (Reply, error)
	// Generate performs a synchronous generation call whose reply already
	// carries the artifacts.
	Generate(ctx context.Context, p Payload) (Reply, error)
}
