package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// asyncHeader signals the provider to accept the creation request as an
// asynchronous job instead of blocking until completion.
const asyncHeader = "X-DashScope-Async"

// RESTAdapter speaks the direct authenticated HTTP transport family:
// bearer token, JSON body, async-enable header on creation requests.
type RESTAdapter struct {
	BaseURL  string
	Resource string
	APIKey   string
	Client   *http.Client
}

// NewRESTAdapter creates a REST adapter for one provider resource, e.g.
// "services/aigc/video-generation/video-synthesis".
func NewRESTAdapter(baseURL, resource, apiKey string) *RESTAdapter {
	return &RESTAdapter{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Resource: strings.Trim(resource, "/"),
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Submit creates an asynchronous task.
func (a *RESTAdapter) Submit(ctx context.Context, p Payload) (Reply, error) {
	return a.post(ctx, "submit", p, true)
}

// Generate performs a synchronous generation call.
func (a *RESTAdapter) Generate(ctx context.Context, p Payload) (Reply, error) {
	return a.post(ctx, "generate", p, false)
}

// Fetch looks up a task by id.
func (a *RESTAdapter) Fetch(ctx context.Context, taskID string) (Reply, error) {
	url := fmt.Sprintf("%s/tasks/%s", a.BaseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	return a.do("fetch", req)
}

func (a *RESTAdapter) post(ctx context.Context, op string, p Payload, async bool) (Reply, error) {
	jsonBody, err := json.Marshal(p)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s", a.BaseURL, a.Resource)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if async {
		req.Header.Set(asyncHeader, "enable")
	}
	return a.do(op, req)
}

func (a *RESTAdapter) do(op string, req *http.Request) (Reply, error) {
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	return decodeReply(op, resp.StatusCode, body)
}
