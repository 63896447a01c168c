package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Client is the pre-built client library transport family: calls return
// structured reply objects instead of raw JSON. Hosts that ship a
// provider SDK implement this interface; ClientAdapter reduces it to the
// same intermediate record the REST family produces.
type Client interface {
	Call(ctx context.Context, p Payload) (*ClientReply, error)
	Task(ctx context.Context, taskID string) (*ClientReply, error)
}

// ClientReply mirrors the SDK reply object shape: nested output with
// status fields, result urls and optional choice records.
type ClientReply struct {
	StatusCode int
	RequestID  string
	Message    string
	Output     *ClientOutput
	Raw        string
}

type ClientOutput struct {
	TaskID     string
	TaskStatus string
	VideoURL   string
	Results    []string
	Choices    []ClientChoice
}

type ClientChoice struct {
	Message ClientMessage
}

type ClientMessage struct {
	Content []ClientContent
}

// ClientContent is one content item in an SDK choice record. At most one
// of the reference fields is set per item.
type ClientContent struct {
	Text  string
	Image string
	Video string
	Audio string
}

// ClientAdapter wraps a provider client into the Adapter abstraction.
type ClientAdapter struct {
	Client Client
}

func NewClientAdapter(c Client) *ClientAdapter {
	return &ClientAdapter{Client: c}
}

func (a *ClientAdapter) Submit(ctx context.Context, p Payload) (Reply, error) {
	r, err := a.Client.Call(ctx, p)
	if err != nil {
		return Reply{}, fmt.Errorf("submit: client call failed: %w", err)
	}
	return reduceClientReply(r), nil
}

func (a *ClientAdapter) Generate(ctx context.Context, p Payload) (Reply, error) {
	r, err := a.Client.Call(ctx, p)
	if err != nil {
		return Reply{}, fmt.Errorf("generate: client call failed: %w", err)
	}
	return reduceClientReply(r), nil
}

func (a *ClientAdapter) Fetch(ctx context.Context, taskID string) (Reply, error) {
	r, err := a.Client.Task(ctx, taskID)
	if err != nil {
		return Reply{}, fmt.Errorf("fetch: client call failed: %w", err)
	}
	return reduceClientReply(r), nil
}

// reduceClientReply flattens an SDK reply object into the intermediate
// Reply record. A nil output is tolerated; the gateway decides whether
// the missing fields are an error.
func reduceClientReply(r *ClientReply) Reply {
	reply := Reply{
		TransportOK: r.StatusCode == http.StatusOK,
		StatusCode:  r.StatusCode,
		RequestID:   r.RequestID,
		Raw:         r.Raw,
	}
	if reply.Raw == "" {
		reply.Raw = r.Message
	}
	if r.Output == nil {
		return reply
	}

	reply.TaskID = r.Output.TaskID
	reply.Status = r.Output.TaskStatus
	for _, u := range r.Output.Results {
		if u != "" {
			reply.Artifacts = append(reply.Artifacts, u)
		}
	}
	for _, c := range r.Output.Choices {
		for _, item := range c.Message.Content {
			for _, v := range []string{item.Image, item.Video, item.Audio} {
				if v != "" {
					reply.Artifacts = append(reply.Artifacts, v)
				}
			}
		}
	}
	if r.Output.VideoURL != "" {
		reply.Artifacts = append(reply.Artifacts, r.Output.VideoURL)
	}
	return reply
}
