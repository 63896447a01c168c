package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// VideoFetchInput looks up any Wan video synthesis task by id.
type VideoFetchInput struct {
	TaskID string `json:"task_id"`
}

type VideoFetchOutput struct {
	Results    []string    `json:"results,omitempty"`
	TaskID     string      `json:"task_id"`
	TaskStatus task.Status `json:"task_status"`
	RequestID  string      `json:"request_id,omitempty"`
}

// VideoFetch is the shared fetch component for every asynchronous Wan
// video task. One lookup round trip; non-terminal statuses come back as
// values for the caller's polling loop.
type VideoFetch struct {
	f *Factory
}

func (f *Factory) VideoFetch() *VideoFetch {
	return &VideoFetch{f: f}
}

func (c *VideoFetch) Run(ctx context.Context, corr gateway.Correlation, in VideoFetchInput) (VideoFetchOutput, error) {
	if in.TaskID == "" {
		return VideoFetchOutput{}, fmt.Errorf("task_id is required")
	}

	gw, err := c.f.videoGateway()
	if err != nil {
		return VideoFetchOutput{}, err
	}

	res, err := gw.Fetch(ctx, corr, in.TaskID)
	if err != nil {
		return VideoFetchOutput{}, err
	}
	out := VideoFetchOutput{TaskID: res.TaskID, TaskStatus: res.Status}
	if res.Done() {
		out.Results = res.Result.Artifacts
		out.RequestID = res.Result.RequestID
	}
	return out, nil
}

func (c *VideoFetch) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_wan_video_fetch_result",
		Description: "Fetches the result of any Wan video synthesis task by task id. Poll after submitting until the status becomes SUCCEEDED. Video URLs expire after 24 hours.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Id of the video generation task to look up.",
				},
			},
			"required": []string{"task_id"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"results": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Generated video URLs, valid for 24 hours.",
				},
				"task_id": map[string]interface{}{
					"type":        "string",
					"description": "Task id, identical to the input.",
				},
				"task_status": map[string]interface{}{
					"type":        "string",
					"description": "Task status, SUCCEEDED once finished.",
				},
				"request_id": map[string]interface{}{
					"type":        "string",
					"description": "Request id for log correlation.",
				},
			},
		},
	}
}
