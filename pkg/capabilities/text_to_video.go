package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// TextToVideoSubmitInput submits a text-to-video generation task.
type TextToVideoSubmitInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Size           string `json:"size,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	Watermark      *bool  `json:"watermark,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
}

type TextToVideoSubmitOutput struct {
	TaskID     string      `json:"task_id"`
	TaskStatus task.Status `json:"task_status"`
	RequestID  string      `json:"request_id"`
}

var textToVideoFields = backend.FieldMap{
	{Uniform: "prompt", Section: backend.SectionInput},
	{Uniform: "negative_prompt", Section: backend.SectionInput},
	{Uniform: "size", Section: backend.SectionParameters},
	{Uniform: "duration", Section: backend.SectionParameters},
	{Uniform: "watermark", Section: backend.SectionParameters},
	{Uniform: "seed", Section: backend.SectionParameters},
}

// TextToVideoSubmit submits an asynchronous text-to-video task.
type TextToVideoSubmit struct {
	f *Factory
}

func (f *Factory) TextToVideoSubmit() *TextToVideoSubmit {
	return &TextToVideoSubmit{f: f}
}

func (c *TextToVideoSubmit) Run(ctx context.Context, corr gateway.Correlation, in TextToVideoSubmitInput) (TextToVideoSubmitOutput, error) {
	if in.Prompt == "" {
		return TextToVideoSubmitOutput{}, fmt.Errorf("prompt is required")
	}

	gw, err := c.f.videoGateway()
	if err != nil {
		return TextToVideoSubmitOutput{}, err
	}

	args := map[string]interface{}{
		"prompt":          in.Prompt,
		"negative_prompt": in.NegativePrompt,
		"size":            in.Size,
	}
	if in.Duration > 0 {
		args["duration"] = in.Duration
	}
	if in.Watermark != nil {
		args["watermark"] = *in.Watermark
	}
	if in.Seed != nil {
		args["seed"] = *in.Seed
	}

	p := textToVideoFields.BuildPayload(c.f.Config.Media.TextToVideoModel, args)
	handle, err := gw.Submit(ctx, corr, p)
	if err != nil {
		return TextToVideoSubmitOutput{}, err
	}
	return TextToVideoSubmitOutput{
		TaskID:     handle.TaskID,
		TaskStatus: handle.Status,
		RequestID:  handle.RequestID,
	}, nil
}

func (c *TextToVideoSubmit) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_text_to_video_wan26_submit_task",
		Description: "Wan 2.6 text-to-video submission. Generates a video from a text prompt; returns a task id to poll.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Text prompt describing the desired video content.",
				},
				"negative_prompt": map[string]interface{}{
					"type":        "string",
					"description": "Content to avoid, at most 500 characters.",
				},
				"size": map[string]interface{}{
					"type":        "string",
					"description": "Video resolution such as 1920*1080 (default).",
				},
				"duration": map[string]interface{}{
					"type":        "integer",
					"description": "Video duration in seconds, 5 or 10. Default 5.",
				},
				"watermark": map[string]interface{}{
					"type":        "boolean",
					"description": "Add an AI-generated watermark. Default false.",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed in [0, 2147483647].",
				},
			},
			"required": []string{"prompt"},
		},
		OutputSchema: asyncSubmitOutputSchema(),
	}
}

// asyncSubmitOutputSchema is the shared output shape of every async
// submission component.
func asyncSubmitOutputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"task_id": map[string]interface{}{
				"type":        "string",
				"description": "Unique id of the asynchronous task.",
			},
			"task_status": map[string]interface{}{
				"type":        "string",
				"description": "Task status: PENDING, RUNNING, SUCCEEDED, FAILED, CANCELED or UNKNOWN.",
			},
			"request_id": map[string]interface{}{
				"type":        "string",
				"description": "Request id for log correlation.",
			},
		},
	}
}
