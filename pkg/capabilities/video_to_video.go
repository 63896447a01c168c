package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// VideoToVideoSubmitInput submits a reference-video-to-video task: the
// model reuses the characters of 1-3 reference videos in a new video.
// Reference order defines character order (character1, character2, ...).
type VideoToVideoSubmitInput struct {
	Prompt             string   `json:"prompt"`
	ReferenceVideoURLs []string `json:"reference_video_urls"`
	NegativePrompt     string   `json:"negative_prompt,omitempty"`
	Size               string   `json:"size,omitempty"`
	Duration           int      `json:"duration,omitempty"`
	ShotType           string   `json:"shot_type,omitempty"`
	Watermark          *bool    `json:"watermark,omitempty"`
	Seed               *int     `json:"seed,omitempty"`
}

type VideoToVideoSubmitOutput struct {
	TaskID     string      `json:"task_id"`
	TaskStatus task.Status `json:"task_status"`
	RequestID  string      `json:"request_id"`
}

var videoToVideoFields = backend.FieldMap{
	{Uniform: "prompt", Section: backend.SectionInput},
	{Uniform: "reference_video_urls", Section: backend.SectionInput},
	{Uniform: "negative_prompt", Section: backend.SectionInput},
	{Uniform: "size", Section: backend.SectionParameters},
	{Uniform: "duration", Section: backend.SectionParameters},
	{Uniform: "shot_type", Section: backend.SectionParameters},
	{Uniform: "watermark", Section: backend.SectionParameters},
	{Uniform: "seed", Section: backend.SectionParameters},
}

// VideoToVideoSubmit submits an asynchronous reference-to-video task
// over the direct REST transport.
type VideoToVideoSubmit struct {
	f *Factory
}

func (f *Factory) VideoToVideoSubmit() *VideoToVideoSubmit {
	return &VideoToVideoSubmit{f: f}
}

func (c *VideoToVideoSubmit) Run(ctx context.Context, corr gateway.Correlation, in VideoToVideoSubmitInput) (VideoToVideoSubmitOutput, error) {
	if in.Prompt == "" {
		return VideoToVideoSubmitOutput{}, fmt.Errorf("prompt is required")
	}
	if len(in.ReferenceVideoURLs) == 0 {
		return VideoToVideoSubmitOutput{}, fmt.Errorf("at least one reference video is required")
	}

	gw, err := c.f.gateway(videoSynthesisResource)
	if err != nil {
		return VideoToVideoSubmitOutput{}, err
	}

	args := map[string]interface{}{
		"prompt":               in.Prompt,
		"reference_video_urls": in.ReferenceVideoURLs,
		"negative_prompt":      in.NegativePrompt,
		"size":                 orDefault(in.Size, "1920*1080"),
		"shot_type":            orDefault(in.ShotType, "single"),
		"duration":             in.Duration,
	}
	if in.Duration == 0 {
		args["duration"] = 5
	}
	if in.Watermark != nil {
		args["watermark"] = *in.Watermark
	}
	if in.Seed != nil {
		args["seed"] = *in.Seed
	}

	p := videoToVideoFields.BuildPayload(c.f.Config.Media.VideoToVideoModel, args)
	handle, err := gw.Submit(ctx, corr, p)
	if err != nil {
		return VideoToVideoSubmitOutput{}, err
	}
	return VideoToVideoSubmitOutput{
		TaskID:     handle.TaskID,
		TaskStatus: handle.Status,
		RequestID:  handle.RequestID,
	}, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (c *VideoToVideoSubmit) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_video_to_video_wan26_submit_task",
		Description: "Wan 2.6 reference-to-video submission. Generates a new video reusing the characters from 1-3 reference videos; returns a task id to poll.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Text prompt. Refer to reference video characters as character1, character2, ...",
				},
				"reference_video_urls": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "1-3 reference video URLs, one character per video. Array order defines character order.",
				},
				"negative_prompt": map[string]interface{}{
					"type":        "string",
					"description": "Content to avoid, at most 500 characters.",
				},
				"size": map[string]interface{}{
					"type":        "string",
					"description": "Video resolution. Default 1920*1080.",
				},
				"duration": map[string]interface{}{
					"type":        "integer",
					"description": "Video duration in seconds, 5 or 10. Default 5.",
				},
				"shot_type": map[string]interface{}{
					"type":        "string",
					"description": "single or multi. Takes precedence over the prompt. Default single.",
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
			"required": []string{"prompt", "reference_video_urls"},
		},
		OutputSchema: asyncSubmitOutputSchema(),
	}
}
