package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// KeyframeVideoSubmitInput submits a keyframe-to-video task: the model
// interpolates a silent video between a first and a last frame image.
type KeyframeVideoSubmitInput struct {
	FirstFrameURL  string `json:"first_frame_url"`
	LastFrameURL   string `json:"last_frame_url"`
	Prompt         string `json:"prompt,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	Template       string `json:"template,omitempty"`
	PromptExtend   *bool  `json:"prompt_extend,omitempty"`
	Watermark      *bool  `json:"watermark,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
}

type KeyframeVideoSubmitOutput struct {
	TaskID     string      `json:"task_id"`
	TaskStatus task.Status `json:"task_status"`
	RequestID  string      `json:"request_id"`
}

var keyframeVideoFields = backend.FieldMap{
	{Uniform: "first_frame_url", Section: backend.SectionInput},
	{Uniform: "last_frame_url", Section: backend.SectionInput},
	{Uniform: "prompt", Section: backend.SectionInput},
	{Uniform: "negative_prompt", Section: backend.SectionInput},
	{Uniform: "resolution", Section: backend.SectionParameters},
	{Uniform: "template", Section: backend.SectionParameters},
	{Uniform: "prompt_extend", Section: backend.SectionParameters},
	{Uniform: "watermark", Section: backend.SectionParameters},
	{Uniform: "seed", Section: backend.SectionParameters},
}

// KeyframeVideoSubmit submits an asynchronous keyframe-to-video task and
// returns its handle for later fetching.
type KeyframeVideoSubmit struct {
	f *Factory
}

func (f *Factory) KeyframeVideoSubmit() *KeyframeVideoSubmit {
	return &KeyframeVideoSubmit{f: f}
}

func (c *KeyframeVideoSubmit) Run(ctx context.Context, corr gateway.Correlation, in KeyframeVideoSubmitInput) (KeyframeVideoSubmitOutput, error) {
	if in.FirstFrameURL == "" || in.LastFrameURL == "" {
		return KeyframeVideoSubmitOutput{}, fmt.Errorf("first_frame_url and last_frame_url are required")
	}

	gw, err := c.f.videoGateway()
	if err != nil {
		return KeyframeVideoSubmitOutput{}, err
	}

	p := keyframeVideoFields.BuildPayload(c.f.Config.Media.KeyframeVideoModel, in.args())
	handle, err := gw.Submit(ctx, corr, p)
	if err != nil {
		return KeyframeVideoSubmitOutput{}, err
	}
	return KeyframeVideoSubmitOutput{
		TaskID:     handle.TaskID,
		TaskStatus: handle.Status,
		RequestID:  handle.RequestID,
	}, nil
}

func (in KeyframeVideoSubmitInput) args() map[string]interface{} {
	args := map[string]interface{}{
		"first_frame_url": in.FirstFrameURL,
		"last_frame_url":  in.LastFrameURL,
		"prompt":          in.Prompt,
		"negative_prompt": in.NegativePrompt,
		"resolution":      in.Resolution,
		"template":        in.Template,
	}
	if in.PromptExtend != nil {
		args["prompt_extend"] = *in.PromptExtend
	}
	if in.Watermark != nil {
		args["watermark"] = *in.Watermark
	}
	if in.Seed != nil {
		args["seed"] = *in.Seed
	}
	return args
}

func (c *KeyframeVideoSubmit) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_image_to_video_fl_wan22_submit_task",
		Description: "Wan 2.2 keyframe-to-video submission. Generates a smooth silent video between a first and a last frame image; returns a task id to poll.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"first_frame_url": map[string]interface{}{
					"type":        "string",
					"description": "First frame image, public URL or Base64.",
				},
				"last_frame_url": map[string]interface{}{
					"type":        "string",
					"description": "Last frame image, public URL or Base64.",
				},
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Desired motion or change, e.g. slow camera push while wind moves the leaves.",
				},
				"negative_prompt": map[string]interface{}{
					"type":        "string",
					"description": "Content to avoid, e.g. blur, flicker, watermark.",
				},
				"resolution": map[string]interface{}{
					"type":        "string",
					"description": "Video resolution: 480P, 720P or 1080P. Default 720P.",
				},
				"template": map[string]interface{}{
					"type":        "string",
					"description": "Optional effect template supported by the model.",
				},
				"prompt_extend": map[string]interface{}{
					"type":        "boolean",
					"description": "Let the provider rewrite the prompt. Default true.",
				},
				"watermark": map[string]interface{}{
					"type":        "boolean",
					"description": "Add a provider watermark. Default false.",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed in [0, 2147483647].",
				},
			},
			"required": []string{"first_frame_url", "last_frame_url"},
		},
		OutputSchema: map[string]interface{}{
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
		},
	}
}

// KeyframeVideoFetchInput looks up a previously submitted task.
type KeyframeVideoFetchInput struct {
	TaskID string `json:"task_id"`
}

type KeyframeVideoFetchOutput struct {
	VideoURL   string      `json:"video_url,omitempty"`
	TaskID     string      `json:"task_id"`
	TaskStatus task.Status `json:"task_status"`
	RequestID  string      `json:"request_id,omitempty"`
}

// KeyframeVideoFetch performs one lookup round trip. While the task is
// still PENDING or RUNNING the output carries the status and no URL;
// the caller polls until the status is SUCCEEDED.
type KeyframeVideoFetch struct {
	f *Factory
}

func (f *Factory) KeyframeVideoFetch() *KeyframeVideoFetch {
	return &KeyframeVideoFetch{f: f}
}

func (c *KeyframeVideoFetch) Run(ctx context.Context, corr gateway.Correlation, in KeyframeVideoFetchInput) (KeyframeVideoFetchOutput, error) {
	if in.TaskID == "" {
		return KeyframeVideoFetchOutput{}, fmt.Errorf("task_id is required")
	}

	gw, err := c.f.videoGateway()
	if err != nil {
		return KeyframeVideoFetchOutput{}, err
	}

	res, err := gw.Fetch(ctx, corr, in.TaskID)
	if err != nil {
		return KeyframeVideoFetchOutput{}, err
	}
	out := KeyframeVideoFetchOutput{TaskID: res.TaskID, TaskStatus: res.Status}
	if res.Done() {
		out.VideoURL = res.Result.Artifacts[0]
		out.RequestID = res.Result.RequestID
	}
	return out, nil
}

func (c *KeyframeVideoFetch) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_image_to_video_by_first_and_last_frame_wan22_fetch_result",
		Description: "Fetches the result of a Wan 2.2 keyframe-to-video task. Poll after submitting until the status becomes SUCCEEDED. The video URL expires after 24 hours.",
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
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "Public URL of the generated video (MP4, silent). Valid for 24 hours.",
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
