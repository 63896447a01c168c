package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
)

// ImageGenerationInput is the uniform request for Wan 2.6 text-to-image.
// Everything beyond the prompt is an optional pass-through tuning field.
type ImageGenerationInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Size           string `json:"size,omitempty"`
	N              int    `json:"n,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
	Watermark      *bool  `json:"watermark,omitempty"`
	PromptExtend   *bool  `json:"prompt_extend,omitempty"`
}

type ImageGenerationOutput struct {
	Results   []string `json:"results"`
	RequestID string   `json:"request_id"`
}

var imageTuningFields = backend.FieldMap{
	{Uniform: "negative_prompt", Section: backend.SectionParameters},
	{Uniform: "size", Section: backend.SectionParameters},
	{Uniform: "n", Section: backend.SectionParameters},
	{Uniform: "seed", Section: backend.SectionParameters},
	{Uniform: "watermark", Section: backend.SectionParameters},
	{Uniform: "prompt_extend", Section: backend.SectionParameters},
}

// ImageGeneration generates images from a text prompt. The provider call
// is synchronous-looking: one round trip whose reply already carries the
// image URLs.
type ImageGeneration struct {
	f *Factory
}

func (f *Factory) ImageGeneration() *ImageGeneration {
	return &ImageGeneration{f: f}
}

func (c *ImageGeneration) Run(ctx context.Context, corr gateway.Correlation, in ImageGenerationInput) (ImageGenerationOutput, error) {
	if in.Prompt == "" {
		return ImageGenerationOutput{}, fmt.Errorf("prompt is required")
	}

	gw, err := c.f.gateway(multimodalResource)
	if err != nil {
		return ImageGenerationOutput{}, err
	}

	p := imageTuningFields.BuildPayload(c.f.Config.Media.TextToImageModel, in.args())
	p.Input["messages"] = userMessages(in.Prompt, nil)

	res, err := gw.Generate(ctx, corr, p)
	if err != nil {
		return ImageGenerationOutput{}, err
	}
	return ImageGenerationOutput{Results: res.Artifacts, RequestID: res.RequestID}, nil
}

func (in ImageGenerationInput) args() map[string]interface{} {
	args := map[string]interface{}{
		"negative_prompt": in.NegativePrompt,
		"size":            in.Size,
	}
	if in.N > 0 {
		args["n"] = in.N
	}
	if in.Seed != nil {
		args["seed"] = *in.Seed
	}
	if in.Watermark != nil {
		args["watermark"] = *in.Watermark
	}
	if in.PromptExtend != nil {
		args["prompt_extend"] = *in.PromptExtend
	}
	return args
}

func (c *ImageGeneration) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_wan26_image_generation",
		Description: "Wan 2.6 text-to-image generation. Generates high-quality images from a text description and returns the image URLs.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Positive prompt describing the desired image content.",
				},
				"negative_prompt": map[string]interface{}{
					"type":        "string",
					"description": "Content to avoid, e.g. low quality, blur, text.",
				},
				"size": map[string]interface{}{
					"type":        "string",
					"description": "Output resolution such as 1280*1280 (default).",
				},
				"n": map[string]interface{}{
					"type":        "integer",
					"description": "Number of images to generate, 1-4. Default 1.",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for reproducibility.",
				},
				"watermark": map[string]interface{}{
					"type":        "boolean",
					"description": "Add a provider watermark. Default false.",
				},
				"prompt_extend": map[string]interface{}{
					"type":        "boolean",
					"description": "Let the provider rewrite the prompt for better results. Default true.",
				},
			},
			"required": []string{"prompt"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"results": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Generated image URLs. URLs expire 24 hours after generation.",
				},
				"request_id": map[string]interface{}{
					"type":        "string",
					"description": "Request id for log correlation.",
				},
			},
		},
	}
}
