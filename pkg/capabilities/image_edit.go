package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
)

// ImageEditInput is the uniform request for Wan 2.6 image editing: a
// prompt plus 1-4 reference images to edit or restyle.
type ImageEditInput struct {
	Prompt         string   `json:"prompt"`
	Images         []string `json:"images"`
	NegativePrompt string   `json:"negative_prompt,omitempty"`
	Size           string   `json:"size,omitempty"`
	N              int      `json:"n,omitempty"`
	Seed           *int     `json:"seed,omitempty"`
	Watermark      *bool    `json:"watermark,omitempty"`
	PromptExtend   *bool    `json:"prompt_extend,omitempty"`
}

type ImageEditOutput struct {
	Results   []string `json:"results"`
	RequestID string   `json:"request_id"`
}

// ImageEdit edits or restyles reference images under a text prompt.
type ImageEdit struct {
	f *Factory
}

func (f *Factory) ImageEdit() *ImageEdit {
	return &ImageEdit{f: f}
}

func (c *ImageEdit) Run(ctx context.Context, corr gateway.Correlation, in ImageEditInput) (ImageEditOutput, error) {
	if in.Prompt == "" {
		return ImageEditOutput{}, fmt.Errorf("prompt is required")
	}
	if len(in.Images) == 0 {
		return ImageEditOutput{}, fmt.Errorf("at least one reference image is required")
	}

	gw, err := c.f.gateway(multimodalResource)
	if err != nil {
		return ImageEditOutput{}, err
	}

	// Same tuning surface as text-to-image
	p := imageTuningFields.BuildPayload(c.f.Config.Media.ImageEditModel, ImageGenerationInput{
		NegativePrompt: in.NegativePrompt,
		Size:           in.Size,
		N:              in.N,
		Seed:           in.Seed,
		Watermark:      in.Watermark,
		PromptExtend:   in.PromptExtend,
	}.args())
	p.Input["messages"] = userMessages(in.Prompt, in.Images)

	res, err := gw.Generate(ctx, corr, p)
	if err != nil {
		return ImageEditOutput{}, err
	}
	return ImageEditOutput{Results: res.Artifacts, RequestID: res.RequestID}, nil
}

func (c *ImageEdit) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_wan26_image_edit",
		Description: "Wan 2.6 image editing. Edits, restyles or recombines 1-4 reference images under a text prompt and returns the edited image URLs.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Positive prompt describing the desired edit.",
				},
				"images": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Reference image URLs, at least one.",
				},
				"negative_prompt": map[string]interface{}{
					"type":        "string",
					"description": "Content to avoid.",
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
					"description": "Let the provider rewrite the prompt. Default true.",
				},
			},
			"required": []string{"prompt", "images"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"results": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Edited image URLs. URLs expire 24 hours after generation.",
				},
				"request_id": map[string]interface{}{
					"type":        "string",
					"description": "Request id for log correlation.",
				},
			},
		},
	}
}
