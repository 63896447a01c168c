package capabilities

import (
	"context"
	"fmt"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
)

// TextToSpeechInput synthesizes speech from text.
type TextToSpeechInput struct {
	Text         string `json:"text"`
	Voice        string `json:"voice,omitempty"`
	LanguageType string `json:"language_type,omitempty"`
}

type TextToSpeechOutput struct {
	AudioURL  string `json:"audio_url"`
	RequestID string `json:"request_id"`
}

var textToSpeechFields = backend.FieldMap{
	{Uniform: "text", Section: backend.SectionInput},
	{Uniform: "voice", Section: backend.SectionInput},
	{Uniform: "language_type", Section: backend.SectionParameters},
}

// TextToSpeech synthesizes speech with the Qwen TTS model. One
// synchronous round trip; the reply carries the audio URL.
type TextToSpeech struct {
	f *Factory
}

func (f *Factory) TextToSpeech() *TextToSpeech {
	return &TextToSpeech{f: f}
}

func (c *TextToSpeech) Run(ctx context.Context, corr gateway.Correlation, in TextToSpeechInput) (TextToSpeechOutput, error) {
	if in.Text == "" {
		return TextToSpeechOutput{}, fmt.Errorf("text is required")
	}

	gw, err := c.f.gateway(multimodalResource)
	if err != nil {
		return TextToSpeechOutput{}, err
	}

	args := map[string]interface{}{
		"text":          in.Text,
		"voice":         orDefault(in.Voice, "Cherry"),
		"language_type": in.LanguageType,
	}
	p := textToSpeechFields.BuildPayload(c.f.Config.Media.SpeechModel, args)

	res, err := gw.Generate(ctx, corr, p)
	if err != nil {
		return TextToSpeechOutput{}, err
	}
	return TextToSpeechOutput{AudioURL: res.Artifacts[0], RequestID: res.RequestID}, nil
}

func (c *TextToSpeech) Spec() component.Spec {
	return component.Spec{
		Name:        "modelstudio_qwen_text_to_speech",
		Description: "Qwen speech synthesis. Converts text into natural speech and returns the audio URL.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to synthesize.",
				},
				"voice": map[string]interface{}{
					"type":        "string",
					"description": "Voice to use, e.g. Cherry (default), Serena, Ethan.",
				},
				"language_type": map[string]interface{}{
					"type":        "string",
					"description": "Language hint such as Chinese or English.",
				},
			},
			"required": []string{"text"},
		},
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"audio_url": map[string]interface{}{
					"type":        "string",
					"description": "URL of the synthesized audio. Expires 24 hours after generation.",
				},
				"request_id": map[string]interface{}{
					"type":        "string",
					"description": "Request id for log correlation.",
				},
			},
		},
	}
}
