package capabilities

import (
	"github.com/agentscope-ai/bricks-go/pkg/component"
	"github.com/agentscope-ai/bricks-go/pkg/registry"
)

// DefaultBundles assembles the capability bundles advertised to a
// hosting tool-discovery runtime. Component order within a bundle is the
// advertised operation order.
func DefaultBundles(f *Factory) map[string]registry.Bundle {
	return map[string]registry.Bundle{
		"modelstudio_wan_image": {
			Instructions: "Wan image services: high-quality text-to-image generation and reference-based image editing.",
			Components: []component.Component{
				f.ImageGeneration(),
				f.ImageEdit(),
			},
		},
		"modelstudio_wan_video": {
			Instructions: "Wan video services: asynchronous text-to-video, keyframe-to-video and reference-to-video generation. Submit a task, then poll the fetch operation until it succeeds.",
			Components: []component.Component{
				f.TextToVideoSubmit(),
				f.KeyframeVideoSubmit(),
				f.KeyframeVideoFetch(),
				f.VideoToVideoSubmit(),
				f.VideoFetch(),
			},
		},
		"modelstudio_qwen_speech": {
			Instructions: "Qwen speech services: multilingual text-to-speech synthesis.",
			Components: []component.Component{
				f.TextToSpeech(),
			},
		},
	}
}
