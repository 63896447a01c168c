// Package capabilities holds the concrete generative-media components:
// Wan image generation and editing, Wan video synthesis (async
// submit/fetch pairs) and Qwen speech synthesis. Each component is a
// thin typed wrapper over the task gateway with a declarative payload
// field map and a hand-written schema for discovery.
package capabilities

import (
	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/config"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
)

const (
	videoSynthesisResource = "services/aigc/video-generation/video-synthesis"
	multimodalResource     = "services/aigc/multimodal-generation/generation"
)

// Factory builds capability components wired to a provider transport.
type Factory struct {
	Config *config.Config
	Trace  gateway.TraceFunc

	// VideoClient, when set, routes video synthesis capabilities through
	// the pre-built client transport family instead of raw REST. The
	// client carries its own credential; the config boundary is still
	// enforced before any call.
	VideoClient backend.Client

	// newAdapter is the transport seam; tests swap it for a mock.
	newAdapter func(resource, apiKey string) backend.Adapter
}

// NewFactory creates a capability factory.
func NewFactory(cfg *config.Config, trace gateway.TraceFunc) *Factory {
	f := &Factory{Config: cfg, Trace: trace}
	f.newAdapter = func(resource, apiKey string) backend.Adapter {
		return backend.NewRESTAdapter(cfg.APIBase(config.ProviderDashScope), resource, apiKey)
	}
	return f
}

// gateway resolves the provider credential and builds a gateway for one
// resource. Credential failure is fatal before any transport exists.
func (f *Factory) gateway(resource string) (*gateway.Gateway, error) {
	key, err := f.Config.APIKey(config.ProviderDashScope)
	if err != nil {
		return nil, err
	}
	return gateway.New(f.newAdapter(resource, key), f.Trace), nil
}

// videoGateway is like gateway but honors an injected video client.
func (f *Factory) videoGateway() (*gateway.Gateway, error) {
	key, err := f.Config.APIKey(config.ProviderDashScope)
	if err != nil {
		return nil, err
	}
	if f.VideoClient != nil {
		return gateway.New(backend.NewClientAdapter(f.VideoClient), f.Trace), nil
	}
	return gateway.New(f.newAdapter(videoSynthesisResource, key), f.Trace), nil
}

// userMessages builds the multimodal message list: the prompt text plus
// any reference images.
func userMessages(prompt string, images []string) []map[string]interface{} {
	content := []map[string]interface{}{{"text": prompt}}
	for _, img := range images {
		content = append(content, map[string]interface{}{"image": img})
	}
	return []map[string]interface{}{{"role": "user", "content": content}}
}
