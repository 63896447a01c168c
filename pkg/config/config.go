package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// ProviderDashScope is the name of the Alibaba Cloud Model Studio
// provider all Wan and Qwen capabilities run against.
const ProviderDashScope = "dashscope"

const defaultDashScopeBase = "https://dashscope.aliyuncs.com/api/v1"

type ProviderConfig struct {
	APIKey  string `json:"apiKey" yaml:"apiKey"`
	APIBase string `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
}

type ProvidersConfig struct {
	DashScope ProviderConfig `json:"dashscope" yaml:"dashscope"`
}

// MediaConfig carries the default model per capability. Callers can
// still override the model per request; these are the fallbacks.
type MediaConfig struct {
	TextToImageModel   string `json:"textToImageModel" yaml:"textToImageModel"`
	ImageEditModel     string `json:"imageEditModel" yaml:"imageEditModel"`
	KeyframeVideoModel string `json:"keyframeVideoModel" yaml:"keyframeVideoModel"`
	TextToVideoModel   string `json:"textToVideoModel" yaml:"textToVideoModel"`
	VideoToVideoModel  string `json:"videoToVideoModel" yaml:"videoToVideoModel"`
	SpeechModel        string `json:"speechModel" yaml:"speechModel"`
}

type Config struct {
	Workspace string          `json:"workspace" yaml:"workspace"`
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
	Media     MediaConfig     `json:"media" yaml:"media"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: ".bricks/workspace",
		Providers: ProvidersConfig{
			DashScope: ProviderConfig{APIBase: defaultDashScopeBase},
		},
		Media: MediaConfig{
			TextToImageModel:   "wan2.6-t2i",
			ImageEditModel:     "wan2.6-image",
			KeyframeVideoModel: "wan2.2-kf2v-flash",
			TextToVideoModel:   "wan2.6-t2v",
			VideoToVideoModel:  "wan2.6-r2v",
			SpeechModel:        "qwen-tts",
		},
	}
}

// LoadConfig loads the configuration from the given path. A missing file
// is not an error: defaults apply and credentials can still come from
// the environment. Both JSON and YAML files are accepted, selected by
// extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(".bricks", "config.json")
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	if config.Providers.DashScope.APIBase == "" {
		config.Providers.DashScope.APIBase = defaultDashScopeBase
	}
	return config, nil
}

// APIKey returns the configured key for a provider, falling back to the
// provider's conventional environment variable. A missing key is a
// ConfigurationError; components check it before any network call.
func (c *Config) APIKey(provider string) (string, error) {
	switch provider {
	case ProviderDashScope:
		if c.Providers.DashScope.APIKey != "" {
			return c.Providers.DashScope.APIKey, nil
		}
		if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" {
			return v, nil
		}
		return "", &task.ConfigurationError{
			Provider: provider,
			Reason:   "set providers.dashscope.apiKey in the config file or the DASHSCOPE_API_KEY environment variable",
		}
	default:
		return "", &task.ConfigurationError{Provider: provider, Reason: "unknown provider"}
	}
}

// APIBase returns the REST base URL for a provider.
func (c *Config) APIBase(provider string) string {
	switch provider {
	case ProviderDashScope:
		return c.Providers.DashScope.APIBase
	default:
		return ""
	}
}
