package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentscope-ai/bricks-go/pkg/task"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"providers": {"dashscope": {"apiKey": "sk-json"}},
		"media": {"textToVideoModel": "wan2.6-t2v-custom"}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Providers.DashScope.APIKey != "sk-json" {
		t.Errorf("APIKey = %q", cfg.Providers.DashScope.APIKey)
	}
	if cfg.Media.TextToVideoModel != "wan2.6-t2v-custom" {
		t.Errorf("TextToVideoModel = %q", cfg.Media.TextToVideoModel)
	}
	// unset fields keep their defaults
	if cfg.Media.SpeechModel != "qwen-tts" {
		t.Errorf("SpeechModel = %q", cfg.Media.SpeechModel)
	}
	if cfg.Providers.DashScope.APIBase == "" {
		t.Error("default API base missing")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
providers:
  dashscope:
    apiKey: sk-yaml
    apiBase: https://dashscope-intl.aliyuncs.com/api/v1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Providers.DashScope.APIKey != "sk-yaml" {
		t.Errorf("APIKey = %q", cfg.Providers.DashScope.APIKey)
	}
	if cfg.Providers.DashScope.APIBase != "https://dashscope-intl.aliyuncs.com/api/v1" {
		t.Errorf("APIBase = %q", cfg.Providers.DashScope.APIBase)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if cfg.Media.KeyframeVideoModel != "wan2.2-kf2v-flash" {
		t.Errorf("defaults not applied: %+v", cfg.Media)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeFile(t, "config.json", `{not json`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	t.Run("config key wins over environment", func(t *testing.T) {
		t.Setenv("DASHSCOPE_API_KEY", "sk-env")
		cfg := DefaultConfig()
		cfg.Providers.DashScope.APIKey = "sk-config"

		key, err := cfg.APIKey(ProviderDashScope)
		if err != nil {
			t.Fatalf("APIKey: %v", err)
		}
		if key != "sk-config" {
			t.Errorf("key = %q", key)
		}
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("DASHSCOPE_API_KEY", "sk-env")
		key, err := DefaultConfig().APIKey(ProviderDashScope)
		if err != nil {
			t.Fatalf("APIKey: %v", err)
		}
		if key != "sk-env" {
			t.Errorf("key = %q", key)
		}
	})

	t.Run("missing key is a configuration error", func(t *testing.T) {
		t.Setenv("DASHSCOPE_API_KEY", "")
		_, err := DefaultConfig().APIKey(ProviderDashScope)
		var confErr *task.ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
		if confErr.Provider != ProviderDashScope {
			t.Errorf("Provider = %q", confErr.Provider)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := DefaultConfig().APIKey("nonesuch")
		var confErr *task.ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})
}

func TestAPIBase(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.APIBase(ProviderDashScope); got != "https://dashscope.aliyuncs.com/api/v1" {
		t.Errorf("APIBase = %q", got)
	}
	if got := cfg.APIBase("nonesuch"); got != "" {
		t.Errorf("APIBase for unknown provider = %q", got)
	}
}
