package capabilities

import (
	"context"
	"errors"
	"testing"

	"github.com/agentscope-ai/bricks-go/pkg/backend"
	"github.com/agentscope-ai/bricks-go/pkg/config"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

func correlation(id string) gateway.Correlation {
	return gateway.Correlation{RequestID: id}
}

// recordingAdapter captures the payload of the last call and replies
// with a canned reply.
type recordingAdapter struct {
	reply       backend.Reply
	lastPayload backend.Payload
	lastTaskID  string
	calls       int
}

func (a *recordingAdapter) Submit(ctx context.Context, p backend.Payload) (backend.Reply, error) {
	a.calls++
	a.lastPayload = p
	return a.reply, nil
}

func (a *recordingAdapter) Fetch(ctx context.Context, taskID string) (backend.Reply, error) {
	a.calls++
	a.lastTaskID = taskID
	return a.reply, nil
}

func (a *recordingAdapter) Generate(ctx context.Context, p backend.Payload) (backend.Reply, error) {
	a.calls++
	a.lastPayload = p
	return a.reply, nil
}

// scriptedClient plays the pre-built client transport for video tasks.
type scriptedClient struct {
	callReply *backend.ClientReply
	taskReply *backend.ClientReply
	calls     int
}

func (c *scriptedClient) Call(ctx context.Context, p backend.Payload) (*backend.ClientReply, error) {
	c.calls++
	return c.callReply, nil
}

func (c *scriptedClient) Task(ctx context.Context, taskID string) (*backend.ClientReply, error) {
	c.calls++
	return c.taskReply, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Providers.DashScope.APIKey = "sk-test"
	return cfg
}

func factoryWith(cfg *config.Config, adapter backend.Adapter) *Factory {
	f := NewFactory(cfg, nil)
	f.newAdapter = func(resource, apiKey string) backend.Adapter { return adapter }
	return f
}

func TestKeyframeVideoSubmitThenFetch(t *testing.T) {
	client := &scriptedClient{
		callReply: &backend.ClientReply{
			StatusCode: 200,
			RequestID:  "r1",
			Output:     &backend.ClientOutput{TaskID: "t1", TaskStatus: "PENDING"},
		},
		taskReply: &backend.ClientReply{
			StatusCode: 200,
			RequestID:  "r2",
			Output: &backend.ClientOutput{
				TaskID:     "t1",
				TaskStatus: "SUCCEEDED",
				VideoURL:   "https://x/video.mp4",
			},
		},
	}

	f := NewFactory(testConfig(), nil)
	f.VideoClient = client

	submit, err := f.KeyframeVideoSubmit().Run(context.Background(), correlation(""), KeyframeVideoSubmitInput{
		FirstFrameURL: "https://x/first.png",
		LastFrameURL:  "https://x/last.png",
		Prompt:        "slow camera push",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submit.TaskID != "t1" || submit.TaskStatus != task.StatusPending || submit.RequestID != "r1" {
		t.Errorf("submit output = %+v", submit)
	}

	fetch, err := f.KeyframeVideoFetch().Run(context.Background(), correlation(""), KeyframeVideoFetchInput{TaskID: "t1"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fetch.VideoURL != "https://x/video.mp4" || fetch.TaskStatus != task.StatusSucceeded {
		t.Errorf("fetch output = %+v", fetch)
	}
	if fetch.RequestID != "r2" {
		t.Errorf("RequestID = %q", fetch.RequestID)
	}
}

func TestKeyframeVideoSubmitValidatesFrames(t *testing.T) {
	client := &scriptedClient{}
	f := NewFactory(testConfig(), nil)
	f.VideoClient = client

	_, err := f.KeyframeVideoSubmit().Run(context.Background(), correlation(""), KeyframeVideoSubmitInput{
		FirstFrameURL: "https://x/first.png",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if client.calls != 0 {
		t.Errorf("transport was reached %d times for an invalid input", client.calls)
	}
}

func TestImageGenerationBuildsMultimodalPayload(t *testing.T) {
	adapter := &recordingAdapter{reply: backend.Reply{
		TransportOK: true, StatusCode: 200, RequestID: "r1",
		Artifacts: []string{"https://x/1.png", "https://x/2.png"},
	}}
	f := factoryWith(testConfig(), adapter)

	n := 2
	out, err := f.ImageGeneration().Run(context.Background(), correlation("caller-1"), ImageGenerationInput{
		Prompt: "a cat on a roof",
		Size:   "1280*1280",
		N:      n,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Results) != 2 || out.Results[0] != "https://x/1.png" {
		t.Errorf("Results = %v", out.Results)
	}
	if out.RequestID != "caller-1" {
		t.Errorf("RequestID = %q, want the caller correlation id", out.RequestID)
	}

	p := adapter.lastPayload
	if p.Model != "wan2.6-t2i" {
		t.Errorf("Model = %q", p.Model)
	}
	if p.Parameters["size"] != "1280*1280" || p.Parameters["n"] != 2 {
		t.Errorf("Parameters = %v", p.Parameters)
	}
	messages, ok := p.Input["messages"].([]map[string]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("messages = %v", p.Input["messages"])
	}
	content := messages[0]["content"].([]map[string]interface{})
	if content[0]["text"] != "a cat on a roof" {
		t.Errorf("content = %v", content)
	}
}

func TestImageEditIncludesReferenceImages(t *testing.T) {
	adapter := &recordingAdapter{reply: backend.Reply{
		TransportOK: true, StatusCode: 200,
		Artifacts: []string{"https://x/edited.png"},
	}}
	f := factoryWith(testConfig(), adapter)

	out, err := f.ImageEdit().Run(context.Background(), correlation(""), ImageEditInput{
		Prompt: "make the sky stormy",
		Images: []string{"https://x/base.png"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Results) != 1 {
		t.Errorf("Results = %v", out.Results)
	}

	if adapter.lastPayload.Model != "wan2.6-image" {
		t.Errorf("Model = %q", adapter.lastPayload.Model)
	}
	messages := adapter.lastPayload.Input["messages"].([]map[string]interface{})
	content := messages[0]["content"].([]map[string]interface{})
	if len(content) != 2 || content[1]["image"] != "https://x/base.png" {
		t.Errorf("content = %v", content)
	}
}

func TestTextToSpeechDefaultsVoice(t *testing.T) {
	adapter := &recordingAdapter{reply: backend.Reply{
		TransportOK: true, StatusCode: 200,
		Artifacts: []string{"https://x/audio.wav"},
	}}
	f := factoryWith(testConfig(), adapter)

	out, err := f.TextToSpeech().Run(context.Background(), correlation(""), TextToSpeechInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.AudioURL != "https://x/audio.wav" {
		t.Errorf("AudioURL = %q", out.AudioURL)
	}
	if adapter.lastPayload.Input["voice"] != "Cherry" {
		t.Errorf("voice = %v, want the Cherry default", adapter.lastPayload.Input["voice"])
	}
	if adapter.lastPayload.Model != "qwen-tts" {
		t.Errorf("Model = %q", adapter.lastPayload.Model)
	}
}

func TestVideoToVideoDefaults(t *testing.T) {
	adapter := &recordingAdapter{reply: backend.Reply{
		TransportOK: true, StatusCode: 200, TaskID: "t9", Status: "PENDING",
	}}
	f := factoryWith(testConfig(), adapter)

	out, err := f.VideoToVideoSubmit().Run(context.Background(), correlation(""), VideoToVideoSubmitInput{
		Prompt:             "extend the shot",
		ReferenceVideoURLs: []string{"https://x/ref.mp4"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.TaskID != "t9" {
		t.Errorf("TaskID = %q", out.TaskID)
	}

	p := adapter.lastPayload
	if p.Parameters["size"] != "1920*1080" {
		t.Errorf("size = %v", p.Parameters["size"])
	}
	if p.Parameters["duration"] != 5 {
		t.Errorf("duration = %v", p.Parameters["duration"])
	}
	if p.Parameters["shot_type"] != "single" {
		t.Errorf("shot_type = %v", p.Parameters["shot_type"])
	}
}

func TestMissingCredentialFailsBeforeTransport(t *testing.T) {
	t.Setenv("DASHSCOPE_API_KEY", "")

	adapter := &recordingAdapter{reply: backend.Reply{TransportOK: true, StatusCode: 200}}
	cfg := config.DefaultConfig()
	f := factoryWith(cfg, adapter)

	_, err := f.ImageGeneration().Run(context.Background(), correlation(""), ImageGenerationInput{Prompt: "a cat"})
	var confErr *task.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if adapter.calls != 0 {
		t.Errorf("transport was reached %d times without a credential", adapter.calls)
	}

	client := &scriptedClient{}
	f2 := NewFactory(cfg, nil)
	f2.VideoClient = client
	_, err = f2.TextToVideoSubmit().Run(context.Background(), correlation(""), TextToVideoSubmitInput{Prompt: "a cat"})
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("client was reached %d times without a credential", client.calls)
	}
}

func TestComponentSpecsAreDiscoverable(t *testing.T) {
	f := NewFactory(testConfig(), nil)
	specs := []string{
		f.ImageGeneration().Spec().Name,
		f.ImageEdit().Spec().Name,
		f.TextToVideoSubmit().Spec().Name,
		f.KeyframeVideoSubmit().Spec().Name,
		f.KeyframeVideoFetch().Spec().Name,
		f.VideoToVideoSubmit().Spec().Name,
		f.VideoFetch().Spec().Name,
		f.TextToSpeech().Spec().Name,
	}
	seen := make(map[string]bool)
	for _, name := range specs {
		if name == "" {
			t.Error("component with empty spec name")
		}
		if seen[name] {
			t.Errorf("duplicate spec name %q", name)
		}
		seen[name] = true
	}
}
