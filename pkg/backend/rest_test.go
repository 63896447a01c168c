package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRESTAdapterSubmit(t *testing.T) {
	var gotAuth, gotAsync, gotContentType string
	var gotBody Payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/services/aigc/video-generation/video-synthesis" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAsync = r.Header.Get("X-DashScope-Async")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"output":{"task_id":"t1","task_status":"PENDING"},"request_id":"r1"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.URL, "services/aigc/video-generation/video-synthesis", "sk-test")
	reply, err := adapter.Submit(context.Background(), Payload{
		Model: "wan2.6-t2v",
		Input: map[string]interface{}{"prompt": "a cat"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAsync != "enable" {
		t.Errorf("X-DashScope-Async = %q, want enable", gotAsync)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody.Model != "wan2.6-t2v" || gotBody.Input["prompt"] != "a cat" {
		t.Errorf("request body = %+v", gotBody)
	}
	if !reply.TransportOK || reply.TaskID != "t1" || reply.Status != "PENDING" || reply.RequestID != "r1" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestRESTAdapterGenerateOmitsAsyncHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-DashScope-Async"); got != "" {
			t.Errorf("X-DashScope-Async = %q, want unset", got)
		}
		w.Write([]byte(`{"output":{"choices":[{"message":{"content":[{"image":"https://x/1.png"}]}}]},"request_id":"r9"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.URL, "services/aigc/multimodal-generation/generation", "sk-test")
	reply, err := adapter.Generate(context.Background(), Payload{Model: "wan2.6-t2i"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(reply.Artifacts) != 1 || reply.Artifacts[0] != "https://x/1.png" {
		t.Errorf("Artifacts = %v", reply.Artifacts)
	}
}

func TestRESTAdapterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/tasks/t1" {
			t.Errorf("path = %s, want /tasks/t1", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"output":{"task_id":"t1","task_status":"SUCCEEDED","video_url":"https://x/video.mp4"},"request_id":"r2"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.URL, "services/aigc/video-generation/video-synthesis", "sk-test")
	reply, err := adapter.Fetch(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if reply.Status != "SUCCEEDED" || len(reply.Artifacts) != 1 {
		t.Errorf("reply = %+v", reply)
	}
}

func TestRESTAdapterTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"InvalidParameter","message":"bad size"}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.URL, "services/aigc/video-generation/video-synthesis", "sk-test")
	reply, err := adapter.Submit(context.Background(), Payload{Model: "wan2.6-t2v"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reply.TransportOK {
		t.Error("TransportOK = true for a 400 reply")
	}
	if reply.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", reply.StatusCode)
	}
	if reply.Raw == "" {
		t.Error("Raw body not preserved")
	}
}
