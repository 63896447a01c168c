package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	path, err := FetchArtifact(server.URL+"/out/video.mp4?Expires=123&Signature=abc", dir)
	if err != nil {
		t.Fatalf("FetchArtifact: %v", err)
	}
	if filepath.Base(path) != "video.mp4" {
		t.Errorf("filename = %s, want video.mp4 with the query stripped", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if string(data) != "video bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestFetchArtifactRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := FetchArtifact(server.URL+"/expired.mp4", t.TempDir()); err == nil {
		t.Fatal("expected an error for an expired URL")
	}
}

func TestArtifactFilenameFallback(t *testing.T) {
	if got := artifactFilename("https://x/"); got != "artifact" {
		t.Errorf("filename = %q", got)
	}
}
