package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FetchArtifact downloads a generated artifact URL into destDir and
// returns the local path. Provider artifact URLs expire 24 hours after
// generation, so callers download what they want to keep.
func FetchArtifact(url, destDir string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download artifact: %s", resp.Status)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(destDir, artifactFilename(url))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// artifactFilename derives a local filename from the artifact URL,
// dropping any signing query parameters.
func artifactFilename(url string) string {
	name := filepath.Base(url)
	if idx := strings.Index(name, "?"); idx != -1 {
		name = name[:idx]
	}
	if name == "" || name == "." || name == "/" {
		name = "artifact"
	}
	return name
}
