package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/domain"
)

func TestImageRenderer_FallbackIsDeterministic(t *testing.T) {
	renderer := NewImageRenderer(nil, nil, NewZerologWrapper())
	dir := t.TempDir()

	firstPath := filepath.Join(dir, "first.png")
	secondPath := filepath.Join(dir, "second.png")

	if err := renderer.RenderImage(context.Background(), "a castle at dusk", firstPath); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := renderer.RenderImage(context.Background(), "a castle at dusk", secondPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	first, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	second, err := os.ReadFile(secondPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same prompt produced different placeholder images")
	}
}

func TestImageRenderer_OverwritesSamePath(t *testing.T) {
	renderer := NewImageRenderer(nil, nil, NewZerologWrapper())
	outPath := filepath.Join(t.TempDir(), "scene_000.png")

	for i := 0; i < 2; i++ {
		if err := renderer.RenderImage(context.Background(), "a castle at dusk", outPath); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(outPath))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single artifact, found %d", len(entries))
	}
}

func TestImageRenderer_BackendSuccess(t *testing.T) {
	imageBytes := []byte("not really a png")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)}},
		})
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	renderer := NewImageRenderer(NewContentFetcher(logger, time.Second), &config.ImageConfig{
		ApiUrl:      server.URL,
		ApiKey:      "test",
		Size:        "1024x1024",
		StyleSuffix: "in a cinematic illustration style",
	}, logger)

	outPath := filepath.Join(t.TempDir(), "scene_000.png")
	if err := renderer.RenderImage(context.Background(), "a castle at dusk", outPath); err != nil {
		t.Fatalf("render: %v", err)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(written, imageBytes) {
		t.Error("decoded image does not match backend payload")
	}
}

func TestImageRenderer_BackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	renderer := NewImageRenderer(NewContentFetcher(logger, time.Second), &config.ImageConfig{
		ApiUrl: server.URL,
		ApiKey: "test",
	}, logger)

	err := renderer.RenderImage(context.Background(), "a castle", filepath.Join(t.TempDir(), "out.png"))

	var adapterErr *domain.AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if adapterErr.Kind != domain.AdapterUnavailable {
		t.Errorf("expected unavailable, got %s", adapterErr.Kind)
	}
	if adapterErr.Adapter != "image renderer" {
		t.Errorf("error does not identify the adapter: %s", adapterErr.Adapter)
	}
}

func TestImageRenderer_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	renderer := NewImageRenderer(NewContentFetcher(logger, time.Second), &config.ImageConfig{
		ApiUrl: server.URL,
		ApiKey: "test",
	}, logger)

	err := renderer.RenderImage(context.Background(), "a castle", filepath.Join(t.TempDir(), "out.png"))

	var adapterErr *domain.AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if adapterErr.Kind != domain.AdapterOutputInvalid {
		t.Errorf("expected invalid output, got %s", adapterErr.Kind)
	}
}
