package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/domain"
)

func TestSpeechSynthesizer_BackendSuccess(t *testing.T) {
	audioBytes := []byte("not really an mp3")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "test" {
			t.Errorf("missing api key header")
		}
		_, _ = w.Write(audioBytes)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	synthesizer := NewSpeechSynthesizer(NewContentFetcher(logger, time.Second), &config.SpeechConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test",
		ModelId: "eleven_monolingual_v1",
		VoiceID: "narrator",
	}, time.Second, logger)

	outPath := filepath.Join(t.TempDir(), "scene_000_turn_00_sam.mp3")
	err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechParams{
		Speaker: "sam",
		Text:    "We should go now.",
		OutPath: outPath,
	})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(written, audioBytes) {
		t.Error("written audio does not match backend payload")
	}
}

func TestSpeechSynthesizer_SingleVoiceForAllSpeakers(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte("audio"))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	synthesizer := NewSpeechSynthesizer(NewContentFetcher(logger, time.Second), &config.SpeechConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test",
		VoiceID: "narrator",
	}, time.Second, logger)

	dir := t.TempDir()
	for i, speaker := range []string{"hero", "witch"} {
		err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechParams{
			Speaker: speaker,
			Text:    "A line.",
			OutPath: filepath.Join(dir, fmt.Sprintf("turn_%d.mp3", i)),
		})
		if err != nil {
			t.Fatalf("synthesize %s: %v", speaker, err)
		}
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 backend calls, got %d", len(paths))
	}
	for _, path := range paths {
		if path != "/narrator" {
			t.Errorf("backend called with voice path %q, want the configured voice for every speaker", path)
		}
	}
}

func TestSpeechSynthesizer_BackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	synthesizer := NewSpeechSynthesizer(NewContentFetcher(logger, time.Second), &config.SpeechConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test",
		VoiceID: "narrator",
	}, time.Second, logger)

	err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechParams{
		Speaker: "sam",
		Text:    "We should go now.",
		OutPath: filepath.Join(t.TempDir(), "out.mp3"),
	})

	var adapterErr *domain.AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if adapterErr.Kind != domain.AdapterUnavailable {
		t.Errorf("expected unavailable, got %s", adapterErr.Kind)
	}
	if adapterErr.Adapter != "speech synthesizer" {
		t.Errorf("error does not identify the adapter: %s", adapterErr.Adapter)
	}
}

func TestSpeechSynthesizer_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	synthesizer := NewSpeechSynthesizer(NewContentFetcher(logger, time.Second), &config.SpeechConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test",
		VoiceID: "narrator",
	}, time.Second, logger)

	err := synthesizer.Synthesize(context.Background(), outbound.SynthesizeSpeechParams{
		Speaker: "sam",
		Text:    "We should go now.",
		OutPath: filepath.Join(t.TempDir(), "out.mp3"),
	})

	var adapterErr *domain.AdapterError
	if !errors.As(err, &adapterErr) {
		t.Fatalf("expected AdapterError, got %v", err)
	}
	if adapterErr.Kind != domain.AdapterOutputInvalid {
		t.Errorf("expected invalid output, got %s", adapterErr.Kind)
	}
}
