package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/domain"
)

const speechAdapterName = "speech synthesizer"

// fallbackTTSCommand is the offline voice used when no backend is
// configured; installed via `pip install edge-tts`.
const fallbackTTSCommand = "edge-tts"

const fallbackTTSVoice = "en-US-GuyNeural"

type SpeechApiRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type speechSynthesizer struct {
	ContentFetcher
	logger         outbound.LoggerPort
	speechConfig   *config.SpeechConfig
	commandTimeout time.Duration
}

// NewSpeechSynthesizer builds the dialogue audio adapter. With a nil
// speechConfig it falls back to a local offline voice if one is installed,
// and reports itself unavailable otherwise.
func NewSpeechSynthesizer(contentFetcher ContentFetcher, speechConfig *config.SpeechConfig,
	commandTimeout time.Duration, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		speechConfig:   speechConfig,
		commandTimeout: commandTimeout,
	}
}

// Synthesize voices every speaker with the single configured voice; Speaker
// distinguishes artifact names, not voice selection.
func (s *speechSynthesizer) Synthesize(ctx context.Context, params outbound.SynthesizeSpeechParams) error {
	if s.speechConfig == nil {
		return s.synthesizeLocal(ctx, params)
	}

	req, err := s.getRequest(ctx, params.Text)
	if err != nil {
		s.logger.Error(err, "Failed to construct the HTTP request for audio fetching")
		return domain.NewAdapterUnavailable(speechAdapterName, err)
	}

	audio, err := s.FetchContent(req)
	if err != nil {
		return domain.NewAdapterUnavailable(speechAdapterName, err)
	}
	if len(audio) == 0 {
		return domain.NewAdapterOutputInvalid(speechAdapterName, fmt.Errorf("response contains no audio data"))
	}

	if err := os.WriteFile(params.OutPath, audio, 0644); err != nil {
		return fmt.Errorf("write audio %s: %w", params.OutPath, err)
	}
	return nil
}

func (s *speechSynthesizer) synthesizeLocal(ctx context.Context, params outbound.SynthesizeSpeechParams) error {
	if _, err := exec.LookPath(fallbackTTSCommand); err != nil {
		return domain.NewAdapterUnavailable(speechAdapterName,
			fmt.Errorf("no backend configured and %s is not installed", fallbackTTSCommand))
	}

	newCtx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(newCtx, fallbackTTSCommand,
		"--voice", fallbackTTSVoice,
		"--text", params.Text,
		"--write-media", params.OutPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return domain.NewAdapterUnavailable(speechAdapterName,
			fmt.Errorf("%s failed: %v: %s", fallbackTTSCommand, err, bytes.TrimSpace(out)))
	}
	return nil
}

func (s *speechSynthesizer) getRequest(ctx context.Context, text string) (*http.Request, error) {
	reqBody := SpeechApiRequest{
		Text:    text,
		ModelId: s.speechConfig.ModelId,
		VoiceSettings: VoiceSettings{
			Stability:       s.speechConfig.Stability,
			SimilarityBoost: s.speechConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.speechConfig.ApiUrl+"/"+s.speechConfig.VoiceID, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "audio/mpeg")
	req.Header.Add("xi-api-key", s.speechConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
