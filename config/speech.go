package config

import (
	"fmt"
	"os"
)

type SpeechConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	VoiceID         string
	Stability       float64
	SimilarityBoost float64
}

// GetSpeechConfig reads the speech backend settings. A missing
// SPEECH_API_URL is not an error: it returns nil and the synthesizer falls
// back to a local offline voice when one is installed.
func GetSpeechConfig() (*SpeechConfig, error) {
	apiUrl := os.Getenv("SPEECH_API_URL")
	if apiUrl == "" {
		return nil, nil
	}
	apiKey := os.Getenv("SPEECH_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SPEECH_API_KEY must be set when SPEECH_API_URL is set")
	}
	voiceID := os.Getenv("SPEECH_VOICE_ID")
	if voiceID == "" {
		return nil, fmt.Errorf("SPEECH_VOICE_ID must be set when SPEECH_API_URL is set")
	}

	stability, err := getEnvFloat("SPEECH_STABILITY", 0.5)
	if err != nil {
		return nil, err
	}
	similarityBoost, err := getEnvFloat("SPEECH_SIMILARITY_BOOST", 0.75)
	if err != nil {
		return nil, err
	}

	return &SpeechConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		ModelId:         getEnvString("SPEECH_MODEL_ID", "eleven_monolingual_v1"),
		VoiceID:         voiceID,
		Stability:       stability,
		SimilarityBoost: similarityBoost,
	}, nil
}
