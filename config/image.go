package config

import (
	"fmt"
	"os"
)

type ImageConfig struct {
	ApiUrl      string
	ApiKey      string
	Size        string
	StyleSuffix string
}

// GetImageConfig reads the image backend settings. A missing IMAGE_API_URL
// is not an error: it returns nil and the renderer falls back to its local
// placeholder implementation.
func GetImageConfig() (*ImageConfig, error) {
	apiUrl := os.Getenv("IMAGE_API_URL")
	if apiUrl == "" {
		return nil, nil
	}
	apiKey := os.Getenv("IMAGE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("IMAGE_API_KEY must be set when IMAGE_API_URL is set")
	}

	return &ImageConfig{
		ApiUrl:      apiUrl,
		ApiKey:      apiKey,
		Size:        getEnvString("IMAGE_SIZE", "1024x1024"),
		StyleSuffix: getEnvString("IMAGE_STYLE_SUFFIX", "in a cinematic illustration style"),
	}, nil
}
