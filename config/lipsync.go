package config

import (
	"os"
)

type LipSyncConfig struct {
	ApiUrl string
	ApiKey string
}

// GetLipSyncConfig reads the lip-sync service settings. When LIPSYNC_API_URL
// is unset the stage is skipped entirely and scenes get no talking-head
// overlay.
func GetLipSyncConfig() *LipSyncConfig {
	apiUrl := os.Getenv("LIPSYNC_API_URL")
	if apiUrl == "" {
		return nil
	}
	return &LipSyncConfig{
		ApiUrl: apiUrl,
		ApiKey: os.Getenv("LIPSYNC_API_KEY"),
	}
}
