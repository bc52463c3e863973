package config

import (
	"time"
)

// PipelineConfig carries the orchestration and encoding knobs. All values
// have defaults; none are required.
type PipelineConfig struct {
	MaxScenes      int
	SceneDuration  float64
	Width          int
	Height         int
	FPS            int
	OverlayWidth   int
	OverlayMargin  int
	CommandTimeout time.Duration
}

func GetPipelineConfig() (*PipelineConfig, error) {
	maxScenes, err := getEnvInt("MAX_SCENES", 10)
	if err != nil {
		return nil, err
	}
	sceneDuration, err := getEnvFloat("SCENE_DURATION_SECONDS", 6)
	if err != nil {
		return nil, err
	}
	width, err := getEnvInt("VIDEO_WIDTH", 1280)
	if err != nil {
		return nil, err
	}
	height, err := getEnvInt("VIDEO_HEIGHT", 720)
	if err != nil {
		return nil, err
	}
	fps, err := getEnvInt("VIDEO_FPS", 25)
	if err != nil {
		return nil, err
	}
	overlayWidth, err := getEnvInt("OVERLAY_WIDTH", 320)
	if err != nil {
		return nil, err
	}
	overlayMargin, err := getEnvInt("OVERLAY_MARGIN", 24)
	if err != nil {
		return nil, err
	}
	timeoutSeconds, err := getEnvInt("ADAPTER_TIMEOUT_SECONDS", 300)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		MaxScenes:      maxScenes,
		SceneDuration:  sceneDuration,
		Width:          width,
		Height:         height,
		FPS:            fps,
		OverlayWidth:   overlayWidth,
		OverlayMargin:  overlayMargin,
		CommandTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}
