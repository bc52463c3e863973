package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/config"
)

// zoomStep and zoomMax parameterize the slow continuous zoom applied to
// every still clip. Fixed constants keep a given image's clip deterministic
// across runs.
const (
	zoomStep = 0.0008
	zoomMax  = 1.08
)

// silentAudioSource feeds a silent stereo track into clips that carry no
// dialogue. Every clip ends up with the same video+aac stream layout; the
// concat demuxer takes the layout from the first listed clip, so a mix of
// audio and audio-less clips would drop or desync the dialogue audio.
const silentAudioSource = "anullsrc=channel_layout=stereo:sample_rate=44100"

type ffmpegClipComposer struct {
	logger         outbound.LoggerPort
	pipelineConfig *config.PipelineConfig
}

func NewFFmpegClipComposer(pipelineConfig *config.PipelineConfig, logger outbound.LoggerPort) outbound.ClipComposerPort {
	return &ffmpegClipComposer{
		logger:         logger,
		pipelineConfig: pipelineConfig,
	}
}

// ComposeStill loops one image into a clip of the given duration with a slow
// centered zoom and a silent audio track.
func (f *ffmpegClipComposer) ComposeStill(ctx context.Context, imagePath string, duration float64, outPath string) error {
	return f.runFFmpeg(ctx, f.stillArgs(imagePath, duration, outPath))
}

func (f *ffmpegClipComposer) stillArgs(imagePath string, duration float64, outPath string) []string {
	cfg := f.pipelineConfig
	frames := int(duration * float64(cfg.FPS))
	filter := fmt.Sprintf(
		"scale=%d:%d,zoompan=z='min(zoom+%.6f,%.3f)':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:fps=%d:s=%dx%d",
		cfg.Width*2, cfg.Height*2, zoomStep, zoomMax, frames, cfg.FPS, cfg.Width, cfg.Height)

	return []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-f", "lavfi",
		"-i", silentAudioSource,
		"-vf", filter,
		"-map", "0:v",
		"-map", "1:a",
		"-t", fmt.Sprintf("%f", duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", cfg.FPS),
		outPath,
	}
}

// Overlay composites the lip-synced clip bottom-right onto the base clip at
// a fixed width. The lip-synced clip supplies the result's audio; the base
// clip's silent track is discarded and its duration wins.
func (f *ffmpegClipComposer) Overlay(ctx context.Context, basePath string, overlayPath string, outPath string) error {
	return f.runFFmpeg(ctx, f.overlayArgs(basePath, overlayPath, outPath))
}

func (f *ffmpegClipComposer) overlayArgs(basePath string, overlayPath string, outPath string) []string {
	cfg := f.pipelineConfig
	filter := fmt.Sprintf(
		"[1:v]scale=%d:-2[pip];[0:v][pip]overlay=W-w-%d:H-h-%d:eof_action=pass[v]",
		cfg.OverlayWidth, cfg.OverlayMargin, cfg.OverlayMargin)

	return []string{
		"-y",
		"-i", basePath,
		"-i", overlayPath,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "1:a",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		outPath,
	}
}

// ComposeBlank produces the zero-scene placeholder: one black clip of the
// standard per-scene duration, silent audio included.
func (f *ffmpegClipComposer) ComposeBlank(ctx context.Context, duration float64, outPath string) error {
	return f.runFFmpeg(ctx, f.blankArgs(duration, outPath))
}

func (f *ffmpegClipComposer) blankArgs(duration float64, outPath string) []string {
	cfg := f.pipelineConfig
	return []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=black:s=%dx%d:d=%f:r=%d", cfg.Width, cfg.Height, duration, cfg.FPS),
		"-f", "lavfi",
		"-i", silentAudioSource,
		"-map", "0:v",
		"-map", "1:a",
		"-t", fmt.Sprintf("%f", duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		outPath,
	}
}

func (f *ffmpegClipComposer) runFFmpeg(ctx context.Context, args []string) error {
	newCtx, cancel := context.WithTimeout(ctx, f.pipelineConfig.CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(newCtx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		f.logger.ErrorWithFields(err, "ffmpeg failed", map[string]interface{}{
			"args":   args,
			"stderr": stderr.String(),
		})
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}
