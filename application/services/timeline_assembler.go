package services

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
)

type timelineAssembler struct {
	logger       outbound.LoggerPort
	composer     outbound.ClipComposerPort
	concatenator outbound.ConcatenateClipsPort
	store        outbound.JobStorePort
	clipDuration float64
}

// NewTimelineAssembler builds the deterministic scene-to-timeline assembler.
// Every scene contributes one clip of clipDuration seconds, so a job with N
// scenes assembles to N*clipDuration.
func NewTimelineAssembler(logger outbound.LoggerPort, composer outbound.ClipComposerPort,
	concatenator outbound.ConcatenateClipsPort, store outbound.JobStorePort,
	clipDuration float64) inbound.TimelineAssemblerPort {
	return &timelineAssembler{
		logger:       logger,
		composer:     composer,
		concatenator: concatenator,
		store:        store,
		clipDuration: clipDuration,
	}
}

// Assemble builds per-scene clips in index order and joins them hard-cut
// into output.mp4, overwriting any previous run. A job with zero scenes
// still completes: its output is a single black clip of the scene duration.
// Dialogue audio without a matching lip-sync clip is not mixed in.
func (t *timelineAssembler) Assemble(ctx context.Context, jobID string, scenes []domain.Scene) (string, error) {
	outputPath := t.store.ArtifactPath(jobID, domain.OutputFileName)

	if len(scenes) == 0 {
		if err := t.composer.ComposeBlank(ctx, t.clipDuration, outputPath); err != nil {
			return "", fmt.Errorf("%w: placeholder clip: %v", domain.ErrAssemblyFailure, err)
		}
		return outputPath, nil
	}

	ordered := make([]domain.Scene, len(scenes))
	copy(ordered, scenes)
	sort.Sort(domain.ScenesAscByIndex(ordered))

	clipPaths := make([]string, 0, len(ordered))
	for _, scene := range ordered {
		clipPath, err := t.composeSceneClip(ctx, jobID, scene)
		if err != nil {
			return "", fmt.Errorf("%w: scene %d: %v", domain.ErrAssemblyFailure, scene.Index, err)
		}
		clipPaths = append(clipPaths, clipPath)
	}

	if err := t.concatenator.Concatenate(ctx, clipPaths, outputPath); err != nil {
		return "", fmt.Errorf("%w: concatenate: %v", domain.ErrAssemblyFailure, err)
	}

	return outputPath, nil
}

// composeSceneClip renders the scene's zoom clip and, when a lip-synced clip
// exists for the scene, composites it as a fixed-position overlay.
func (t *timelineAssembler) composeSceneClip(ctx context.Context, jobID string, scene domain.Scene) (string, error) {
	imagePath := t.store.ArtifactPath(jobID, domain.SceneImageName(scene.Index))
	clipPath := t.store.ArtifactPath(jobID, domain.SceneClipName(scene.Index))
	lipSyncPath := t.store.ArtifactPath(jobID, domain.SceneLipSyncName(scene.Index))

	if _, err := os.Stat(lipSyncPath); err != nil {
		if err := t.composer.ComposeStill(ctx, imagePath, t.clipDuration, clipPath); err != nil {
			return "", err
		}
		return clipPath, nil
	}

	basePath := t.store.ArtifactPath(jobID, domain.SceneBaseClipName(scene.Index))
	if err := t.composer.ComposeStill(ctx, imagePath, t.clipDuration, basePath); err != nil {
		return "", err
	}
	if err := t.composer.Overlay(ctx, basePath, lipSyncPath, clipPath); err != nil {
		return "", err
	}
	return clipPath, nil
}
