package outbound

import "context"

// ClipComposerPort materializes per-scene video clips. ComposeStill builds a
// fixed-duration clip from one image with a slow deterministic zoom, Overlay
// composites a lip-synced clip bottom-right onto a base clip, ComposeBlank
// produces the placeholder clip used for zero-scene jobs. Every composed
// clip carries the same stream layout (video plus an audio track, silent
// when there is no dialogue) so the concatenator can join them stream-copy.
type ClipComposerPort interface {
	ComposeStill(ctx context.Context, imagePath string, duration float64, outPath string) error
	Overlay(ctx context.Context, basePath string, overlayPath string, outPath string) error
	ComposeBlank(ctx context.Context, duration float64, outPath string) error
}
