package outbound

import "context"

// ImageRendererPort turns a scene prompt into an image file at outPath.
// Adapters write only to the path they are given.
type ImageRendererPort interface {
	RenderImage(ctx context.Context, prompt string, outPath string) error
}
