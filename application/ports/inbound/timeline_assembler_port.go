package inbound

import (
	"context"

	"github.com/orion99879-crypto/orion99/domain"
)

// TimelineAssemblerPort builds the final output video for a job from the
// per-scene artifacts already present in its directory. Deterministic given
// fixed inputs; returns the output path.
type TimelineAssemblerPort interface {
	Assemble(ctx context.Context, jobID string, scenes []domain.Scene) (string, error)
}
