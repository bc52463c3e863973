package outbound

import "context"

type LipSyncParams struct {
	ImagePath string
	AudioPath string
	OutPath   string
}

// LipSyncerPort produces a short talking-head clip from a still image and an
// audio file.
type LipSyncerPort interface {
	LipSync(ctx context.Context, params LipSyncParams) error
}
