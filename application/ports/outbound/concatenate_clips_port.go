package outbound

import "context"

// ConcatenateClipsPort joins clips hard-cut, in the order given, into outPath.
type ConcatenateClipsPort interface {
	Concatenate(ctx context.Context, clipPaths []string, outPath string) error
}
