package inbound

import (
	"github.com/orion99879-crypto/orion99/domain"
)

// SceneSegmenterPort derives the ordered scene list from chapter text. Pure
// and deterministic: identical input always yields an identical scene list.
type SceneSegmenterPort interface {
	Segment(chapterText string) []domain.Scene
}
