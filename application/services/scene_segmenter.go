package services

import (
	"regexp"
	"strings"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/domain"
)

type sceneSegmenter struct {
	maxScenes       int
	paragraphRegexp *regexp.Regexp
	dialogueRegexp  *regexp.Regexp
}

// NewSceneSegmenter builds the pure chapter-to-scenes segmenter. maxScenes
// caps how many paragraphs become scenes; it is a cost safeguard, not an
// architectural ceiling.
func NewSceneSegmenter(maxScenes int) inbound.SceneSegmenterPort {
	return &sceneSegmenter{
		maxScenes:       maxScenes,
		paragraphRegexp: regexp.MustCompile(`\n\s*\n`),
		dialogueRegexp:  regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)\s*:\s*(.+)$`),
	}
}

func (s *sceneSegmenter) Segment(chapterText string) []domain.Scene {
	normalized := strings.ReplaceAll(chapterText, "\r\n", "\n")
	paragraphs := s.paragraphRegexp.Split(normalized, -1)

	scenes := make([]domain.Scene, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		if len(scenes) == s.maxScenes {
			break
		}
		scenes = append(scenes, s.buildScene(len(scenes), paragraph))
	}

	return scenes
}

// buildScene splits a paragraph into dialogue turns and narrative prompt
// lines. A line shaped "speaker: text" becomes a turn with the speaker
// normalized to a lowercase token; everything else joins the prompt.
func (s *sceneSegmenter) buildScene(index int, paragraph string) domain.Scene {
	var promptLines []string
	var dialogue []domain.DialogueTurn

	for _, line := range strings.Split(paragraph, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if match := s.dialogueRegexp.FindStringSubmatch(line); match != nil {
			dialogue = append(dialogue, domain.DialogueTurn{
				Speaker: strings.ToLower(match[1]),
				Line:    strings.TrimSpace(match[2]),
			})
		} else {
			promptLines = append(promptLines, line)
		}
	}

	return domain.Scene{
		Index:    index,
		Prompt:   strings.Join(promptLines, " "),
		Dialogue: dialogue,
	}
}
