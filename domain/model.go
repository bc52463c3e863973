package domain

import (
	"fmt"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

type Stage string

const (
	StageSegmenting   Stage = "segmenting"
	StageRendering    Stage = "rendering"
	StageSynthesizing Stage = "synthesizing"
	StageLipSyncing   Stage = "lip_syncing"
	StageAssembling   Stage = "assembling"
)

// CancelledReason is the terminal reason recorded when a job is cancelled
// between stage transitions rather than failing inside a stage.
const CancelledReason = "cancelled"

type JobPayload struct {
	Title           string   `json:"title"`
	ChapterText     string   `json:"chapter_text"`
	CharacterName   string   `json:"character_name"`
	CharacterImages []string `json:"character_images,omitempty"`
}

// Job is the durable record owned by the JobStore. The payload is immutable
// after intake; status fields only move forward (see ValidTransition).
type Job struct {
	ID         string     `json:"id"`
	Payload    JobPayload `json:"payload"`
	Status     JobStatus  `json:"status"`
	Stage      Stage      `json:"stage,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	ResultPath string     `json:"result_path,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

type DialogueTurn struct {
	Speaker string `json:"speaker"`
	Line    string `json:"line"`
}

// Scene is derived from the chapter text and lives only inside the job
// directory. Index is both derivation order and playback order.
type Scene struct {
	Index    int            `json:"index"`
	Prompt   string         `json:"prompt"`
	Dialogue []DialogueTurn `json:"dialogue,omitempty"`
}

type ScenesAscByIndex []Scene

func (s ScenesAscByIndex) Len() int           { return len(s) }
func (s ScenesAscByIndex) Less(i, j int) bool { return s[i].Index < s[j].Index }
func (s ScenesAscByIndex) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Fixed artifact names inside a job directory. Per-scene names are
// deterministic so regenerating an artifact overwrites its previous
// incarnation instead of accumulating duplicates.
const (
	PayloadFileName = "payload.json"
	ScenesFileName  = "scenes.json"
	StatusFileName  = "status.json"
	CancelFileName  = "cancel"
	OutputFileName  = "output.mp4"
)

func SceneImageName(index int) string {
	return fmt.Sprintf("scene_%03d.png", index)
}

func SceneAudioName(index int, turn int, speaker string) string {
	return fmt.Sprintf("scene_%03d_turn_%02d_%s.mp3", index, turn, speaker)
}

func SceneLipSyncName(index int) string {
	return fmt.Sprintf("scene_%03d_lipsync.mp4", index)
}

func SceneBaseClipName(index int) string {
	return fmt.Sprintf("scene_%03d_base.mp4", index)
}

func SceneClipName(index int) string {
	return fmt.Sprintf("clip_%03d.mp4", index)
}

func IsTerminal(status JobStatus) bool {
	return status == JobStatusDone || status == JobStatusFailed
}

// ValidTransition enforces the monotonic job state machine: queued may start
// processing or fail outright, processing may finish either way, terminal
// states absorb everything.
func ValidTransition(from, to JobStatus) bool {
	if from == to {
		return !IsTerminal(from)
	}
	switch from {
	case JobStatusQueued:
		return to == JobStatusProcessing || to == JobStatusFailed
	case JobStatusProcessing:
		return to == JobStatusDone || to == JobStatusFailed
	default:
		return false
	}
}
