package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
	"github.com/orion99879-crypto/orion99/infrastructure/adapters"
)

// inlineDispatcher runs submitted tasks synchronously so executor tests are
// deterministic.
type inlineDispatcher struct{}

func (inlineDispatcher) Submit(task func()) error {
	task()
	return nil
}

type stubRenderer struct {
	err      error
	rendered []string
}

func (s *stubRenderer) RenderImage(_ context.Context, _ string, outPath string) error {
	if s.err != nil {
		return s.err
	}
	s.rendered = append(s.rendered, outPath)
	return os.WriteFile(outPath, []byte("png"), 0644)
}

type stubSynthesizer struct {
	err   error
	calls []outbound.SynthesizeSpeechParams
}

func (s *stubSynthesizer) Synthesize(_ context.Context, params outbound.SynthesizeSpeechParams) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, params)
	return os.WriteFile(params.OutPath, []byte("mp3"), 0644)
}

type stubLipSyncer struct {
	calls []outbound.LipSyncParams
}

func (s *stubLipSyncer) LipSync(_ context.Context, params outbound.LipSyncParams) error {
	s.calls = append(s.calls, params)
	return os.WriteFile(params.OutPath, []byte("mp4"), 0644)
}

type stubAssembler struct {
	store  outbound.JobStorePort
	err    error
	scenes []domain.Scene
}

func (s *stubAssembler) Assemble(_ context.Context, jobID string, scenes []domain.Scene) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.scenes = scenes
	outPath := s.store.ArtifactPath(jobID, domain.OutputFileName)
	return outPath, os.WriteFile(outPath, []byte("mp4"), 0644)
}

type executorFixture struct {
	store       outbound.JobStorePort
	renderer    *stubRenderer
	synthesizer *stubSynthesizer
	lipSyncer   *stubLipSyncer
	assembler   *stubAssembler
	executor    func() error
	jobID       string
}

func newExecutorFixture(t *testing.T, chapterText string) *executorFixture {
	t.Helper()

	logger := adapters.NewZerologWrapper()
	store, err := adapters.NewFSJobStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	jobID := "test-job"
	job := domain.Job{
		ID: jobID,
		Payload: domain.JobPayload{
			Title:         "Chapter One",
			ChapterText:   chapterText,
			CharacterName: "Mira",
		},
		Status: domain.JobStatusQueued,
	}
	if err := store.Create(job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	fixture := &executorFixture{
		store:       store,
		renderer:    &stubRenderer{},
		synthesizer: &stubSynthesizer{},
		lipSyncer:   &stubLipSyncer{},
		assembler:   &stubAssembler{store: store},
		jobID:       jobID,
	}
	fixture.executor = func() error {
		executor := NewPipelineExecutor(logger, inlineDispatcher{}, store, NewSceneSegmenter(10),
			fixture.renderer, fixture.synthesizer, fixture.lipSyncer, fixture.assembler, nil)
		return executor.Execute(context.Background(), jobID)
	}
	return fixture
}

const twoParagraphChapter = "The gates opened at dawn.\nhero: I am ready.\n\nThe road wound north."

func TestPipelineExecutor_SuccessfulRun(t *testing.T) {
	fixture := newExecutorFixture(t, twoParagraphChapter)

	if err := fixture.executor(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	job, err := fixture.store.Get(fixture.jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != domain.JobStatusDone {
		t.Fatalf("expected status done, got %s (reason %q)", job.Status, job.Reason)
	}
	if job.ResultPath == "" {
		t.Error("done job has no result path")
	}
	if _, err := os.Stat(job.ResultPath); err != nil {
		t.Errorf("result artifact missing: %v", err)
	}

	if len(fixture.renderer.rendered) != 2 {
		t.Errorf("expected 2 scene images, got %d", len(fixture.renderer.rendered))
	}
	for i := 0; i < 2; i++ {
		imagePath := fixture.store.ArtifactPath(fixture.jobID, domain.SceneImageName(i))
		if _, err := os.Stat(imagePath); err != nil {
			t.Errorf("scene %d image missing: %v", i, err)
		}
	}

	if len(fixture.synthesizer.calls) != 1 {
		t.Fatalf("expected 1 synthesized turn, got %d", len(fixture.synthesizer.calls))
	}
	call := fixture.synthesizer.calls[0]
	if call.Speaker != "hero" || call.Text != "I am ready." {
		t.Errorf("unexpected synthesis call: %+v", call)
	}

	if _, err := os.Stat(fixture.store.ArtifactPath(fixture.jobID, domain.ScenesFileName)); err != nil {
		t.Errorf("scene list artifact missing: %v", err)
	}

	if len(fixture.assembler.scenes) != 2 {
		t.Errorf("assembler received %d scenes", len(fixture.assembler.scenes))
	}
}

func TestPipelineExecutor_RenderFailureFailsJob(t *testing.T) {
	fixture := newExecutorFixture(t, twoParagraphChapter)
	fixture.renderer.err = domain.NewAdapterUnavailable("image renderer", errors.New("backend down"))

	if err := fixture.executor(); err == nil {
		t.Fatal("expected execute to return the failure")
	}

	job, err := fixture.store.Get(fixture.jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if job.Status != domain.JobStatusFailed {
		t.Fatalf("expected status failed, got %s", job.Status)
	}
	if !strings.Contains(job.Reason, string(domain.StageRendering)) {
		t.Errorf("failure reason does not name the rendering stage: %q", job.Reason)
	}
	if !strings.Contains(job.Reason, "image renderer") {
		t.Errorf("failure reason does not name the adapter: %q", job.Reason)
	}

	if _, err := os.Stat(fixture.store.ArtifactPath(fixture.jobID, domain.OutputFileName)); err == nil {
		t.Error("failed job must not produce an output video")
	}
}

func TestPipelineExecutor_SynthesisFailureFailsJob(t *testing.T) {
	fixture := newExecutorFixture(t, twoParagraphChapter)
	fixture.synthesizer.err = domain.NewAdapterUnavailable("speech synthesizer", errors.New("no voice"))

	if err := fixture.executor(); err == nil {
		t.Fatal("expected execute to return the failure")
	}

	job, _ := fixture.store.Get(fixture.jobID)
	if job.Status != domain.JobStatusFailed {
		t.Fatalf("expected status failed, got %s", job.Status)
	}
	if !strings.Contains(job.Reason, string(domain.StageSynthesizing)) {
		t.Errorf("failure reason does not name the synthesizing stage: %q", job.Reason)
	}
}

func TestPipelineExecutor_AssemblyFailureFailsJob(t *testing.T) {
	fixture := newExecutorFixture(t, twoParagraphChapter)
	fixture.assembler.err = fmt.Errorf("%w: encoder exploded", domain.ErrAssemblyFailure)

	if err := fixture.executor(); err == nil {
		t.Fatal("expected execute to return the failure")
	}

	job, _ := fixture.store.Get(fixture.jobID)
	if job.Status != domain.JobStatusFailed {
		t.Fatalf("expected status failed, got %s", job.Status)
	}
	if !strings.Contains(job.Reason, string(domain.StageAssembling)) {
		t.Errorf("failure reason does not name the assembling stage: %q", job.Reason)
	}
}

func TestPipelineExecutor_ZeroScenesStillCompletes(t *testing.T) {
	fixture := newExecutorFixture(t, "   \n\n  ")

	if err := fixture.executor(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	job, _ := fixture.store.Get(fixture.jobID)
	if job.Status != domain.JobStatusDone {
		t.Fatalf("zero-scene job should reach done, got %s (reason %q)", job.Status, job.Reason)
	}
	if len(fixture.renderer.rendered) != 0 {
		t.Errorf("zero-scene job rendered %d images", len(fixture.renderer.rendered))
	}
}

func TestPipelineExecutor_CancelBetweenStages(t *testing.T) {
	fixture := newExecutorFixture(t, twoParagraphChapter)

	if err := fixture.store.RequestCancel(fixture.jobID); err != nil {
		t.Fatalf("request cancel: %v", err)
	}

	if err := fixture.executor(); !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}

	job, _ := fixture.store.Get(fixture.jobID)
	if job.Status != domain.JobStatusFailed {
		t.Fatalf("cancelled job should be failed, got %s", job.Status)
	}
	if job.Reason != domain.CancelledReason {
		t.Errorf("expected reason %q, got %q", domain.CancelledReason, job.Reason)
	}
}

func TestPipelineExecutor_LipSyncUsesFirstTurnOnly(t *testing.T) {
	fixture := newExecutorFixture(t, "A duel at noon.\nhero: Draw.\nwitch: You first.")

	if err := fixture.executor(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(fixture.lipSyncer.calls) != 1 {
		t.Fatalf("expected 1 lip-sync call, got %d", len(fixture.lipSyncer.calls))
	}
	call := fixture.lipSyncer.calls[0]
	wantAudio := fixture.store.ArtifactPath(fixture.jobID, domain.SceneAudioName(0, 0, "hero"))
	if call.AudioPath != wantAudio {
		t.Errorf("lip-sync audio = %q, want first turn %q", call.AudioPath, wantAudio)
	}
}
