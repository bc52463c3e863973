package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/channel_utils"
	"github.com/orion99879-crypto/orion99/domain"
)

type pipelineExecutor struct {
	logger      outbound.LoggerPort
	workerPool  outbound.TaskDispatcher
	store       outbound.JobStorePort
	segmenter   inbound.SceneSegmenterPort
	renderer    outbound.ImageRendererPort
	synthesizer outbound.SpeechSynthesizerPort
	lipSyncer   outbound.LipSyncerPort
	assembler   inbound.TimelineAssemblerPort
	publisher   outbound.VideoPublisherPort
}

// NewPipelineExecutor wires the per-job state machine. workerPool carries
// the per-scene fan-out and must not be the pool that runs Execute itself,
// or saturated jobs block their own scene work. lipSyncer and publisher may
// be nil when their backends are unconfigured; the lip-sync stage is then
// skipped and the final video stays local.
func NewPipelineExecutor(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	store outbound.JobStorePort, segmenter inbound.SceneSegmenterPort,
	renderer outbound.ImageRendererPort, synthesizer outbound.SpeechSynthesizerPort,
	lipSyncer outbound.LipSyncerPort, assembler inbound.TimelineAssemblerPort,
	publisher outbound.VideoPublisherPort) inbound.PipelineExecutorPort {
	return &pipelineExecutor{
		logger:      logger,
		workerPool:  workerPool,
		store:       store,
		segmenter:   segmenter,
		renderer:    renderer,
		synthesizer: synthesizer,
		lipSyncer:   lipSyncer,
		assembler:   assembler,
		publisher:   publisher,
	}
}

// Execute runs the stage sequence for one job. Stages are strictly ordered;
// rendering and synthesis fan out over scenes through the worker pool, but
// any single failure fails the whole job and no partial video is produced.
func (p *pipelineExecutor) Execute(ctx context.Context, jobID string) error {
	job, err := p.store.Get(jobID)
	if err != nil {
		p.logger.ErrorWithFields(err, "dequeued job is not in the store", map[string]interface{}{"job_id": jobID})
		return err
	}

	if err := p.enterStage(jobID, domain.StageSegmenting, ""); err != nil {
		return p.fail(jobID, domain.StageSegmenting, err)
	}
	scenes := p.segmenter.Segment(job.Payload.ChapterText)
	if err := p.writeScenes(jobID, scenes); err != nil {
		return p.fail(jobID, domain.StageSegmenting, err)
	}
	p.logger.InfoWithFields("chapter segmented", map[string]interface{}{
		"job_id": jobID,
		"scenes": len(scenes),
	})

	if err := p.enterStage(jobID, domain.StageRendering, fmt.Sprintf("%d scenes", len(scenes))); err != nil {
		return p.fail(jobID, domain.StageRendering, err)
	}
	if err := channel_utils.ForEach(ctx, p.workerPool, scenes, func(ctx context.Context, scene domain.Scene) error {
		return p.renderScene(ctx, job, scene)
	}); err != nil {
		return p.fail(jobID, domain.StageRendering, err)
	}

	if err := p.enterStage(jobID, domain.StageSynthesizing, ""); err != nil {
		return p.fail(jobID, domain.StageSynthesizing, err)
	}
	if err := channel_utils.ForEach(ctx, p.workerPool, scenes, func(ctx context.Context, scene domain.Scene) error {
		return p.synthesizeScene(ctx, job, scene)
	}); err != nil {
		return p.fail(jobID, domain.StageSynthesizing, err)
	}

	if p.lipSyncer != nil {
		if err := p.enterStage(jobID, domain.StageLipSyncing, ""); err != nil {
			return p.fail(jobID, domain.StageLipSyncing, err)
		}
		for _, scene := range scenes {
			if err := p.lipSyncScene(ctx, job, scene); err != nil {
				return p.fail(jobID, domain.StageLipSyncing, err)
			}
		}
	}

	if err := p.enterStage(jobID, domain.StageAssembling, ""); err != nil {
		return p.fail(jobID, domain.StageAssembling, err)
	}
	outputPath, err := p.assembler.Assemble(ctx, jobID, scenes)
	if err != nil {
		return p.fail(jobID, domain.StageAssembling, err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return p.fail(jobID, domain.StageAssembling, fmt.Errorf("%w: output missing after assembly: %v", domain.ErrAssemblyFailure, err))
	}

	if p.publisher != nil {
		if err := p.store.UpdateProgress(jobID, domain.StageAssembling, "publishing output"); err != nil {
			return p.fail(jobID, domain.StageAssembling, err)
		}
		if _, err := p.publisher.Publish(ctx, outbound.PublishVideoRequest{
			JobID:         jobID,
			VideoFileName: outputPath,
		}); err != nil {
			return p.fail(jobID, domain.StageAssembling, err)
		}
	}

	if err := p.store.MarkDone(jobID, outputPath); err != nil {
		p.logger.Error(err, "failed to mark job done")
		return err
	}
	p.logger.InfoWithFields("job finished", map[string]interface{}{
		"job_id": jobID,
		"output": outputPath,
	})
	return nil
}

// enterStage records the stage transition so polling clients observe
// monotonically advancing progress, and honors a pending cancel request.
func (p *pipelineExecutor) enterStage(jobID string, stage domain.Stage, detail string) error {
	if p.store.CancelRequested(jobID) {
		return domain.ErrCancelled
	}
	return p.store.UpdateProgress(jobID, stage, detail)
}

func (p *pipelineExecutor) fail(jobID string, stage domain.Stage, err error) error {
	reason := fmt.Sprintf("%s: %v", stage, err)
	if errors.Is(err, domain.ErrCancelled) {
		reason = domain.CancelledReason
	}
	if storeErr := p.store.MarkFailed(jobID, reason); storeErr != nil {
		p.logger.Error(storeErr, "failed to record job failure")
	}
	p.logger.ErrorWithFields(err, "job failed", map[string]interface{}{
		"job_id": jobID,
		"stage":  string(stage),
	})
	return err
}

func (p *pipelineExecutor) writeScenes(jobID string, scenes []domain.Scene) error {
	payload, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.store.ArtifactPath(jobID, domain.ScenesFileName), payload, 0644)
}

func (p *pipelineExecutor) renderScene(ctx context.Context, job domain.Job, scene domain.Scene) error {
	prompt := scene.Prompt
	if prompt == "" {
		prompt = job.Payload.Title
	}
	if job.Payload.CharacterName != "" {
		prompt = fmt.Sprintf("%s, featuring %s", prompt, job.Payload.CharacterName)
	}
	return p.renderer.RenderImage(ctx, prompt, p.store.ArtifactPath(job.ID, domain.SceneImageName(scene.Index)))
}

func (p *pipelineExecutor) synthesizeScene(ctx context.Context, job domain.Job, scene domain.Scene) error {
	for turn, line := range scene.Dialogue {
		err := p.synthesizer.Synthesize(ctx, outbound.SynthesizeSpeechParams{
			Speaker: line.Speaker,
			Text:    line.Line,
			OutPath: p.store.ArtifactPath(job.ID, domain.SceneAudioName(scene.Index, turn, line.Speaker)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// lipSyncScene drives the lip-sync adapter with the scene image and the
// first dialogue turn's audio only; later turns are persisted but not
// animated.
func (p *pipelineExecutor) lipSyncScene(ctx context.Context, job domain.Job, scene domain.Scene) error {
	if len(scene.Dialogue) == 0 {
		return nil
	}
	first := scene.Dialogue[0]
	return p.lipSyncer.LipSync(ctx, outbound.LipSyncParams{
		ImagePath: p.store.ArtifactPath(job.ID, domain.SceneImageName(scene.Index)),
		AudioPath: p.store.ArtifactPath(job.ID, domain.SceneAudioName(scene.Index, 0, first.Speaker)),
		OutPath:   p.store.ArtifactPath(job.ID, domain.SceneLipSyncName(scene.Index)),
	})
}
