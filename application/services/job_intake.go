package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
)

type jobIntake struct {
	logger outbound.LoggerPort
	store  outbound.JobStorePort
	queue  outbound.JobQueuePort
}

func NewJobIntake(logger outbound.LoggerPort, store outbound.JobStorePort,
	queue outbound.JobQueuePort) inbound.JobIntakePort {
	return &jobIntake{
		logger: logger,
		store:  store,
		queue:  queue,
	}
}

// Submit validates the payload, records the job as queued and enqueues it.
// It returns as soon as the job is durable; pipeline work happens on the
// worker pool.
func (j *jobIntake) Submit(params inbound.SubmitJobParams) (string, error) {
	if strings.TrimSpace(params.ChapterText) == "" {
		return "", fmt.Errorf("%w: chapter_text is empty", domain.ErrInvalidSubmission)
	}
	if strings.TrimSpace(params.CharacterName) == "" {
		return "", fmt.Errorf("%w: character_name is missing", domain.ErrInvalidSubmission)
	}

	jobID := uuid.NewString()
	job := domain.Job{
		ID: jobID,
		Payload: domain.JobPayload{
			Title:           params.Title,
			ChapterText:     params.ChapterText,
			CharacterName:   params.CharacterName,
			CharacterImages: params.CharacterImages,
		},
		Status: domain.JobStatusQueued,
	}

	if err := j.store.Create(job); err != nil {
		j.logger.Error(err, "failed to create job record")
		return "", err
	}

	if err := j.queue.Enqueue(jobID); err != nil {
		if failErr := j.store.MarkFailed(jobID, "could not enqueue: "+err.Error()); failErr != nil {
			j.logger.Error(failErr, "failed to mark unqueued job as failed")
		}
		return "", err
	}

	j.logger.InfoWithFields("job accepted", map[string]interface{}{"job_id": jobID})
	return jobID, nil
}

func (j *jobIntake) Status(jobID string) (domain.Job, error) {
	return j.store.Get(jobID)
}

func (j *jobIntake) Cancel(jobID string) error {
	return j.store.RequestCancel(jobID)
}
