package inbound

import (
	"github.com/orion99879-crypto/orion99/domain"
)

type SubmitJobParams struct {
	Title           string
	ChapterText     string
	CharacterName   string
	CharacterImages []string
}

// JobIntakePort accepts jobs and answers status polls. Submit returns once
// the job is durably recorded as queued; it never blocks on pipeline work.
type JobIntakePort interface {
	Submit(params SubmitJobParams) (string, error)
	Status(jobID string) (domain.Job, error)
	Cancel(jobID string) error
}
