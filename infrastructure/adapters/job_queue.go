package adapters

import (
	"context"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
)

// jobQueue is the in-process FIFO between intake and the workers. Intake and
// workers share no other in-memory state; everything else goes through the
// job store.
type jobQueue struct {
	jobs chan string
}

func NewJobQueue(capacity int) outbound.JobQueuePort {
	return &jobQueue{
		jobs: make(chan string, capacity),
	}
}

func (q *jobQueue) Enqueue(jobID string) error {
	select {
	case q.jobs <- jobID:
		return nil
	default:
		return domain.ErrQueueFull
	}
}

func (q *jobQueue) Dequeue(ctx context.Context) (string, bool) {
	select {
	case jobID, ok := <-q.jobs:
		return jobID, ok
	case <-ctx.Done():
		return "", false
	}
}
