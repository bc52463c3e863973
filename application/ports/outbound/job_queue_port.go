package outbound

import "context"

// JobQueuePort is the FIFO hand-off between intake and the workers. Enqueue
// never blocks; a saturated queue reports ErrQueueFull. Dequeue blocks until
// a job id is available or the context is done.
type JobQueuePort interface {
	Enqueue(jobID string) error
	Dequeue(ctx context.Context) (string, bool)
}
