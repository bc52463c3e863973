package adapters

import (
	"context"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/application/ports/outbound"
)

// jobDispatcher drains the queue and hands each job to the worker pool, so
// multiple jobs run concurrently while each job's stages stay sequential
// inside its executor run.
type jobDispatcher struct {
	logger     outbound.LoggerPort
	queue      outbound.JobQueuePort
	workerPool outbound.TaskDispatcher
	executor   inbound.PipelineExecutorPort
}

func NewJobDispatcher(logger outbound.LoggerPort, queue outbound.JobQueuePort,
	workerPool outbound.TaskDispatcher, executor inbound.PipelineExecutorPort) *jobDispatcher {
	return &jobDispatcher{
		logger:     logger,
		queue:      queue,
		workerPool: workerPool,
		executor:   executor,
	}
}

// Run blocks until ctx is done, dispatching dequeued jobs as they arrive.
func (d *jobDispatcher) Run(ctx context.Context) {
	for {
		jobID, ok := d.queue.Dequeue(ctx)
		if !ok {
			return
		}

		id := jobID
		err := d.workerPool.Submit(func() {
			if execErr := d.executor.Execute(ctx, id); execErr != nil {
				d.logger.ErrorWithFields(execErr, "job finished with failure", map[string]interface{}{"job_id": id})
			}
		})
		if err != nil {
			d.logger.ErrorWithFields(err, "failed to submit job to worker pool", map[string]interface{}{"job_id": id})
		}
	}
}
