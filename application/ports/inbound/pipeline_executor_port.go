package inbound

import "context"

// PipelineExecutorPort runs the full stage sequence for one queued job and
// records the terminal outcome in the job store. The returned error mirrors
// the recorded failure; callers use it for logging only.
type PipelineExecutorPort interface {
	Execute(ctx context.Context, jobID string) error
}
