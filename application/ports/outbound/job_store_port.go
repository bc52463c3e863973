package outbound

import (
	"github.com/orion99879-crypto/orion99/domain"
)

// JobStorePort is the single source of truth for job status. Updates are
// atomic with respect to concurrent Get calls and transitions are validated
// monotonic; once done or failed a job never moves again.
type JobStorePort interface {
	Create(job domain.Job) error
	Get(id string) (domain.Job, error)
	UpdateProgress(id string, stage domain.Stage, detail string) error
	MarkDone(id string, resultPath string) error
	MarkFailed(id string, reason string) error
	RequestCancel(id string) error
	CancelRequested(id string) bool

	// JobDir and ArtifactPath expose the per-job directory layout that the
	// pipeline and assembler write artifacts into.
	JobDir(id string) string
	ArtifactPath(id string, name string) string
}
