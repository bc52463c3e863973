package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
)

// fsJobStore keeps one directory per job under root. status.json is replaced
// atomically (write temp file, rename) so a concurrent status read never
// observes a torn update. The mutex covers the read-modify-write of a status
// transition; artifact files are written by the pipeline, not the store.
type fsJobStore struct {
	logger outbound.LoggerPort
	root   string
	mu     sync.Mutex
}

func NewFSJobStore(root string, logger outbound.LoggerPort) (outbound.JobStorePort, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create jobs root %s: %w", root, err)
	}
	return &fsJobStore{
		logger: logger,
		root:   root,
	}, nil
}

func (f *fsJobStore) JobDir(id string) string {
	return filepath.Join(f.root, id)
}

func (f *fsJobStore) ArtifactPath(id string, name string) string {
	return filepath.Join(f.root, id, name)
}

func (f *fsJobStore) Create(job domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.JobDir(job.ID), 0755); err != nil {
		return fmt.Errorf("create job dir: %w", err)
	}

	payload, err := json.MarshalIndent(job.Payload, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.ArtifactPath(job.ID, domain.PayloadFileName), payload, 0644); err != nil {
		return fmt.Errorf("persist payload: %w", err)
	}

	return f.writeStatus(job)
}

func (f *fsJobStore) Get(id string) (domain.Job, error) {
	raw, err := os.ReadFile(f.ArtifactPath(id, domain.StatusFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Job{}, domain.ErrNotFound
		}
		return domain.Job{}, err
	}

	var job domain.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return domain.Job{}, fmt.Errorf("decode status for job %s: %w", id, err)
	}
	return job, nil
}

func (f *fsJobStore) UpdateProgress(id string, stage domain.Stage, detail string) error {
	return f.transition(id, domain.JobStatusProcessing, func(job *domain.Job) {
		job.Stage = stage
		job.Detail = detail
	})
}

func (f *fsJobStore) MarkDone(id string, resultPath string) error {
	return f.transition(id, domain.JobStatusDone, func(job *domain.Job) {
		job.ResultPath = resultPath
		job.Detail = ""
	})
}

func (f *fsJobStore) MarkFailed(id string, reason string) error {
	return f.transition(id, domain.JobStatusFailed, func(job *domain.Job) {
		job.Reason = reason
	})
}

func (f *fsJobStore) RequestCancel(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, err := f.Get(id)
	if err != nil {
		return err
	}
	if domain.IsTerminal(job.Status) {
		return fmt.Errorf("%w: job already %s", domain.ErrInvalidTransition, job.Status)
	}

	marker, err := os.Create(f.ArtifactPath(id, domain.CancelFileName))
	if err != nil {
		return fmt.Errorf("write cancel marker: %w", err)
	}
	return marker.Close()
}

func (f *fsJobStore) CancelRequested(id string) bool {
	_, err := os.Stat(f.ArtifactPath(id, domain.CancelFileName))
	return err == nil
}

func (f *fsJobStore) transition(id string, to domain.JobStatus, mutate func(*domain.Job)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, err := f.Get(id)
	if err != nil {
		return err
	}
	if !domain.ValidTransition(job.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, job.Status, to)
	}

	job.Status = to
	mutate(&job)
	return f.writeStatus(job)
}

func (f *fsJobStore) writeStatus(job domain.Job) error {
	payload, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}

	statusPath := f.ArtifactPath(job.ID, domain.StatusFileName)
	tmpPath := statusPath + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0644); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return os.Rename(tmpPath, statusPath)
}
