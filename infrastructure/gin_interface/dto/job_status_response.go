package dto

import (
	"github.com/orion99879-crypto/orion99/domain"
)

type JobProgress struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail,omitempty"`
}

type JobStatusResponse struct {
	Status     string       `json:"status"`
	Progress   *JobProgress `json:"progress,omitempty"`
	ResultPath string       `json:"result_path,omitempty"`
	Reason     string       `json:"reason,omitempty"`
}

const StatusNotFound = "not_found"

// FromJob shapes the durable record into the polling contract: progress only
// while processing, result path only when done, reason only when failed.
func FromJob(job domain.Job) JobStatusResponse {
	res := JobStatusResponse{Status: string(job.Status)}
	switch job.Status {
	case domain.JobStatusProcessing:
		res.Progress = &JobProgress{
			Stage:  string(job.Stage),
			Detail: job.Detail,
		}
	case domain.JobStatusDone:
		res.ResultPath = job.ResultPath
	case domain.JobStatusFailed:
		res.Reason = job.Reason
	}
	return res
}
