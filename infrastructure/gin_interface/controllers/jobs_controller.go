package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orion99879-crypto/orion99/application/ports/inbound"
	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/domain"
	"github.com/orion99879-crypto/orion99/infrastructure/gin_interface/dto"
)

type JobsController interface {
	SubmitJob(c *gin.Context)
	JobStatus(c *gin.Context)
	CancelJob(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type jobsController struct {
	logger outbound.LoggerPort
	intake inbound.JobIntakePort
}

func NewJobsController(logger outbound.LoggerPort, intake inbound.JobIntakePort) JobsController {
	return &jobsController{
		logger: logger,
		intake: intake,
	}
}

func (j *jobsController) SubmitJob(c *gin.Context) {
	var req dto.SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, err := j.intake.Submit(inbound.SubmitJobParams{
		Title:           req.Title,
		ChapterText:     req.ChapterText,
		CharacterName:   req.CharacterName,
		CharacterImages: req.CharacterImages,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSubmission):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrQueueFull):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			j.logger.Error(err, "failed to accept job")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept job"})
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.SubmitJobResponse{JobID: jobID})
}

// JobStatus reads only the job store; unknown ids are a normal response
// variant, not an error.
func (j *jobsController) JobStatus(c *gin.Context) {
	job, err := j.intake.Status(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.JobStatusResponse{Status: dto.StatusNotFound})
			return
		}
		j.logger.Error(err, "failed to read job status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read job status"})
		return
	}

	c.JSON(http.StatusOK, dto.FromJob(job))
}

func (j *jobsController) CancelJob(c *gin.Context) {
	err := j.intake.Cancel(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.JobStatusResponse{Status: dto.StatusNotFound})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			j.logger.Error(err, "failed to cancel job")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel job"})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "cancel requested"})
}

func (j *jobsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/jobs", j.SubmitJob)
	g.GET("/jobs/:id", j.JobStatus)
	g.POST("/jobs/:id/cancel", j.CancelJob)
}
