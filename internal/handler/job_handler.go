package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// JobHandler exposes career opening endpoints.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Get godoc
// @Summary Get one opening or a page of openings
// @Tags Jobs
// @Produce json
// @Param id query string false "Job ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		job, err := h.jobs.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, job, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	jobs, pagination, err := h.jobs.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, pagination)
}

// Create godoc
// @Summary Create opening
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.JobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Update godoc
// @Summary Update opening
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.JobRequest true "Job payload"
// @Success 200 {object} response.Envelope
// @Router /jobs [put]
func (h *JobHandler) Update(c *gin.Context) {
	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Delete godoc
// @Summary Delete opening
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
