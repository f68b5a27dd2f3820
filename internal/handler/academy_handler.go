package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// AcademyHandler exposes admin academy endpoints.
type AcademyHandler struct {
	academies *service.AcademyService
}

// NewAcademyHandler constructs AcademyHandler.
func NewAcademyHandler(academies *service.AcademyService) *AcademyHandler {
	return &AcademyHandler{academies: academies}
}

// Get godoc
// @Summary Get one academy or a page of academies
// @Description With id returns one academy including its batches; otherwise a page of academies without batches.
// @Tags Academies
// @Produce json
// @Param id query string false "Academy ID"
// @Param page query int false "Page"
// @Success 200 {object} response.Envelope
// @Router /academies [get]
func (h *AcademyHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		detail, err := h.academies.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, detail, nil)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	academies, pagination, err := h.academies.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academies, pagination)
}

// Create godoc
// @Summary Create academy
// @Tags Academies
// @Accept json
// @Produce json
// @Param payload body service.CreateAcademyRequest true "Academy payload"
// @Success 201 {object} response.Envelope
// @Router /academies [post]
func (h *AcademyHandler) Create(c *gin.Context) {
	var req service.CreateAcademyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	academy, err := h.academies.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, academy)
}

// Update godoc
// @Summary Update academy
// @Description Rewrites the academy. A batches array replaces the full batch list transactionally.
// @Tags Academies
// @Accept json
// @Produce json
// @Param payload body service.UpdateAcademyRequest true "Academy payload"
// @Success 200 {object} response.Envelope
// @Router /academies [put]
func (h *AcademyHandler) Update(c *gin.Context) {
	var req service.UpdateAcademyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.academies.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

type deleteByIDRequest struct {
	ID string `json:"id" binding:"required"`
}

// Delete godoc
// @Summary Delete academy
// @Description Removes the academy with its batches and issues best-effort deletes for its images.
// @Tags Academies
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Academy ID"
// @Success 200 {object} response.Envelope
// @Router /academies [delete]
func (h *AcademyHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	academy, err := h.academies.Delete(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academy, nil)
}
