package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// InfrastructureHandler exposes facility endpoints.
type InfrastructureHandler struct {
	infra *service.InfrastructureService
}

// NewInfrastructureHandler constructs InfrastructureHandler.
func NewInfrastructureHandler(infra *service.InfrastructureService) *InfrastructureHandler {
	return &InfrastructureHandler{infra: infra}
}

// Get godoc
// @Summary Get one facility or a page of facilities
// @Tags Infrastructures
// @Produce json
// @Param id query string false "Infrastructure ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /infrastructures [get]
func (h *InfrastructureHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		item, err := h.infra.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, item, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, pagination, err := h.infra.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Create facility
// @Tags Infrastructures
// @Accept json
// @Produce json
// @Param payload body service.InfrastructureRequest true "Facility payload"
// @Success 201 {object} response.Envelope
// @Router /infrastructures [post]
func (h *InfrastructureHandler) Create(c *gin.Context) {
	var req service.InfrastructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.infra.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update facility
// @Tags Infrastructures
// @Accept json
// @Produce json
// @Param payload body service.InfrastructureRequest true "Facility payload"
// @Success 200 {object} response.Envelope
// @Router /infrastructures [put]
func (h *InfrastructureHandler) Update(c *gin.Context) {
	var req service.InfrastructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.infra.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete facility
// @Tags Infrastructures
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Infrastructure ID"
// @Success 200 {object} response.Envelope
// @Router /infrastructures [delete]
func (h *InfrastructureHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.infra.Delete(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
