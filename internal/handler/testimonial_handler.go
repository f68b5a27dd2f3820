package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// TestimonialHandler exposes testimonial endpoints.
type TestimonialHandler struct {
	testimonials *service.TestimonialService
}

// NewTestimonialHandler constructs TestimonialHandler.
func NewTestimonialHandler(testimonials *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

// Get godoc
// @Summary Get one testimonial or a page of testimonials
// @Tags Testimonials
// @Produce json
// @Param id query string false "Testimonial ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /testimonials [get]
func (h *TestimonialHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		testimonial, err := h.testimonials.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, testimonial, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	testimonials, pagination, err := h.testimonials.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonials, pagination)
}

// Create godoc
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param payload body service.TestimonialRequest true "Testimonial payload"
// @Success 201 {object} response.Envelope
// @Router /testimonials [post]
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req service.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	testimonial, err := h.testimonials.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, testimonial)
}

// Update godoc
// @Summary Update testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param payload body service.TestimonialRequest true "Testimonial payload"
// @Success 200 {object} response.Envelope
// @Router /testimonials [put]
func (h *TestimonialHandler) Update(c *gin.Context) {
	var req service.TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	testimonial, err := h.testimonials.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, testimonial, nil)
}

// Delete godoc
// @Summary Delete testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Testimonial ID"
// @Success 200 {object} response.Envelope
// @Router /testimonials [delete]
func (h *TestimonialHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.testimonials.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
