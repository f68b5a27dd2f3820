package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// EnquiryHandler exposes contact-form endpoints.
type EnquiryHandler struct {
	enquiries *service.EnquiryService
}

// NewEnquiryHandler constructs EnquiryHandler.
func NewEnquiryHandler(enquiries *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries}
}

// List godoc
// @Summary List enquiries
// @Tags Enquiries
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	enquiries, pagination, err := h.enquiries.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiries, pagination)
}

// Create godoc
// @Summary Submit an enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param payload body service.CreateEnquiryRequest true "Enquiry payload"
// @Success 201 {object} response.Envelope
// @Router /enquiries [post]
func (h *EnquiryHandler) Create(c *gin.Context) {
	var req service.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// Delete godoc
// @Summary Delete enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Enquiry ID"
// @Success 200 {object} response.Envelope
// @Router /enquiries [delete]
func (h *EnquiryHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enquiries.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Export godoc
// @Summary Export enquiries
// @Tags Enquiries
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /enquiries/export [get]
func (h *EnquiryHandler) Export(c *gin.Context) {
	result, err := h.enquiries.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
