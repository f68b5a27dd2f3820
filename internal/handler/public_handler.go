package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// PublicHandler exposes unauthenticated read-only listing endpoints.
type PublicHandler struct {
	public *service.PublicService
}

// NewPublicHandler constructs PublicHandler.
func NewPublicHandler(public *service.PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

// ListAcademies godoc
// @Summary List all academies with their batches
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/academies [get]
func (h *PublicHandler) ListAcademies(c *gin.Context) {
	academies, err := h.public.ListAcademies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, academies, nil)
}
