package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fieldhouse/sports-cms-api/internal/service"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/response"
)

// TeamMemberHandler exposes About page roster endpoints.
type TeamMemberHandler struct {
	members *service.TeamMemberService
}

// NewTeamMemberHandler constructs TeamMemberHandler.
func NewTeamMemberHandler(members *service.TeamMemberService) *TeamMemberHandler {
	return &TeamMemberHandler{members: members}
}

// Get godoc
// @Summary Get one team member or a page of the roster
// @Tags TeamMembers
// @Produce json
// @Param id query string false "Team member ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /team-members [get]
func (h *TeamMemberHandler) Get(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		member, err := h.members.Get(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, member, nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	members, pagination, err := h.members.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, pagination)
}

// Create godoc
// @Summary Create team member
// @Tags TeamMembers
// @Accept json
// @Produce json
// @Param payload body service.TeamMemberRequest true "Team member payload"
// @Success 201 {object} response.Envelope
// @Router /team-members [post]
func (h *TeamMemberHandler) Create(c *gin.Context) {
	var req service.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update team member
// @Tags TeamMembers
// @Accept json
// @Produce json
// @Param payload body service.TeamMemberRequest true "Team member payload"
// @Success 200 {object} response.Envelope
// @Router /team-members [put]
func (h *TeamMemberHandler) Update(c *gin.Context) {
	var req service.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.members.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Delete godoc
// @Summary Delete team member
// @Tags TeamMembers
// @Accept json
// @Produce json
// @Param payload body deleteByIDRequest true "Team member ID"
// @Success 200 {object} response.Envelope
// @Router /team-members [delete]
func (h *TeamMemberHandler) Delete(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.members.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
