package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type teamMemberRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.TeamMember, int, error)
	FindByID(ctx context.Context, id string) (*models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// TeamMemberRequest captures create and update payloads for the roster.
type TeamMemberRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Role         string  `json:"role" validate:"required"`
	Bio          *string `json:"bio"`
	Image        *string `json:"image"`
	DisplayOrder int     `json:"displayOrder"`
}

// TeamMemberService coordinates the About page roster.
type TeamMemberService struct {
	repo      teamMemberRepository
	images    ImageRemover
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamMemberService constructs TeamMemberService.
func NewTeamMemberService(repo teamMemberRepository, images ImageRemover, validate *validator.Validate, logger *zap.Logger) *TeamMemberService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamMemberService{repo: repo, images: images, validator: validate, logger: logger}
}

// List returns one page of team members ordered by display order.
func (s *TeamMemberService) List(ctx context.Context, page, perPage int) ([]models.TeamMember, *models.Pagination, error) {
	members, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team members")
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return members, models.NewPagination(total, page, perPage), nil
}

// Get returns one team member by ID.
func (s *TeamMemberService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team member")
	}
	return member, nil
}

// Create adds a team member.
func (s *TeamMemberService) Create(ctx context.Context, req TeamMemberRequest) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team member payload")
	}
	member := &models.TeamMember{
		Name:         req.Name,
		Role:         req.Role,
		Bio:          req.Bio,
		Image:        req.Image,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create team member")
	}
	return member, nil
}

// Update rewrites a team member's fields.
func (s *TeamMemberService) Update(ctx context.Context, req TeamMemberRequest) (*models.TeamMember, error) {
	if req.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team member payload")
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team member")
	}

	existing.Name = req.Name
	existing.Role = req.Role
	existing.Bio = req.Bio
	existing.Image = req.Image
	existing.DisplayOrder = req.DisplayOrder
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update team member")
	}
	return existing, nil
}

// Delete removes a team member and best-effort deletes the portrait image.
func (s *TeamMemberService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load team member")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "team member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete team member")
	}
	if s.images != nil && member.Image != nil && *member.Image != "" {
		if err := s.images.RemoveByURL(ctx, *member.Image); err != nil {
			s.logger.Warn("team member image delete failed", zap.String("team_member_id", id), zap.Error(err))
		}
	}
	return nil
}
