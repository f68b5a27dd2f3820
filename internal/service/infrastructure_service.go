package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type infrastructureRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.Infrastructure, int, error)
	FindByID(ctx context.Context, id string) (*models.Infrastructure, error)
	Create(ctx context.Context, item *models.Infrastructure) error
	Update(ctx context.Context, item *models.Infrastructure) error
	Delete(ctx context.Context, id string) error
}

// InfrastructureRequest captures create and update payloads for facilities.
type InfrastructureRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
	IsActive    *bool    `json:"isActive"`
}

// InfrastructureService coordinates facility listings.
type InfrastructureService struct {
	repo      infrastructureRepository
	images    ImageRemover
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInfrastructureService constructs InfrastructureService.
func NewInfrastructureService(repo infrastructureRepository, images ImageRemover, validate *validator.Validate, logger *zap.Logger) *InfrastructureService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InfrastructureService{repo: repo, images: images, validator: validate, logger: logger}
}

// List returns one page of facilities.
func (s *InfrastructureService) List(ctx context.Context, page, perPage int) ([]models.Infrastructure, *models.Pagination, error) {
	items, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list infrastructures")
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return items, models.NewPagination(total, page, perPage), nil
}

// Get returns one facility by ID.
func (s *InfrastructureService) Get(ctx context.Context, id string) (*models.Infrastructure, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "infrastructure not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load infrastructure")
	}
	return item, nil
}

// Create adds a facility. At least one image URL is required.
func (s *InfrastructureService) Create(ctx context.Context, req InfrastructureRequest) (*models.Infrastructure, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid infrastructure payload")
	}
	item := &models.Infrastructure{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create infrastructure")
	}
	return item, nil
}

// Update rewrites a facility's fields.
func (s *InfrastructureService) Update(ctx context.Context, req InfrastructureRequest) (*models.Infrastructure, error) {
	if req.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid infrastructure payload")
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "infrastructure not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load infrastructure")
	}

	existing.Name = req.Name
	existing.Location = req.Location
	existing.Description = req.Description
	existing.Images = req.Images
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update infrastructure")
	}
	return existing, nil
}

// Delete removes a facility and best-effort deletes its stored images.
func (s *InfrastructureService) Delete(ctx context.Context, id string) (*models.Infrastructure, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "infrastructure not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load infrastructure")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "infrastructure not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete infrastructure")
	}
	if s.images != nil {
		for _, url := range item.Images {
			if err := s.images.RemoveByURL(ctx, url); err != nil {
				s.logger.Warn("infrastructure image delete failed", zap.String("infrastructure_id", id), zap.String("url", url), zap.Error(err))
			}
		}
	}
	return item, nil
}
