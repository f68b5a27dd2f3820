package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

const academyPageSize = 20

// cacheKeyPublicAcademies stores the public listing payload.
const cacheKeyPublicAcademies = "public:academies"

type academyRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.Academy, int, error)
	FindByID(ctx context.Context, id string) (*models.Academy, error)
	FindDetailByID(ctx context.Context, id string) (*models.AcademyDetail, error)
	Create(ctx context.Context, academy *models.Academy) error
	Update(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error
	Delete(ctx context.Context, id string) error
}

// ImageRemover issues best-effort deletes against the image storage gateway.
type ImageRemover interface {
	RemoveByURL(ctx context.Context, url string) error
}

// CreateAcademyRequest captures the academy creation payload.
type CreateAcademyRequest struct {
	Name        string   `json:"name" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
}

// BatchInput is one entry of a bulk batch replacement.
type BatchInput struct {
	Name        string  `json:"name" validate:"required"`
	Sport       string  `json:"sport" validate:"required"`
	HeadCoach   string  `json:"headCoach" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	StartTime   string  `json:"startTime" validate:"required"`
	EndTime     string  `json:"endTime" validate:"required"`
	Description *string `json:"description"`
}

// UpdateAcademyRequest captures the academy update payload. A non-nil Batches
// slice triggers a full replacement of the academy's batch list.
type UpdateAcademyRequest struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Location    string        `json:"location" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Images      []string      `json:"images" validate:"required,min=1,dive,required"`
	IsActive    *bool         `json:"isActive"`
	Batches     *[]BatchInput `json:"batches"`
}

// AcademyService coordinates academy operations.
type AcademyService struct {
	repo      academyRepository
	images    ImageRemover
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademyService constructs AcademyService.
func NewAcademyService(repo academyRepository, images ImageRemover, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AcademyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademyService{repo: repo, images: images, cache: cache, validator: validate, logger: logger}
}

// List returns one admin page of academies without their batches.
func (s *AcademyService) List(ctx context.Context, page int) ([]models.Academy, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	academies, total, err := s.repo.List(ctx, page, academyPageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academies")
	}
	return academies, models.NewPagination(total, page, academyPageSize), nil
}

// Get returns one academy with its batches ordered by start date.
func (s *AcademyService) Get(ctx context.Context, id string) (*models.AcademyDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academy")
	}
	return detail, nil
}

// Create adds a new academy. The images list must hold at least one URL.
func (s *AcademyService) Create(ctx context.Context, req CreateAcademyRequest) (*models.Academy, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academy payload")
	}

	academy := &models.Academy{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, academy); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academy")
	}
	s.invalidateListing(ctx)
	return academy, nil
}

// Update rewrites the academy's scalar fields and images. When the payload
// carries a batches array, every existing batch is dropped and the supplied
// list inserted in the same transaction; validation happens before any write.
func (s *AcademyService) Update(ctx context.Context, req UpdateAcademyRequest) (*models.AcademyDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academy payload")
	}

	var batches []models.Batch
	replace := req.Batches != nil
	if replace {
		parsed, err := s.parseBatchInputs(*req.Batches)
		if err != nil {
			return nil, err
		}
		batches = parsed
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academy")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	academy := &models.Academy{
		ID:          existing.ID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Images:      req.Images,
		IsActive:    isActive,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, academy, batches, replace); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update academy")
	}

	detail, err := s.repo.FindDetailByID(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload academy")
	}
	s.invalidateListing(ctx)
	return detail, nil
}

// Delete removes the academy, its batches, and issues best-effort deletes for
// every image URL against the storage gateway. Image delete failures are
// logged, not rolled back; the reconciliation worker covers the leftovers.
func (s *AcademyService) Delete(ctx context.Context, id string) (*models.Academy, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}

	academy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academy")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete academy")
	}

	if s.images != nil {
		for _, url := range academy.Images {
			if err := s.images.RemoveByURL(ctx, url); err != nil {
				s.logger.Warn("academy image delete failed", zap.String("academy_id", id), zap.String("url", url), zap.Error(err))
			}
		}
	}
	s.invalidateListing(ctx)
	return academy, nil
}

func (s *AcademyService) parseBatchInputs(inputs []BatchInput) ([]models.Batch, error) {
	batches := make([]models.Batch, 0, len(inputs))
	for i, input := range inputs {
		if err := s.validator.Struct(input); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid batch entry %d", i))
		}
		batch, err := buildBatch(input)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	return batches, nil
}

func buildBatch(input BatchInput) (*models.Batch, error) {
	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid batch start date")
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid batch end date")
	}
	if startDate.After(endDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch start date must not be after end date")
	}
	if !validTimeOfDay(input.StartTime) || !validTimeOfDay(input.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch times must be HH:MM or HH:MM:SS")
	}

	return &models.Batch{
		Name:        input.Name,
		Sport:       input.Sport,
		HeadCoach:   input.HeadCoach,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Description: input.Description,
	}, nil
}

func (s *AcademyService) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cacheKeyPublicAcademies+"*")
	}
}
