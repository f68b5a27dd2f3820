package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type batchRepository interface {
	FindByID(ctx context.Context, id string) (*models.Batch, error)
	Create(ctx context.Context, batch *models.Batch) error
	UpdateScoped(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error)
	Delete(ctx context.Context, batchID string) error
}

type academyFinder interface {
	FindByID(ctx context.Context, id string) (*models.Academy, error)
}

// CreateBatchRequest captures the batch creation payload.
type CreateBatchRequest struct {
	SportsAcademyID string  `json:"sportsAcademyId" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Sport           string  `json:"sport" validate:"required"`
	HeadCoach       string  `json:"headCoach" validate:"required"`
	StartDate       string  `json:"startDate" validate:"required"`
	EndDate         string  `json:"endDate" validate:"required"`
	StartTime       string  `json:"startTime" validate:"required"`
	EndTime         string  `json:"endTime" validate:"required"`
	Description     *string `json:"description"`
}

// UpdateBatchRequest captures a partial batch update. The update only applies
// when the batch belongs to the named academy.
type UpdateBatchRequest struct {
	SportsAcademyID string  `json:"sportsAcademyId" validate:"required"`
	BatchID         string  `json:"batchId" validate:"required"`
	Name            *string `json:"name"`
	Sport           *string `json:"sport"`
	HeadCoach       *string `json:"headCoach"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Description     *string `json:"description"`
}

// BatchService coordinates standalone batch operations.
type BatchService struct {
	repo      batchRepository
	academies academyFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBatchService constructs BatchService.
func NewBatchService(repo batchRepository, academies academyFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{repo: repo, academies: academies, cache: cache, validator: validate, logger: logger}
}

// Create persists a new batch linked to an existing academy.
func (s *BatchService) Create(ctx context.Context, req CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}

	batch, err := buildBatch(BatchInput{
		Name:        req.Name,
		Sport:       req.Sport,
		HeadCoach:   req.HeadCoach,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	batch.SportsAcademyID = req.SportsAcademyID

	if _, err := s.academies.FindByID(ctx, req.SportsAcademyID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "academy not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academy")
	}

	if err := s.repo.Create(ctx, batch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create batch")
	}
	s.invalidateListing(ctx)
	return batch, nil
}

// Update applies a partial update scoped to the owning academy. Supplying a
// batch ID paired with the wrong academy yields not found, never a write.
func (s *BatchService) Update(ctx context.Context, req UpdateBatchRequest) (*models.Batch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid batch payload")
	}

	patch, err := s.buildPatch(ctx, req)
	if err != nil {
		return nil, err
	}

	batch, err := s.repo.UpdateScoped(ctx, req.SportsAcademyID, req.BatchID, *patch)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found for academy")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update batch")
	}
	s.invalidateListing(ctx)
	return batch, nil
}

// Delete removes a batch by ID. Deleting an unknown ID is a no-op.
func (s *BatchService) Delete(ctx context.Context, batchID string) error {
	if batchID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "batchId is required")
	}
	if err := s.repo.Delete(ctx, batchID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete batch")
	}
	s.invalidateListing(ctx)
	return nil
}

// buildPatch parses the supplied fields and checks the resulting date window
// against the stored batch when only one side of the window changes.
func (s *BatchService) buildPatch(ctx context.Context, req UpdateBatchRequest) (*models.BatchPatch, error) {
	patch := models.BatchPatch{
		Name:        req.Name,
		Sport:       req.Sport,
		HeadCoach:   req.HeadCoach,
		Description: req.Description,
	}

	var startDate, endDate *time.Time
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid batch start date")
		}
		startDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid batch end date")
		}
		endDate = &parsed
	}

	if (startDate != nil) != (endDate != nil) {
		existing, err := s.repo.FindByID(ctx, req.BatchID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found for academy")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batch")
		}
		if existing.SportsAcademyID != req.SportsAcademyID {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "batch not found for academy")
		}
		if startDate == nil {
			startDate = &existing.StartDate
			patch.EndDate = endDate
		} else {
			endDate = &existing.EndDate
			patch.StartDate = startDate
		}
		if startDate.After(*endDate) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "batch start date must not be after end date")
		}
	} else if startDate != nil && endDate != nil {
		if startDate.After(*endDate) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "batch start date must not be after end date")
		}
		patch.StartDate = startDate
		patch.EndDate = endDate
	}

	if req.StartTime != nil {
		if !validTimeOfDay(*req.StartTime) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "batch times must be HH:MM or HH:MM:SS")
		}
		patch.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		if !validTimeOfDay(*req.EndTime) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "batch times must be HH:MM or HH:MM:SS")
		}
		patch.EndTime = req.EndTime
	}

	if patch == (models.BatchPatch{}) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	return &patch, nil
}

func (s *BatchService) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, cacheKeyPublicAcademies+"*")
	}
}
