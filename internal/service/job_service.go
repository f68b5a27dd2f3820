package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type jobRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.Job, int, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
}

// JobRequest captures create and update payloads for career openings.
type JobRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title" validate:"required"`
	Department     string `json:"department" validate:"required"`
	Location       string `json:"location" validate:"required"`
	EmploymentType string `json:"employmentType" validate:"required"`
	Description    string `json:"description" validate:"required"`
	IsActive       *bool  `json:"isActive"`
}

// JobService coordinates career openings.
type JobService struct {
	repo      jobRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs JobService.
func NewJobService(repo jobRepository, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{repo: repo, validator: validate, logger: logger}
}

// List returns one page of openings.
func (s *JobService) List(ctx context.Context, page, perPage int) ([]models.Job, *models.Pagination, error) {
	jobs, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return jobs, models.NewPagination(total, page, perPage), nil
}

// Get returns one opening by ID.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// Create adds an opening.
func (s *JobService) Create(ctx context.Context, req JobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}
	job := &models.Job{
		Title:          req.Title,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		IsActive:       true,
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}
	return job, nil
}

// Update rewrites an opening.
func (s *JobService) Update(ctx context.Context, req JobRequest) (*models.Job, error) {
	if req.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	existing.Title = req.Title
	existing.Department = req.Department
	existing.Location = req.Location
	existing.EmploymentType = req.EmploymentType
	existing.Description = req.Description
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	return existing, nil
}

// Delete removes an opening.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}
	return nil
}
