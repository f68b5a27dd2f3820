package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type testimonialRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.Testimonial, int, error)
	FindByID(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id string) error
}

// TestimonialRequest captures create and update payloads for quotes.
type TestimonialRequest struct {
	ID       string  `json:"id"`
	Author   string  `json:"author" validate:"required"`
	Quote    string  `json:"quote" validate:"required"`
	Rating   int     `json:"rating" validate:"required,min=1,max=5"`
	Image    *string `json:"image"`
	IsActive *bool   `json:"isActive"`
}

// TestimonialService coordinates customer quotes.
type TestimonialService struct {
	repo      testimonialRepository
	images    ImageRemover
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestimonialService constructs TestimonialService.
func NewTestimonialService(repo testimonialRepository, images ImageRemover, validate *validator.Validate, logger *zap.Logger) *TestimonialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{repo: repo, images: images, validator: validate, logger: logger}
}

// List returns one page of testimonials.
func (s *TestimonialService) List(ctx context.Context, page, perPage int) ([]models.Testimonial, *models.Pagination, error) {
	testimonials, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list testimonials")
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return testimonials, models.NewPagination(total, page, perPage), nil
}

// Get returns one testimonial by ID.
func (s *TestimonialService) Get(ctx context.Context, id string) (*models.Testimonial, error) {
	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load testimonial")
	}
	return testimonial, nil
}

// Create adds a testimonial.
func (s *TestimonialService) Create(ctx context.Context, req TestimonialRequest) (*models.Testimonial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid testimonial payload")
	}
	testimonial := &models.Testimonial{
		Author:   req.Author,
		Quote:    req.Quote,
		Rating:   req.Rating,
		Image:    req.Image,
		IsActive: true,
	}
	if req.IsActive != nil {
		testimonial.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create testimonial")
	}
	return testimonial, nil
}

// Update rewrites a testimonial.
func (s *TestimonialService) Update(ctx context.Context, req TestimonialRequest) (*models.Testimonial, error) {
	if req.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid testimonial payload")
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load testimonial")
	}

	existing.Author = req.Author
	existing.Quote = req.Quote
	existing.Rating = req.Rating
	existing.Image = req.Image
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update testimonial")
	}
	return existing, nil
}

// Delete removes a testimonial and best-effort deletes its image.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load testimonial")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete testimonial")
	}
	if s.images != nil && testimonial.Image != nil && *testimonial.Image != "" {
		if err := s.images.RemoveByURL(ctx, *testimonial.Image); err != nil {
			s.logger.Warn("testimonial image delete failed", zap.String("testimonial_id", id), zap.Error(err))
		}
	}
	return nil
}
