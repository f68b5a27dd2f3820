package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
	"github.com/fieldhouse/sports-cms-api/pkg/export"
)

type enquiryRepository interface {
	List(ctx context.Context, page, perPage int) ([]models.Enquiry, int, error)
	ListAll(ctx context.Context) ([]models.Enquiry, error)
	Create(ctx context.Context, enquiry *models.Enquiry) error
	Delete(ctx context.Context, id string) error
}

// CreateEnquiryRequest captures a public contact-form submission.
type CreateEnquiryRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message" validate:"required"`
}

// ExportResult is a rendered enquiry export ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EnquiryService coordinates contact-form submissions and their export.
type EnquiryService struct {
	repo      enquiryRepository
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnquiryService constructs EnquiryService.
func NewEnquiryService(repo enquiryRepository, validate *validator.Validate, logger *zap.Logger) *EnquiryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{
		repo:      repo,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// List returns one page of enquiries, newest first.
func (s *EnquiryService) List(ctx context.Context, page, perPage int) ([]models.Enquiry, *models.Pagination, error) {
	enquiries, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enquiries")
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	return enquiries, models.NewPagination(total, page, perPage), nil
}

// Create records a contact-form submission.
func (s *EnquiryService) Create(ctx context.Context, req CreateEnquiryRequest) (*models.Enquiry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enquiry payload")
	}
	enquiry := &models.Enquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enquiry")
	}
	return enquiry, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enquiry")
	}
	return nil
}

// Export renders every enquiry as CSV or PDF.
func (s *EnquiryService) Export(ctx context.Context, format string) (*ExportResult, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	enquiries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enquiries")
	}

	dataset := export.Dataset{
		Headers: []string{"Name", "Email", "Phone", "Subject", "Message", "Received"},
		Rows:    make([][]string, 0, len(enquiries)),
	}
	for _, e := range enquiries {
		dataset.Rows = append(dataset.Rows, []string{
			e.Name,
			e.Email,
			derefOrEmpty(e.Phone),
			derefOrEmpty(e.Subject),
			e.Message,
			e.CreatedAt.Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("enquiries-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	default:
		content, err := s.pdf.Render(dataset, "Enquiries")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("enquiries-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
