package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/internal/models"
)

type mockEnquiryRepo struct {
	listAllFn func(ctx context.Context) ([]models.Enquiry, error)
	createFn  func(ctx context.Context, enquiry *models.Enquiry) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockEnquiryRepo) List(ctx context.Context, page, perPage int) ([]models.Enquiry, int, error) {
	return nil, 0, nil
}

func (m *mockEnquiryRepo) ListAll(ctx context.Context) ([]models.Enquiry, error) {
	return m.listAllFn(ctx)
}

func (m *mockEnquiryRepo) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return m.createFn(ctx, enquiry)
}

func (m *mockEnquiryRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func TestEnquiryServiceCreateValidatesEmail(t *testing.T) {
	svc := NewEnquiryService(&mockEnquiryRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateEnquiryRequest{
		Name:    "Asha",
		Email:   "not-an-email",
		Message: "Hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid enquiry payload")
}

func TestEnquiryServiceExportRejectsUnknownFormat(t *testing.T) {
	svc := NewEnquiryService(&mockEnquiryRepo{}, nil, nil)

	_, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be csv or pdf")
}

func TestEnquiryServiceExportCSV(t *testing.T) {
	phone := "+91-900"
	repo := &mockEnquiryRepo{
		listAllFn: func(ctx context.Context) ([]models.Enquiry, error) {
			return []models.Enquiry{
				{
					Name:      "Asha",
					Email:     "asha@example.com",
					Phone:     &phone,
					Message:   "Batch timings?",
					CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					Name:      "Ravi",
					Email:     "ravi@example.com",
					Message:   "Court booking",
					CreatedAt: time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	svc := NewEnquiryService(repo, nil, nil)

	result, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "enquiries-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Phone,Subject,Message,Received", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "asha@example.com")
	assert.Contains(t, lines[1], "+91-900")
	assert.Contains(t, lines[2], "Court booking")
}

func TestEnquiryServiceExportPDF(t *testing.T) {
	repo := &mockEnquiryRepo{
		listAllFn: func(ctx context.Context) ([]models.Enquiry, error) {
			return []models.Enquiry{{Name: "Asha", Email: "asha@example.com", Message: "Hi"}}, nil
		},
	}
	svc := NewEnquiryService(repo, nil, nil)

	result, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestEnquiryServiceDeleteRequiresID(t *testing.T) {
	svc := NewEnquiryService(&mockEnquiryRepo{}, nil, nil)

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}
