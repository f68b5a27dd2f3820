package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type mockBatchRepo struct {
	findByIDFn     func(ctx context.Context, id string) (*models.Batch, error)
	createFn       func(ctx context.Context, batch *models.Batch) error
	updateScopedFn func(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error)
	deleteFn       func(ctx context.Context, batchID string) error
}

func (m *mockBatchRepo) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBatchRepo) Create(ctx context.Context, batch *models.Batch) error {
	return m.createFn(ctx, batch)
}

func (m *mockBatchRepo) UpdateScoped(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error) {
	return m.updateScopedFn(ctx, academyID, batchID, patch)
}

func (m *mockBatchRepo) Delete(ctx context.Context, batchID string) error {
	return m.deleteFn(ctx, batchID)
}

type mockAcademyFinder struct {
	findByIDFn func(ctx context.Context, id string) (*models.Academy, error)
}

func (m *mockAcademyFinder) FindByID(ctx context.Context, id string) (*models.Academy, error) {
	return m.findByIDFn(ctx, id)
}

func validCreateBatchRequest() CreateBatchRequest {
	return CreateBatchRequest{
		SportsAcademyID: "a1",
		Name:            "Morning",
		Sport:           "Cricket",
		HeadCoach:       "Coach A",
		StartDate:       "2026-05-01",
		EndDate:         "2026-06-01",
		StartTime:       "06:00",
		EndTime:         "08:00",
	}
}

func TestBatchServiceCreateRejectsBadTime(t *testing.T) {
	repo := &mockBatchRepo{
		createFn: func(ctx context.Context, batch *models.Batch) error {
			t.Fatal("create must not be called")
			return nil
		},
	}
	svc := NewBatchService(repo, &mockAcademyFinder{}, nil, nil, nil)

	req := validCreateBatchRequest()
	req.StartTime = "25:00"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestBatchServiceCreateUnknownAcademy(t *testing.T) {
	repo := &mockBatchRepo{}
	finder := &mockAcademyFinder{
		findByIDFn: func(ctx context.Context, id string) (*models.Academy, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewBatchService(repo, finder, nil, nil, nil)

	_, err := svc.Create(context.Background(), validCreateBatchRequest())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestBatchServiceCreateLinksAcademy(t *testing.T) {
	var created *models.Batch
	repo := &mockBatchRepo{
		createFn: func(ctx context.Context, batch *models.Batch) error {
			created = batch
			return nil
		},
	}
	finder := &mockAcademyFinder{
		findByIDFn: func(ctx context.Context, id string) (*models.Academy, error) {
			return &models.Academy{ID: id}, nil
		},
	}
	svc := NewBatchService(repo, finder, nil, nil, nil)

	_, err := svc.Create(context.Background(), validCreateBatchRequest())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "a1", created.SportsAcademyID)
	assert.Equal(t, "06:00", created.StartTime)
}

func TestBatchServiceUpdateWrongPairingIsNotFound(t *testing.T) {
	repo := &mockBatchRepo{
		updateScopedFn: func(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewBatchService(repo, &mockAcademyFinder{}, nil, nil, nil)

	name := "Evening"
	_, err := svc.Update(context.Background(), UpdateBatchRequest{SportsAcademyID: "other", BatchID: "b1", Name: &name})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestBatchServiceUpdateSingleDateValidatedAgainstStored(t *testing.T) {
	stored := &models.Batch{
		ID:              "b1",
		SportsAcademyID: "a1",
		StartDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	repo := &mockBatchRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Batch, error) {
			return stored, nil
		},
		updateScopedFn: func(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error) {
			t.Fatal("update must not be called")
			return nil, nil
		},
	}
	svc := NewBatchService(repo, &mockAcademyFinder{}, nil, nil, nil)

	start := "2026-07-01"
	_, err := svc.Update(context.Background(), UpdateBatchRequest{SportsAcademyID: "a1", BatchID: "b1", StartDate: &start})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestBatchServiceUpdateRequiresAtLeastOneField(t *testing.T) {
	svc := NewBatchService(&mockBatchRepo{}, &mockAcademyFinder{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), UpdateBatchRequest{SportsAcademyID: "a1", BatchID: "b1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestBatchServiceDeleteRequiresID(t *testing.T) {
	svc := NewBatchService(&mockBatchRepo{}, &mockAcademyFinder{}, nil, nil, nil)

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
