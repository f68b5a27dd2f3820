package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type mockAcademyRepo struct {
	listFn         func(ctx context.Context, page, perPage int) ([]models.Academy, int, error)
	findByIDFn     func(ctx context.Context, id string) (*models.Academy, error)
	findDetailFn   func(ctx context.Context, id string) (*models.AcademyDetail, error)
	createFn       func(ctx context.Context, academy *models.Academy) error
	updateFn       func(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error
	deleteFn       func(ctx context.Context, id string) error
	listAllFn      func(ctx context.Context) ([]models.AcademyDetail, error)
	updateCalled   bool
	lastReplace    bool
	lastBatchCount int
}

func (m *mockAcademyRepo) List(ctx context.Context, page, perPage int) ([]models.Academy, int, error) {
	return m.listFn(ctx, page, perPage)
}

func (m *mockAcademyRepo) FindByID(ctx context.Context, id string) (*models.Academy, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockAcademyRepo) FindDetailByID(ctx context.Context, id string) (*models.AcademyDetail, error) {
	return m.findDetailFn(ctx, id)
}

func (m *mockAcademyRepo) Create(ctx context.Context, academy *models.Academy) error {
	return m.createFn(ctx, academy)
}

func (m *mockAcademyRepo) Update(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error {
	m.updateCalled = true
	m.lastReplace = replaceBatches
	m.lastBatchCount = len(batches)
	return m.updateFn(ctx, academy, batches, replaceBatches)
}

func (m *mockAcademyRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockAcademyRepo) ListAllWithBatches(ctx context.Context) ([]models.AcademyDetail, error) {
	return m.listAllFn(ctx)
}

type mockImageRemover struct {
	removed []string
	failOn  string
}

func (m *mockImageRemover) RemoveByURL(ctx context.Context, url string) error {
	if url == m.failOn {
		return errors.New("storage unavailable")
	}
	m.removed = append(m.removed, url)
	return nil
}

func validAcademy() *models.Academy {
	return &models.Academy{ID: "a1", Name: "North", Location: "Pune", Description: "Campus", Images: []string{"https://img/one.jpg", "https://img/two.jpg"}, IsActive: true}
}

func TestAcademyServiceCreateRequiresImages(t *testing.T) {
	repo := &mockAcademyRepo{
		createFn: func(ctx context.Context, academy *models.Academy) error {
			t.Fatal("create must not be called")
			return nil
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateAcademyRequest{Name: "North", Location: "Pune", Description: "Campus"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestAcademyServiceCreateDefaultsActive(t *testing.T) {
	var created *models.Academy
	repo := &mockAcademyRepo{
		createFn: func(ctx context.Context, academy *models.Academy) error {
			created = academy
			return nil
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateAcademyRequest{Name: "North", Location: "Pune", Description: "Campus", Images: []string{"https://img/one.jpg"}})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.IsActive)
}

func TestAcademyServiceUpdateRejectsInvertedDates(t *testing.T) {
	repo := &mockAcademyRepo{
		updateFn: func(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error {
			t.Fatal("update must not be called")
			return nil
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	batches := []BatchInput{{Name: "Morning", Sport: "Cricket", HeadCoach: "Coach A", StartDate: "2026-06-01", EndDate: "2026-05-01", StartTime: "06:00", EndTime: "08:00"}}
	_, err := svc.Update(context.Background(), UpdateAcademyRequest{ID: "a1", Name: "North", Location: "Pune", Description: "Campus", Images: []string{"u"}, Batches: &batches})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.False(t, repo.updateCalled)
}

func TestAcademyServiceUpdateRejectsBadTimeFormat(t *testing.T) {
	repo := &mockAcademyRepo{}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	batches := []BatchInput{{Name: "Morning", Sport: "Cricket", HeadCoach: "Coach A", StartDate: "2026-05-01", EndDate: "2026-06-01", StartTime: "6am", EndTime: "08:00"}}
	_, err := svc.Update(context.Background(), UpdateAcademyRequest{ID: "a1", Name: "North", Location: "Pune", Description: "Campus", Images: []string{"u"}, Batches: &batches})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.False(t, repo.updateCalled)
}

func TestAcademyServiceUpdateReplacesBatchesWhenSupplied(t *testing.T) {
	repo := &mockAcademyRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Academy, error) {
			return validAcademy(), nil
		},
		updateFn: func(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error {
			return nil
		},
		findDetailFn: func(ctx context.Context, id string) (*models.AcademyDetail, error) {
			return &models.AcademyDetail{Academy: *validAcademy(), Batches: []models.Batch{}}, nil
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	batches := []BatchInput{{Name: "Morning", Sport: "Cricket", HeadCoach: "Coach A", StartDate: "2026-05-01", EndDate: "2026-06-01", StartTime: "06:00", EndTime: "08:00"}}
	_, err := svc.Update(context.Background(), UpdateAcademyRequest{ID: "a1", Name: "North", Location: "Pune", Description: "Campus", Images: []string{"u"}, Batches: &batches})
	require.NoError(t, err)
	assert.True(t, repo.lastReplace)
	assert.Equal(t, 1, repo.lastBatchCount)
}

func TestAcademyServiceUpdateWithoutBatchesKeepsList(t *testing.T) {
	repo := &mockAcademyRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Academy, error) {
			return validAcademy(), nil
		},
		updateFn: func(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error {
			return nil
		},
		findDetailFn: func(ctx context.Context, id string) (*models.AcademyDetail, error) {
			return &models.AcademyDetail{Academy: *validAcademy(), Batches: []models.Batch{}}, nil
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	_, err := svc.Update(context.Background(), UpdateAcademyRequest{ID: "a1", Name: "North", Location: "Pune", Description: "Campus", Images: []string{"u"}})
	require.NoError(t, err)
	assert.True(t, repo.updateCalled)
	assert.False(t, repo.lastReplace)
}

func TestAcademyServiceGetNotFound(t *testing.T) {
	repo := &mockAcademyRepo{
		findDetailFn: func(ctx context.Context, id string) (*models.AcademyDetail, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewAcademyService(repo, nil, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestAcademyServiceDeleteRemovesImagesBestEffort(t *testing.T) {
	repo := &mockAcademyRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Academy, error) {
			return validAcademy(), nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	remover := &mockImageRemover{failOn: "https://img/one.jpg"}
	svc := NewAcademyService(repo, remover, nil, nil, nil)

	academy, err := svc.Delete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", academy.ID)
	assert.Equal(t, []string{"https://img/two.jpg"}, remover.removed)
}
