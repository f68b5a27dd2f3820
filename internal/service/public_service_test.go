package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type stubCacheRepo struct {
	get  func(ctx context.Context, key string, dest interface{}) error
	set  func(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	hits int
	sets int
}

func (s *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if s.get != nil {
		err := s.get(ctx, key, dest)
		if err == nil {
			s.hits++
		}
		return err
	}
	return appErrors.ErrCacheMiss
}

func (s *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	if s.set != nil {
		return s.set(ctx, key, value, ttl)
	}
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

type stubPublicRepo struct {
	calls int
	items []models.AcademyDetail
	err   error
}

func (s *stubPublicRepo) ListAllWithBatches(ctx context.Context) ([]models.AcademyDetail, error) {
	s.calls++
	return s.items, s.err
}

func TestPublicServiceListAcademiesFallsThroughOnMiss(t *testing.T) {
	repo := &stubPublicRepo{items: []models.AcademyDetail{{Academy: models.Academy{ID: "a1"}, Batches: []models.Batch{}}}}
	cacheRepo := &stubCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPublicService(repo, cacheSvc, time.Minute, nil)

	academies, err := svc.ListAcademies(context.Background())
	require.NoError(t, err)
	assert.Len(t, academies, 1)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cacheRepo.sets)
}

func TestPublicServiceListAcademiesServesFromCache(t *testing.T) {
	repo := &stubPublicRepo{err: errors.New("db must not be hit")}
	cacheRepo := &stubCacheRepo{
		get: func(ctx context.Context, key string, dest interface{}) error {
			out := dest.(*[]models.AcademyDetail)
			*out = []models.AcademyDetail{{Academy: models.Academy{ID: "cached"}}}
			return nil
		},
	}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewPublicService(repo, cacheSvc, time.Minute, nil)

	academies, err := svc.ListAcademies(context.Background())
	require.NoError(t, err)
	require.Len(t, academies, 1)
	assert.Equal(t, "cached", academies[0].ID)
	assert.Equal(t, 0, repo.calls)
}

func TestPublicServiceListAcademiesWithoutCache(t *testing.T) {
	repo := &stubPublicRepo{items: []models.AcademyDetail{}}
	svc := NewPublicService(repo, nil, time.Minute, nil)

	_, err := svc.ListAcademies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestGroupBatchesBySport(t *testing.T) {
	batches := []models.Batch{
		{ID: "b1", Sport: "Tennis"},
		{ID: "b2", Sport: "Cricket"},
		{ID: "b3", Sport: "Cricket"},
	}

	groups := GroupBatchesBySport(batches)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cricket", groups[0].Sport)
	assert.Len(t, groups[0].Batches, 2)
	assert.Equal(t, "Tennis", groups[1].Sport)
	assert.Equal(t, "b2", groups[0].Batches[0].ID)
}

func TestGroupBatchesBySportEmpty(t *testing.T) {
	groups := GroupBatchesBySport(nil)
	assert.Empty(t, groups)
}
