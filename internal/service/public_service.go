package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/internal/models"
	appErrors "github.com/fieldhouse/sports-cms-api/pkg/errors"
)

type publicAcademyRepository interface {
	ListAllWithBatches(ctx context.Context) ([]models.AcademyDetail, error)
}

// SportGroup is one sport bucket of an academy's batches, used by the public
// academy pages.
type SportGroup struct {
	Sport   string         `json:"sport"`
	Batches []models.Batch `json:"batches"`
}

// PublicService serves unauthenticated read-only listing endpoints.
type PublicService struct {
	repo     publicAcademyRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPublicService constructs PublicService.
func NewPublicService(repo publicAcademyRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *PublicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ListAcademies returns every academy with its batches, no pagination. The
// payload is cached; any admin write invalidates the cached copy.
func (s *PublicService) ListAcademies(ctx context.Context) ([]models.AcademyDetail, error) {
	var cached []models.AcademyDetail
	if hit, err := s.cache.Get(ctx, cacheKeyPublicAcademies, &cached); err == nil && hit {
		return cached, nil
	}

	academies, err := s.repo.ListAllWithBatches(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academies")
	}

	if err := s.cache.Set(ctx, cacheKeyPublicAcademies, academies, s.cacheTTL); err != nil {
		s.logger.Warn("public listing cache write failed", zap.Error(err))
	}
	return academies, nil
}

// GroupBatchesBySport buckets batches by sport, preserving the start-date
// ordering inside each bucket. Buckets come out sorted by sport name.
func GroupBatchesBySport(batches []models.Batch) []SportGroup {
	buckets := make(map[string][]models.Batch)
	for _, batch := range batches {
		buckets[batch.Sport] = append(buckets[batch.Sport], batch)
	}

	sports := make([]string, 0, len(buckets))
	for sport := range buckets {
		sports = append(sports, sport)
	}
	sort.Strings(sports)

	groups := make([]SportGroup, 0, len(sports))
	for _, sport := range sports {
		groups = append(groups, SportGroup{Sport: sport, Batches: buckets[sport]})
	}
	return groups
}
