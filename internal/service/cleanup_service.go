package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fieldhouse/sports-cms-api/pkg/config"
	"github.com/fieldhouse/sports-cms-api/pkg/jobs"
	"github.com/fieldhouse/sports-cms-api/pkg/objectstore"
)

type imageRefLister interface {
	ListReferencedURLs(ctx context.Context) ([]string, error)
}

// cleanupStore is the slice of the storage gateway the cleanup worker needs.
type cleanupStore interface {
	List(ctx context.Context, prefix string) ([]objectstore.ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	URLFor(key string) string
}

// CleanupService periodically reconciles bucket contents against the image
// URLs referenced in the database and deletes the orphans. Objects younger
// than the grace period are skipped so in-flight uploads survive.
type CleanupService struct {
	refs     imageRefLister
	store    cleanupStore
	queue    *jobs.Queue
	metrics  *MetricsService
	interval time.Duration
	grace    time.Duration
	logger   *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCleanupService constructs CleanupService with its delete queue.
func NewCleanupService(refs imageRefLister, store cleanupStore, cfg config.CleanupConfig, metrics *MetricsService, logger *zap.Logger) *CleanupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CleanupService{
		refs:     refs,
		store:    store,
		metrics:  metrics,
		interval: cfg.Interval,
		grace:    cfg.GracePeriod,
		logger:   logger,
	}
	s.queue = jobs.NewQueue("image-cleanup", s.deleteObject, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the queue workers and the reconciliation ticker.
func (s *CleanupService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.queue.Start(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ReconcileOnce(ctx); err != nil {
					s.logger.Warn("image cleanup run failed", zap.Error(err))
				}
			}
		}
	}()
	s.logger.Info("image cleanup worker started", zap.Duration("interval", s.interval), zap.Duration("grace_period", s.grace))
}

// Stop halts the ticker and drains the queue workers.
func (s *CleanupService) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	s.queue.Stop()
}

// ReconcileOnce runs a single reconciliation pass and returns the number of
// orphaned objects queued for deletion.
func (s *CleanupService) ReconcileOnce(ctx context.Context) (int, error) {
	referenced, err := s.refs.ListReferencedURLs(ctx)
	if err != nil {
		s.metrics.RecordCleanupRun(false)
		return 0, fmt.Errorf("list referenced urls: %w", err)
	}
	known := make(map[string]struct{}, len(referenced))
	for _, url := range referenced {
		known[url] = struct{}{}
	}

	objects, err := s.store.List(ctx, "")
	if err != nil {
		s.metrics.RecordCleanupRun(false)
		return 0, fmt.Errorf("list bucket objects: %w", err)
	}

	cutoff := time.Now().Add(-s.grace)
	queued := 0
	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}
		if _, ok := known[s.store.URLFor(obj.Key)]; ok {
			continue
		}
		if err := s.queue.Enqueue(obj.Key); err != nil {
			s.logger.Warn("failed to queue orphan delete", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		queued++
	}

	s.metrics.RecordCleanupRun(true)
	if queued > 0 {
		s.logger.Info("queued orphaned images for deletion", zap.Int("count", queued))
	}
	return queued, nil
}

func (s *CleanupService) deleteObject(ctx context.Context, job jobs.Job) error {
	if err := s.store.Delete(ctx, job.Key); err != nil {
		return fmt.Errorf("delete orphan %s: %w", job.Key, err)
	}
	s.metrics.RecordOrphanDeleted()
	s.logger.Info("deleted orphaned image", zap.String("key", job.Key))
	return nil
}
