package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/sports-cms-api/pkg/config"
	"github.com/fieldhouse/sports-cms-api/pkg/objectstore"
)

type stubRefLister struct {
	urls []string
	err  error
}

func (s *stubRefLister) ListReferencedURLs(ctx context.Context) ([]string, error) {
	return s.urls, s.err
}

type stubCleanupStore struct {
	mu      sync.Mutex
	objects []objectstore.ObjectInfo
	deleted []string
	baseURL string
}

func (s *stubCleanupStore) List(ctx context.Context, prefix string) ([]objectstore.ObjectInfo, error) {
	return s.objects, nil
}

func (s *stubCleanupStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubCleanupStore) URLFor(key string) string {
	return s.baseURL + "/" + key
}

func (s *stubCleanupStore) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func cleanupConfig() config.CleanupConfig {
	return config.CleanupConfig{
		Enabled:     true,
		Interval:    time.Hour,
		GracePeriod: time.Hour,
		Workers:     1,
		MaxRetries:  1,
	}
}

func TestCleanupServiceDeletesOnlyUnreferencedOldObjects(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now()

	store := &stubCleanupStore{
		baseURL: "https://cdn.example.com",
		objects: []objectstore.ObjectInfo{
			{Key: "uploads/orphan.jpg", LastModified: old},
			{Key: "uploads/referenced.jpg", LastModified: old},
			{Key: "uploads/fresh.jpg", LastModified: recent},
		},
	}
	refs := &stubRefLister{urls: []string{"https://cdn.example.com/uploads/referenced.jpg"}}

	svc := NewCleanupService(refs, store, cleanupConfig(), nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	queued, err := svc.ReconcileOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, queued)

	assert.Eventually(t, func() bool {
		deleted := store.deletedKeys()
		return len(deleted) == 1 && deleted[0] == "uploads/orphan.jpg"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCleanupServiceSkipsEverythingWhenAllReferenced(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	store := &stubCleanupStore{
		baseURL: "https://cdn.example.com",
		objects: []objectstore.ObjectInfo{
			{Key: "uploads/a.jpg", LastModified: old},
			{Key: "uploads/b.jpg", LastModified: old},
		},
	}
	refs := &stubRefLister{urls: []string{
		"https://cdn.example.com/uploads/a.jpg",
		"https://cdn.example.com/uploads/b.jpg",
	}}

	svc := NewCleanupService(refs, store, cleanupConfig(), nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	queued, err := svc.ReconcileOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, queued)
	assert.Empty(t, store.deletedKeys())
}
