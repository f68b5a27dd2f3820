package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu       sync.Mutex
	handled  []string
	failures map[string]int
}

func (h *recordingHandler) handle(ctx context.Context, job Job) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if remaining := h.failures[job.Key]; remaining > 0 {
		h.failures[job.Key] = remaining - 1
		return errors.New("storage unavailable")
	}
	h.handled = append(h.handled, job.Key)
	return nil
}

func (h *recordingHandler) handledKeys() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.handled...)
}

func TestQueueProcessesEnqueuedKeys(t *testing.T) {
	handler := &recordingHandler{}
	q := NewQueue("test", handler.handle, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("uploads/a.jpg"))
	require.NoError(t, q.Enqueue("uploads/b.jpg"))

	assert.Eventually(t, func() bool {
		return len(handler.handledKeys()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"uploads/a.jpg", "uploads/b.jpg"}, handler.handledKeys())
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	handler := &recordingHandler{failures: map[string]int{"uploads/flaky.jpg": 2}}
	q := NewQueue("test", handler.handle, QueueConfig{
		Workers:    1,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("uploads/flaky.jpg"))

	assert.Eventually(t, func() bool {
		keys := handler.handledKeys()
		return len(keys) == 1 && keys[0] == "uploads/flaky.jpg"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueDropsJobsBeyondRetryBudget(t *testing.T) {
	handler := &recordingHandler{failures: map[string]int{"uploads/broken.jpg": 10}}
	q := NewQueue("test", handler.handle, QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue("uploads/broken.jpg"))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, handler.handledKeys())
}

func TestQueueRejectsEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})

	err := q.Enqueue("uploads/a.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}
