package dispatch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/splitwise-sync/pkg/approval"
	"github.com/chris/splitwise-sync/pkg/dispatch"
	"github.com/chris/splitwise-sync/pkg/token"
)

// recordingHandler counts processed decisions.
type recordingHandler struct {
	mu        sync.Mutex
	processed []approval.Decision
	err       error
}

func (h *recordingHandler) Process(ctx context.Context, d approval.Decision) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.processed = append(h.processed, d)
	return h.err
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.processed)
}

func job(id string) approval.Decision {
	return approval.Decision{Token: token.Token{Action: token.ActionAccept, TransactionId: id}}
}

func TestQueue_ProcessesAllEnqueuedJobs(t *testing.T) {
	handler := &recordingHandler{}
	queue := dispatch.NewQueue(8, 2, handler, zerolog.Nop())

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, queue.Enqueue(context.Background(), job(id)))
	}

	// Close blocks until every accepted job has been handled.
	queue.Close()
	assert.Equal(t, 5, handler.count())
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	handler := &recordingHandler{}
	queue := dispatch.NewQueue(1, 1, handler, zerolog.Nop())
	queue.Close()

	err := queue.Enqueue(context.Background(), job("late"))
	assert.ErrorIs(t, err, dispatch.ErrQueueClosed)
	assert.Equal(t, 0, handler.count())
}

func TestQueue_HandlerErrorsDoNotStopWorkers(t *testing.T) {
	handler := &recordingHandler{err: assert.AnError}
	queue := dispatch.NewQueue(4, 1, handler, zerolog.Nop())

	require.NoError(t, queue.Enqueue(context.Background(), job("x")))
	require.NoError(t, queue.Enqueue(context.Background(), job("y")))

	queue.Close()
	assert.Equal(t, 2, handler.count())
}

func TestQueue_EnqueueHonorsContext(t *testing.T) {
	block := make(chan struct{})
	handler := &blockingHandler{release: block}
	queue := dispatch.NewQueue(1, 1, handler, zerolog.Nop())

	// First job occupies the worker, second fills the buffer.
	require.NoError(t, queue.Enqueue(context.Background(), job("busy")))
	require.NoError(t, queue.Enqueue(context.Background(), job("buffered")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := queue.Enqueue(ctx, job("blocked"))
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
	queue.Close()
}

type blockingHandler struct {
	release chan struct{}
}

func (h *blockingHandler) Process(ctx context.Context, d approval.Decision) error {
	<-h.release
	return nil
}
