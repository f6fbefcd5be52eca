// Package dispatch hands decision work from the webhook handler to
// background workers, so the interaction acknowledgment is never blocked on
// ledger or channel I/O. The queue is in-memory: decisions carry all their
// state with them, so there is nothing to recover from a crash, but an
// orderly shutdown drains every job that was already accepted.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chris/splitwise-sync/pkg/approval"
)

// ErrQueueClosed is returned when a job is enqueued after shutdown began.
var ErrQueueClosed = errors.New("dispatch queue is closed")

// Handler processes a single decision.
type Handler interface {
	Process(ctx context.Context, d approval.Decision) error
}

// Dispatcher accepts decision jobs for asynchronous processing.
type Dispatcher interface {
	Enqueue(ctx context.Context, d approval.Decision) error
}

type job struct {
	id       string
	decision approval.Decision
}

// Queue is a channel-backed Dispatcher with a fixed worker pool.
type Queue struct {
	jobs    chan job
	handler Handler
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewQueue creates a Queue buffering up to bufferSize jobs and starts
// workers goroutines processing them. The worker context is detached from
// any single request; jobs accepted before Close are always run.
func NewQueue(bufferSize, workers int, handler Handler, log zerolog.Logger) *Queue {
	q := &Queue{
		jobs:    make(chan job, bufferSize),
		handler: handler,
		log:     log,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Make sure we conform to the interface
var _ Dispatcher = (*Queue)(nil)

// Enqueue schedules a decision for processing. It blocks only while the
// buffer is full, and respects ctx cancellation while waiting.
func (q *Queue) Enqueue(ctx context.Context, d approval.Decision) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job{id: uuid.New().String(), decision: d}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting new jobs and blocks until every accepted job has
// been processed.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for j := range q.jobs {
		log := q.log.With().Str("job_id", j.id).Logger()
		log.Debug().Str("transaction_id", j.decision.Token.TransactionId).Msg("processing decision job")

		if err := q.handler.Process(context.Background(), j.decision); err != nil {
			log.Error().Err(err).Msg("decision job failed")
		}
	}
}
