package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"propscope/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler consumes one generated batch. The context is the dispatcher's;
// handlers must stop waiting on downstream resources once it is cancelled.
type Handler func(ctx context.Context, batch []*models.Property) error

// BatchQueue buffers freshly generated property batches between the API
// layer and the persistence workers. Producers never block: a full buffer
// surfaces ErrQueueFull immediately so the request can fail fast instead of
// stalling. Close delivers every batch accepted before it was called, so a
// clean shutdown does not lose accepted work.
type BatchQueue struct {
	items  chan []*models.Property
	logger *logrus.Logger

	mu       sync.Mutex
	handlers []Handler
	closed   bool
	started  bool

	stopped chan struct{}
}

// NewBatchQueue creates a queue holding up to bufferSize pending batches.
func NewBatchQueue(bufferSize int, logger *logrus.Logger) *BatchQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &BatchQueue{
		items:   make(chan []*models.Property, bufferSize),
		logger:  logger,
		stopped: make(chan struct{}),
	}
}

// Push hands a batch to the dispatcher without blocking. The closed check
// and the send happen under the same lock that Close takes, so a push can
// never race a shutdown onto a closed channel.
func (q *BatchQueue) Push(batch []*models.Property) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Accepted batch")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler that will be called for each accepted batch.
func (q *BatchQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches the dispatcher. Cancelling ctx stops it immediately,
// abandoning any still-buffered batches; use Close for a draining shutdown.
func (q *BatchQueue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started || q.closed {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	go q.dispatch(ctx)
}

func (q *BatchQueue) dispatch(ctx context.Context) {
	defer close(q.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-q.items:
			if !ok {
				return
			}
			q.deliver(ctx, batch)
		}
	}
}

func (q *BatchQueue) deliver(ctx context.Context, batch []*models.Property) {
	q.mu.Lock()
	handlers := make([]Handler, len(q.handlers))
	copy(handlers, q.handlers)
	q.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, batch); err != nil {
			q.logger.WithError(err).WithField("batch_size", len(batch)).Error("Batch handler failed")
		}
	}
}

// Close rejects further pushes, waits for already-accepted batches to be
// delivered, then stops the dispatcher. Closing twice is a no-op.
func (q *BatchQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	started := q.started
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the current number of pending batches.
func (q *BatchQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *BatchQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
