package processor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"propscope/config"
	"propscope/internal/database"
	"propscope/internal/models"
	"propscope/internal/queue"
)

var errStopping = errors.New("processor is stopping")

// TransactionRunner is the slice of *gorm.DB the processor needs; it exists
// so tests can substitute a mock.
type TransactionRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor drains the queue and persists each generated batch exactly
// once, spreading the work over a pool of workers.
type BatchProcessor struct {
	db        TransactionRunner
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.BatchQueue
	work      chan []*models.Property
	waitGroup sync.WaitGroup
	stop      chan struct{}
}

// NewBatchProcessor creates a new batch processor instance.
func NewBatchProcessor(db TransactionRunner, queue *queue.BatchQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		work:   make(chan []*models.Property, config.BatchProcessing.MaxBatchSize),
		stop:   make(chan struct{}),
	}
}

// Start subscribes to the queue and launches the configured number of
// persistence workers.
func (p *BatchProcessor) Start() {
	// The handoff must never block past shutdown: once Stop runs, delivery
	// returns an error instead of wedging the queue's dispatcher.
	p.queue.Subscribe(func(ctx context.Context, batch []*models.Property) error {
		select {
		case p.work <- batch:
			return nil
		case <-p.stop:
			return errStopping
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	for i := 0; i < p.config.BatchProcessing.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go p.worker()
	}
}

// Stop signals the workers and waits for them to finish; batches already
// handed off are persisted before the workers exit, without waiting out
// retry backoff.
func (p *BatchProcessor) Stop() {
	close(p.stop)
	p.waitGroup.Wait()
}

func (p *BatchProcessor) worker() {
	defer p.waitGroup.Done()

	for {
		select {
		case batch := <-p.work:
			p.persist(batch)
		case <-p.stop:
			p.drain()
			return
		}
	}
}

// drain empties the work channel after the stop signal so handed-off
// batches are not lost on shutdown.
func (p *BatchProcessor) drain() {
	for {
		select {
		case batch := <-p.work:
			p.persist(batch)
		default:
			return
		}
	}
}

func (p *BatchProcessor) persist(batch []*models.Property) {
	if err := p.processBatch(batch); err != nil {
		p.logger.WithError(err).Error("Dropped batch after exhausting retries")
	}
}

// processBatch persists one batch inside a transaction, retrying failed
// attempts up to the configured limit.
func (p *BatchProcessor) processBatch(batch []*models.Property) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchProcessing.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch persistence, attempt %d of %d", attempt, p.config.BatchProcessing.MaxRetries)
			select {
			case <-time.After(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second):
			case <-p.stop:
				return fmt.Errorf("aborting retries during shutdown: %w", err)
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.InsertProperties(tx, batch); err != nil {
				return fmt.Errorf("failed to insert property batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully persisted batch of %d properties", len(batch))
			return nil
		}

		p.logger.Errorf("Batch persistence failed: %v", err)
	}

	return fmt.Errorf("failed to persist batch after %d attempts: %w", p.config.BatchProcessing.MaxRetries, err)
}
