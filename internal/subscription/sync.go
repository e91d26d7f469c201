package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashiroii/tiyin-server/internal/config"
	"github.com/hashiroii/tiyin-server/internal/logger"
	"github.com/hashiroii/tiyin-server/internal/metrics"
)

// SyncJob carries one user's full snapshot to the remote mirror.
type SyncJob struct {
	UserID string
	Subs   []Subscription
}

// Syncer mirrors session snapshots to Firestore asynchronously. Local state
// is the source of truth; a failed or dropped job never surfaces to the
// caller, the next snapshot simply overwrites the stale mirror.
type Syncer struct {
	store      *Store
	logger     *logger.Logger
	jobChan    chan SyncJob
	workerPool sync.WaitGroup
	shutdown   chan struct{}
	closed     atomic.Bool
}

// NewSyncer starts the sync worker pool.
func NewSyncer(store *Store, logger *logger.Logger) *Syncer {
	s := &Syncer{
		store:    store,
		logger:   logger,
		jobChan:  make(chan SyncJob, config.AppConfig.SyncBufferSize), // Buffered channel to queue snapshots waiting for workers
		shutdown: make(chan struct{}),
	}

	for i := 0; i < config.AppConfig.SyncWorkerPoolSize; i++ {
		s.workerPool.Add(1)
		go s.worker()
	}

	logger.Info("subscription sync service started",
		slog.Int("worker_pool_size", config.AppConfig.SyncWorkerPoolSize),
		slog.Int("buffer_size", config.AppConfig.SyncBufferSize),
	)

	return s
}

// worker processes sync jobs from the channel
func (s *Syncer) worker() {
	defer s.workerPool.Done()

	for {
		select {
		case job := <-s.jobChan:
			s.handleJob(job)
		case <-s.shutdown:
			// Drain remaining jobs
			for {
				select {
				case job := <-s.jobChan:
					s.handleJob(job)
				default:
					return
				}
			}
		}
	}
}

// handleJob pushes one snapshot to the remote store
func (s *Syncer) handleJob(job SyncJob) {
	// Timeout context prevents workers from hanging on slow Firestore writes
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.AppConfig.SyncTimeoutSeconds)*time.Second)
	defer cancel()

	log := s.logger.WithContext(logger.WithUserID(ctx, job.UserID))

	if err := s.store.Sync(ctx, job.UserID, job.Subs); err != nil {
		metrics.SyncFailures.Inc()
		log.Error("failed to sync subscriptions to firestore",
			slog.Int("count", len(job.Subs)),
			slog.String("error", err.Error()))
		return
	}

	log.Debug("subscriptions synced",
		slog.Int("count", len(job.Subs)))
}

// EnqueueSync queues a snapshot for async mirroring. The job is dropped when
// the queue is full.
func (s *Syncer) EnqueueSync(ctx context.Context, userID string, subs []Subscription) error {
	if s.closed.Load() {
		return fmt.Errorf("sync service is shutting down")
	}

	job := SyncJob{UserID: userID, Subs: subs}

	select {
	case s.jobChan <- job:
		metrics.SyncJobsEnqueued.Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		metrics.SyncJobsDropped.Inc()
		s.logger.Warn("sync queue is full, dropping snapshot",
			slog.String("user_id", userID),
			slog.Int("count", len(subs)))
		return fmt.Errorf("sync queue is full")
	}
}

// Shutdown drains the queue and stops the workers.
func (s *Syncer) Shutdown() {
	s.logger.Info("shutting down subscription sync service")
	s.closed.Store(true)
	close(s.shutdown)
	s.workerPool.Wait()
	close(s.jobChan)
	s.logger.Info("subscription sync service shutdown complete")
}
