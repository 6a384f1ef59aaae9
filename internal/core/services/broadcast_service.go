package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

type broadcastService struct {
	transport ports.ChatTransport
	directory ports.UserDirectory
	reporter  ports.BroadcastReporter
	logger    *zap.Logger
	pace      time.Duration
	workers   int64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewBroadcastService builds a single-flight fan-out engine. Sends are paced
// at one dispatch per pace interval with at most workers in flight, so one
// slow recipient cannot stall the whole run.
func NewBroadcastService(transport ports.ChatTransport, directory ports.UserDirectory, reporter ports.BroadcastReporter, pace time.Duration, workers int64, logger *zap.Logger) ports.BroadcastService {
	if pace <= 0 {
		pace = 100 * time.Millisecond
	}
	if workers <= 0 {
		workers = 1
	}
	return &broadcastService{
		transport: transport,
		directory: directory,
		reporter:  reporter,
		logger:    logger,
		pace:      pace,
		workers:   workers,
	}
}

func (s *broadcastService) Start(ctx context.Context, payload ports.MessageRef, initiatorID int64) (int, error) {
	recipients := s.directory.Snapshot(ctx)
	if len(recipients) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return 0, domain.ErrBroadcastBusy
	}
	runCtx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	// Add before releasing the lock so a racing Stop cannot Wait on a
	// zero counter while this run is still untracked.
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(runCtx, payload, initiatorID, recipients)
	return len(recipients), nil
}

func (s *broadcastService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Stop cancels any in-flight run and waits for its bookkeeping to close.
func (s *broadcastService) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *broadcastService) run(ctx context.Context, payload ports.MessageRef, initiatorID int64, recipients []int64) {
	defer s.wg.Done()

	runID := uuid.NewString()
	start := time.Now()

	s.logger.Info("broadcast started",
		zap.String("run_id", runID),
		zap.Int64("initiator_id", initiatorID),
		zap.Int("recipients", len(recipients)))

	ticker := time.NewTicker(s.pace)
	defer ticker.Stop()
	sem := semaphore.NewWeighted(s.workers)

	var mu sync.Mutex
	var success, failure int
	dispatched := 0
	cancelled := false

dispatch:
	for i, userID := range recipients {
		if i > 0 {
			select {
			case <-ctx.Done():
				cancelled = true
				break dispatch
			case <-ticker.C:
			}
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			cancelled = true
			break dispatch
		}
		dispatched++

		go func(userID int64) {
			defer sem.Release(1)
			if err := s.transport.CopyMessageToUser(ctx, userID, payload); err != nil {
				s.logger.Warn("broadcast delivery failed",
					zap.String("run_id", runID),
					zap.Int64("user_id", userID),
					zap.Error(err))
				mu.Lock()
				failure++
				mu.Unlock()
				return
			}
			mu.Lock()
			success++
			mu.Unlock()
		}(userID)
	}

	// Drain in-flight sends; a fresh context so cancellation cannot skip the
	// final accounting.
	_ = sem.Acquire(context.Background(), s.workers)

	mu.Lock()
	report := domain.BroadcastReport{
		RunID:     runID,
		Success:   success,
		Failure:   failure + len(recipients) - dispatched,
		Elapsed:   time.Since(start),
		Cancelled: cancelled,
	}
	mu.Unlock()

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()

	s.logger.Info("broadcast finished",
		zap.String("run_id", runID),
		zap.Int("success", report.Success),
		zap.Int("failure", report.Failure),
		zap.Bool("cancelled", report.Cancelled),
		zap.Duration("elapsed", report.Elapsed))

	if s.reporter != nil {
		s.reporter(context.Background(), initiatorID, report)
	}
}
