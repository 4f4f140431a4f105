package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PromotionExpirer deactivates promotions whose window has ended.
// PromotionService satisfies it.
type PromotionExpirer interface {
	ExpireOverduePromotions(ctx context.Context) (int64, error)
}

// PromotionExpiryConfig holds configuration for the promotion expiry scheduler
type PromotionExpiryConfig struct {
	Enabled bool
	// Interval between sweeps
	Interval time.Duration
	// Timeout bounds a single sweep
	Timeout time.Duration
}

// PromotionExpiryScheduler periodically deactivates expired promotions so
// listings and overlap checks stop seeing them
type PromotionExpiryScheduler struct {
	expirer   PromotionExpirer
	logger    *zap.Logger
	config    PromotionExpiryConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPromotionExpiryScheduler creates a new scheduler
func NewPromotionExpiryScheduler(expirer PromotionExpirer, logger *zap.Logger, config PromotionExpiryConfig) *PromotionExpiryScheduler {
	return &PromotionExpiryScheduler{
		expirer: expirer,
		logger:  logger.Named("promotion_expiry"),
		config:  config,
	}
}

// Start launches the sweep loop. A disabled scheduler logs and returns nil.
func (s *PromotionExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.config.Enabled {
		s.logger.Info("Promotion expiry scheduler is disabled")
		return nil
	}
	if s.config.Interval <= 0 || s.config.Timeout <= 0 {
		return fmt.Errorf("%w: interval and timeout must be positive", ErrInvalidConfig)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.isRunning = true

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Promotion expiry scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("timeout", s.config.Timeout),
	)
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep, bounded by ctx
func (s *PromotionExpiryScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Promotion expiry scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Promotion expiry scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *PromotionExpiryScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one expiry pass; failures are logged and retried on the next tick
func (s *PromotionExpiryScheduler) sweep(ctx context.Context) int64 {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	expired, err := s.expirer.ExpireOverduePromotions(sweepCtx)
	if err != nil {
		s.logger.Error("Promotion expiry sweep failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return 0
	}

	if expired > 0 {
		s.logger.Info("Expired promotions deactivated",
			zap.Int64("count", expired),
			zap.Duration("duration", time.Since(start)),
		)
	}
	return expired
}

// RunNow performs a sweep synchronously on a running scheduler
func (s *PromotionExpiryScheduler) RunNow(ctx context.Context) (int64, error) {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return 0, ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	return s.sweep(ctx), nil
}

// IsRunning returns whether the scheduler is running
func (s *PromotionExpiryScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
