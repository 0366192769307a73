package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/repositories"
)

// FlashJanitor periodically drops one-shot messages nobody came back for.
type FlashJanitor interface {
	Start(ctx context.Context)
	Stop()
}

type flashJanitor struct {
	flashRepo repositories.FlashRepository
	interval  time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
	stopChan  chan struct{}
	stopOnce  sync.Once
}

func NewFlashJanitor(flashRepo repositories.FlashRepository, interval time.Duration, logger *zap.Logger) FlashJanitor {
	return &flashJanitor{
		flashRepo: flashRepo,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start implements FlashJanitor.
func (j *flashJanitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go j.sweep(ctx)
}

// Stop implements FlashJanitor.
func (j *flashJanitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopChan) })
	j.wg.Wait()
}

func (j *flashJanitor) sweep(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := j.flashRepo.DeleteExpired(ctx)
			if err != nil {
				j.logger.Warn("failed to sweep expired messages", zap.Error(err))
				continue
			}
			if removed > 0 {
				j.logger.Debug("swept expired messages", zap.Int64("removed", removed))
			}
		}
	}
}
