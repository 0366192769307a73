package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/models"
)

var ErrPoolStopped = errors.New("analysis pool stopped")

const poolQueueSize = 100

// AnalysisPool is an Analyzer that runs at most a fixed number of analyses
// against the wrapped Analyzer at once. Callers still block for their result.
type AnalysisPool interface {
	Analyzer
	Start()
	Stop()
}

type analysisOutcome struct {
	result *models.AnalysisResult
	err    error
}

type analysisJob struct {
	ctx   context.Context
	url   string
	label string
	done  chan analysisOutcome
}

type analysisPool struct {
	analyzer    Analyzer
	logger      *zap.Logger
	jobQueue    chan analysisJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}

	mu      sync.RWMutex
	stopped bool
}

func NewAnalysisPool(analyzer Analyzer, concurrency int, logger *zap.Logger) AnalysisPool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &analysisPool{
		analyzer:    analyzer,
		logger:      logger,
		jobQueue:    make(chan analysisJob, poolQueueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements AnalysisPool.
func (p *analysisPool) Start() {
	p.logger.Info("starting analysis pool", zap.Int("workers", p.concurrency))

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.processJobs(i + 1)
	}
}

// Stop implements AnalysisPool. Jobs still queued fail with ErrPoolStopped.
func (p *analysisPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()

	for {
		select {
		case job := <-p.jobQueue:
			job.done <- analysisOutcome{err: ErrPoolStopped}
		default:
			p.logger.Info("analysis pool stopped")
			return
		}
	}
}

// AnalyzeFromURL implements Analyzer.
func (p *analysisPool) AnalyzeFromURL(ctx context.Context, url, label string) (*models.AnalysisResult, error) {
	job := analysisJob{
		ctx:   ctx,
		url:   url,
		label: label,
		done:  make(chan analysisOutcome, 1),
	}

	if err := p.enqueue(ctx, job); err != nil {
		return nil, err
	}

	select {
	case out := <-job.done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *analysisPool) enqueue(ctx context.Context, job analysisJob) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *analysisPool) processJobs(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			p.logger.Debug("analysis worker stopped", zap.Int("worker", workerID))
			return
		case job := <-p.jobQueue:
			job.done <- p.run(workerID, job)
		}
	}
}

func (p *analysisPool) run(workerID int, job analysisJob) (out analysisOutcome) {
	if err := job.ctx.Err(); err != nil {
		return analysisOutcome{err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("analyzer panicked", zap.Int("worker", workerID), zap.Any("panic", r))
			out = analysisOutcome{err: fmt.Errorf("analysis failed: %v", r)}
		}
	}()

	p.logger.Debug("analysis started", zap.Int("worker", workerID), zap.String("url", job.url))
	result, err := p.analyzer.AnalyzeFromURL(job.ctx, job.url, job.label)
	return analysisOutcome{result: result, err: err}
}
