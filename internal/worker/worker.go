package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pool runs background tasks that must stop with the server
type Pool struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewPool creates a new worker pool
func NewPool(logger *slog.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Submit adds a task to the pool and tracks it
func (p *Pool) Submit(task func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		task(p.ctx)
	}()
}

// SubmitWithTimeout adds a task with a timeout to the pool
func (p *Pool) SubmitWithTimeout(timeout time.Duration, task func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(p.ctx, timeout)
		defer cancel()
		task(ctx)
	}()
}

// SubmitPeriodic runs task every interval until the pool shuts down. Each
// run gets its own timeout of one interval. Errors are logged and the
// schedule continues.
func (p *Pool) SubmitPeriodic(name string, interval time.Duration, task func(ctx context.Context) error) {
	if interval <= 0 {
		p.logger.Warn("⚠️ [Worker] Periodic task disabled", "task", name, "interval", interval)
		return
	}

	p.Submit(func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		p.logger.Info("⏱️ [Worker] Periodic task scheduled", "task", name, "interval", interval)
		for {
			select {
			case <-ctx.Done():
				p.logger.Debug("🛑 [Worker] Periodic task stopped", "task", name)
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, interval)
				if err := task(runCtx); err != nil {
					p.logger.Error("❌ [Worker] Periodic task failed", "task", name, "error", err)
				}
				cancel()
			}
		}
	})
}

// Context returns the pool's context
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Shutdown signals all workers to stop and waits for completion. It reports
// whether every task finished before the timeout.
func (p *Pool) Shutdown(timeout time.Duration) bool {
	p.logger.Info("🛑 [Worker] Initiating graceful shutdown...")

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("✅ [Worker] All background tasks completed")
		return true
	case <-time.After(timeout):
		p.logger.Warn("⚠️ [Worker] Shutdown timeout exceeded, some tasks may not have completed",
			"timeout", timeout,
		)
		return false
	}
}
