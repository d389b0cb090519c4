package syslog

import (
	"context"
	"log/slog"
	"time"
)

// RetentionWorker periodically trims the system_logs table to its most
// recent entries.
type RetentionWorker struct {
	sink     *Sink
	keep     int
	interval time.Duration
	logger   *slog.Logger
}

// NewRetentionWorker creates a worker that keeps the newest keep rows.
// The worker runs hourly.
func NewRetentionWorker(sink *Sink, keep int, logger *slog.Logger) *RetentionWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionWorker{
		sink:     sink,
		keep:     keep,
		interval: time.Hour,
		logger:   logger,
	}
}

// Run starts the retention loop. It runs until the context is cancelled.
func (w *RetentionWorker) Run(ctx context.Context) {
	if w.sink == nil || w.keep <= 0 {
		w.logger.Info("log retention worker disabled", "keep", w.keep)
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("log retention worker started", "keep", w.keep, "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("log retention worker stopped")
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

// cleanup performs a single retention pass.
func (w *RetentionWorker) cleanup(ctx context.Context) {
	deleted, err := w.sink.store.TrimLogs(ctx, w.keep)
	if err != nil {
		w.logger.Error("log retention cleanup failed", "error", err)
	} else if deleted > 0 {
		w.logger.Info("log retention cleanup completed", "deleted", deleted, "keep", w.keep)
	}
}
