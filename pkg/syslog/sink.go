// Package syslog persists operational log entries to the system_logs
// table. Writes are best-effort: a failed write is reported to the
// process logger and dropped, so it can never abort the business
// operation that triggered it.
package syslog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/store"
)

// Sink writes system log entries through the local store.
type Sink struct {
	store  *store.LocalStore
	logger *slog.Logger
}

// NewSink creates a sink over the local store.
func NewSink(st *store.LocalStore, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{store: st, logger: logger}
}

// Log writes one entry. Data, when non-nil, is serialized to JSON and
// stored alongside the message. Log never returns an error.
func (s *Sink) Log(ctx context.Context, level, message string, data map[string]any) {
	entry := &model.SystemLog{
		Level:   level,
		Message: message,
	}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			s.logger.Error("failed to serialize system log payload", "error", err)
		} else {
			entry.Data = string(b)
		}
	}
	if _, err := s.store.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to write system log entry", "level", level, "message", message, "error", err)
	}
}

// Info writes an info-level entry.
func (s *Sink) Info(ctx context.Context, message string, data map[string]any) {
	s.Log(ctx, "INFO", message, data)
}

// Error writes an error-level entry.
func (s *Sink) Error(ctx context.Context, message string, data map[string]any) {
	s.Log(ctx, "ERROR", message, data)
}
