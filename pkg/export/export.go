// Package export renders full entity collections into downloadable
// files. The preferred format is a styled spreadsheet workbook; when the
// workbook renderer is unavailable the exporter degrades to CSV with an
// identical column set and order.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/store"
)

// File is a completed export: the whole buffer is built in memory
// before it is returned, never streamed partially.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportError wraps a read or render failure during an export.
type ExportError struct {
	Kind model.Kind
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Option configures an Exporter.
type Option func(*Exporter)

// WithRendererProbe overrides the workbook capability probe. A probe
// error selects the CSV fallback for that export call.
func WithRendererProbe(probe func() (Renderer, error)) Option {
	return func(e *Exporter) {
		e.probe = probe
	}
}

// Exporter reads whole collections from the local store and renders
// them. Renderer selection happens once per Export call, not per row.
type Exporter struct {
	store  *store.LocalStore
	logger *slog.Logger
	probe  func() (Renderer, error)
}

// NewExporter creates an exporter over the local store.
func NewExporter(st *store.LocalStore, logger *slog.Logger, opts ...Option) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Exporter{
		store:  st,
		logger: logger,
		probe:  workbookProbe,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// workbookProbe is the default capability probe.
func workbookProbe() (Renderer, error) {
	return workbookRenderer{}, nil
}

// Export renders every stored row of the kind, newest first, and
// returns the completed file. A probe failure degrades to CSV and is
// logged as a warning; any read or render failure aborts the export.
func (e *Exporter) Export(ctx context.Context, kind model.Kind) (*File, error) {
	l, err := layoutFor(kind)
	if err != nil {
		return nil, &ExportError{Kind: kind, Err: err}
	}

	renderer, probeErr := e.probe()
	if probeErr != nil {
		e.logger.Warn("spreadsheet renderer unavailable, falling back to CSV export",
			"kind", string(kind), "error", probeErr)
		renderer = csvRenderer{}
	}

	entities, err := e.store.ListAll(ctx, kind)
	if err != nil {
		return nil, &ExportError{Kind: kind, Err: err}
	}

	rows := make([][]string, len(entities))
	for i, entity := range entities {
		rows[i] = l.row(entity)
	}

	data, err := renderer.Render(l.sheet, l.fill, l.headers, rows)
	if err != nil {
		return nil, &ExportError{Kind: kind, Err: err}
	}

	return &File{
		Data:        data,
		ContentType: renderer.ContentType(),
		Filename:    l.filename + renderer.Extension(),
	}, nil
}
