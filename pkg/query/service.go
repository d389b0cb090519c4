// Package query serves the admin-facing paginated listings over locally
// stored submissions.
package query

import (
	"context"

	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/store"
)

const (
	// DefaultLimit is used when the caller does not specify a page size.
	DefaultLimit = 25
	// MaxLimit is the upper bound for the page size.
	MaxLimit = 100
)

// Params holds listing parameters. Zero values select the defaults:
// page 1, limit 25, no search filter.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Pagination describes one page of a listing. Total reflects the row
// count after the search filter is applied.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Stats summarizes stored submission counts.
type Stats struct {
	Registrations    int64 `json:"registrations"`
	Requirements     int64 `json:"requirements"`
	TotalSubmissions int64 `json:"total_submissions"`
}

// Service reads listings from the local store only. Records created via
// the remote backend are not visible here.
type Service struct {
	store *store.LocalStore
}

// NewService creates a query service over the local store.
func NewService(st *store.LocalStore) *Service {
	return &Service{store: st}
}

// List returns one page of the kind's records, newest first, serialized
// to their canonical map form. A non-empty search term restricts the
// page and the total to rows whose designated searchable fields contain
// the term, case-insensitively. A page beyond the last returns an empty
// item list with HasNext false.
func (s *Service) List(ctx context.Context, kind model.Kind, p Params) ([]map[string]any, Pagination, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := (page - 1) * limit

	rows, total, err := s.store.ListPageFiltered(ctx, kind, p.Search, nil, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	items := make([]map[string]any, len(rows))
	for i, row := range rows {
		items[i] = row.ToMap()
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	return items, pagination, nil
}

// Stats returns the submission counts shown on the admin dashboard.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	registrations, err := s.store.Count(ctx, model.KindRegistration)
	if err != nil {
		return Stats{}, err
	}
	requirements, err := s.store.Count(ctx, model.KindRequirements)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Registrations:    registrations,
		Requirements:     requirements,
		TotalSubmissions: registrations + requirements,
	}, nil
}
