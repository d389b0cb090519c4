package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// listOrder is the fixed listing order: newest first, identity as the
// tiebreaker (identities are monotonically assigned).
const listOrder = "created_at DESC, id DESC"

// repository provides typed operations over one entity table. Every
// operation runs inside its own transaction: committed on success,
// rolled back on any error, and the session is released on every exit
// path.
type repository[T any] struct {
	db *gorm.DB
	// search lists the columns a filter term is matched against when
	// the caller does not supply its own set.
	search []string
}

func (r *repository[T]) getByID(ctx context.Context, id int64) (*T, error) {
	var out T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.First(&out, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &LocalStoreError{Op: "get", Err: err}
	}
	return &out, nil
}

// deleteByID removes the row with the given identity. The second delete
// of the same identity returns false, never an error.
func (r *repository[T]) deleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, &LocalStoreError{Op: "delete", Err: err}
	}
	return deleted, nil
}

func (r *repository[T]) count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(new(T)).Count(&n).Error
	})
	if err != nil {
		return 0, &LocalStoreError{Op: "count", Err: err}
	}
	return n, nil
}

// listPage returns one page plus the total row count after the filter is
// applied. An empty term disables filtering; cols overrides the default
// searchable columns when non-nil.
func (r *repository[T]) listPage(ctx context.Context, term string, cols []string, offset, limit int) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.filtered(tx.Model(new(T)), term, cols).Count(&total).Error; err != nil {
			return err
		}
		q := r.filtered(tx.Model(new(T)), term, cols).Order(listOrder)
		if limit > 0 {
			q = q.Limit(limit)
		}
		if offset > 0 {
			q = q.Offset(offset)
		}
		return q.Find(&rows).Error
	})
	if err != nil {
		return nil, 0, &LocalStoreError{Op: "list", Err: err}
	}
	return rows, total, nil
}

func (r *repository[T]) listAll(ctx context.Context) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order(listOrder).Find(&rows).Error
	})
	if err != nil {
		return nil, &LocalStoreError{Op: "list all", Err: err}
	}
	return rows, nil
}

// filtered applies a case-insensitive substring match ORed across the
// searchable columns.
func (r *repository[T]) filtered(q *gorm.DB, term string, cols []string) *gorm.DB {
	if cols == nil {
		cols = r.search
	}
	if term == "" || len(cols) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		conds = append(conds, fmt.Sprintf("lower(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return q.Where(strings.Join(conds, " OR "), args...)
}
