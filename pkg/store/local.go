package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/clavisnova/submissions/pkg/model"
)

// LocalStore executes scoped-session operations against the relational
// engine. Reads, deletes, and exports always go through here; creates
// arrive either directly or via the persistence gateway.
type LocalStore struct {
	db *gorm.DB

	registrations repository[model.Registration]
	requirements  repository[model.Requirements]
	contacts      repository[model.Contact]
	logs          repository[model.SystemLog]
}

// NewLocalStore creates a LocalStore over an opened GORM connection.
func NewLocalStore(db *gorm.DB) *LocalStore {
	return &LocalStore{
		db:            db,
		registrations: repository[model.Registration]{db: db, search: model.KindRegistration.SearchableFields()},
		requirements:  repository[model.Requirements]{db: db, search: model.KindRequirements.SearchableFields()},
		contacts:      repository[model.Contact]{db: db, search: model.KindContact.SearchableFields()},
		logs:          repository[model.SystemLog]{db: db, search: model.KindSystemLog.SearchableFields()},
	}
}

// Insert persists a new record and returns the store-assigned identity.
// The entity's ID and created_at fields are populated in place.
func (s *LocalStore) Insert(ctx context.Context, e model.Entity) (int64, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(e).Error
	})
	if err != nil {
		return 0, &LocalStoreError{Op: "insert " + string(e.EntityKind()), Err: err}
	}
	return e.GetID(), nil
}

// GetByID returns the record with the given identity, or nil when no
// such row exists.
func (s *LocalStore) GetByID(ctx context.Context, kind model.Kind, id int64) (model.Entity, error) {
	switch kind {
	case model.KindRegistration:
		row, err := s.registrations.getByID(ctx, id)
		if row == nil || err != nil {
			return nil, err
		}
		return row, nil
	case model.KindRequirements:
		row, err := s.requirements.getByID(ctx, id)
		if row == nil || err != nil {
			return nil, err
		}
		return row, nil
	case model.KindContact:
		row, err := s.contacts.getByID(ctx, id)
		if row == nil || err != nil {
			return nil, err
		}
		return row, nil
	case model.KindSystemLog:
		row, err := s.logs.getByID(ctx, id)
		if row == nil || err != nil {
			return nil, err
		}
		return row, nil
	}
	return nil, unknownKind(kind)
}

// Delete removes the record with the given identity. It reports false
// when no matching row existed, so a repeated delete is not an error.
func (s *LocalStore) Delete(ctx context.Context, kind model.Kind, id int64) (bool, error) {
	switch kind {
	case model.KindRegistration:
		return s.registrations.deleteByID(ctx, id)
	case model.KindRequirements:
		return s.requirements.deleteByID(ctx, id)
	case model.KindContact:
		return s.contacts.deleteByID(ctx, id)
	case model.KindSystemLog:
		return s.logs.deleteByID(ctx, id)
	}
	return false, unknownKind(kind)
}

// Count returns the number of stored rows for the kind.
func (s *LocalStore) Count(ctx context.Context, kind model.Kind) (int64, error) {
	switch kind {
	case model.KindRegistration:
		return s.registrations.count(ctx)
	case model.KindRequirements:
		return s.requirements.count(ctx)
	case model.KindContact:
		return s.contacts.count(ctx)
	case model.KindSystemLog:
		return s.logs.count(ctx)
	}
	return 0, unknownKind(kind)
}

// ListPage returns one page of rows ordered newest first.
func (s *LocalStore) ListPage(ctx context.Context, kind model.Kind, offset, limit int) ([]model.Entity, error) {
	rows, _, err := s.ListPageFiltered(ctx, kind, "", nil, offset, limit)
	return rows, err
}

// ListPageFiltered returns one page of rows matching the search term,
// ordered newest first, plus the post-filter total. An empty term
// matches everything; a nil fields slice uses the kind's designated
// searchable columns.
func (s *LocalStore) ListPageFiltered(ctx context.Context, kind model.Kind, term string, fields []string, offset, limit int) ([]model.Entity, int64, error) {
	switch kind {
	case model.KindRegistration:
		rows, total, err := s.registrations.listPage(ctx, term, fields, offset, limit)
		return asEntities[model.Registration](rows), total, err
	case model.KindRequirements:
		rows, total, err := s.requirements.listPage(ctx, term, fields, offset, limit)
		return asEntities[model.Requirements](rows), total, err
	case model.KindContact:
		rows, total, err := s.contacts.listPage(ctx, term, fields, offset, limit)
		return asEntities[model.Contact](rows), total, err
	case model.KindSystemLog:
		rows, total, err := s.logs.listPage(ctx, term, fields, offset, limit)
		return asEntities[model.SystemLog](rows), total, err
	}
	return nil, 0, unknownKind(kind)
}

// ListAll returns the entire collection ordered newest first. Exports
// read through here; the full result set is held in memory by design.
func (s *LocalStore) ListAll(ctx context.Context, kind model.Kind) ([]model.Entity, error) {
	switch kind {
	case model.KindRegistration:
		rows, err := s.registrations.listAll(ctx)
		return asEntities[model.Registration](rows), err
	case model.KindRequirements:
		rows, err := s.requirements.listAll(ctx)
		return asEntities[model.Requirements](rows), err
	case model.KindContact:
		rows, err := s.contacts.listAll(ctx)
		return asEntities[model.Contact](rows), err
	case model.KindSystemLog:
		rows, err := s.logs.listAll(ctx)
		return asEntities[model.SystemLog](rows), err
	}
	return nil, unknownKind(kind)
}

// TrimLogs deletes all but the newest keep system log rows and returns
// the number removed.
func (s *LocalStore) TrimLogs(ctx context.Context, keep int) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			`DELETE FROM system_logs WHERE id NOT IN (
				SELECT id FROM (
					SELECT id FROM system_logs ORDER BY created_at DESC, id DESC LIMIT ?
				) newest
			)`, keep)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, &LocalStoreError{Op: "trim logs", Err: err}
	}
	return affected, nil
}

func unknownKind(kind model.Kind) error {
	return &LocalStoreError{Op: "dispatch", Err: fmt.Errorf("unknown entity kind %q", kind)}
}

// asEntities converts a typed row slice to the shared Entity interface.
func asEntities[T any, P interface {
	*T
	model.Entity
}](rows []T) []model.Entity {
	out := make([]model.Entity, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out
}
