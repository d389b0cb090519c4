// Package model defines the persisted entity kinds for the Clavisnova
// submission backend: piano registrations, institutional requirements,
// contact messages, and system log entries. Each kind maps to its own
// table with an auto-incrementing integer primary key and no cross-table
// relationships.
package model

import "time"

// Kind identifies one of the four persisted entity kinds.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindRequirements Kind = "requirements"
	KindContact      Kind = "contact"
	KindSystemLog    Kind = "systemlog"
)

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindRegistration, KindRequirements, KindContact, KindSystemLog:
		return true
	}
	return false
}

// Table returns the storage table name for the kind. The same names are
// used by the local relational store and the remote table-store.
func (k Kind) Table() string {
	switch k {
	case KindRegistration:
		return "registrations"
	case KindRequirements:
		return "requirements"
	case KindContact:
		return "contacts"
	case KindSystemLog:
		return "system_logs"
	}
	return ""
}

// SearchableFields returns the text columns an admin search term is
// matched against for this kind.
func (k Kind) SearchableFields() []string {
	switch k {
	case KindRegistration:
		return []string{"manufacturer", "model", "serial", "city_state"}
	case KindRequirements:
		return []string{"school_name", "current_pianos", "preferred_type", "teacher_name", "background", "commitment"}
	case KindContact:
		return []string{"name", "email", "message"}
	case KindSystemLog:
		return []string{"level", "message"}
	}
	return nil
}

// Entity is the shared value type every stored record implements.
type Entity interface {
	// GetID returns the store-assigned identity, zero before insertion.
	GetID() int64
	// EntityKind tags the concrete kind for dispatch.
	EntityKind() Kind
	// ToMap returns the canonical flat serialization: field name to
	// primitive value, timestamps as RFC 3339 text or nil when unset.
	ToMap() map[string]any
	// RemotePayload returns the column mapping sent to the remote
	// table-store on create. Identity and audit timestamps are omitted;
	// the remote assigns them.
	RemotePayload() map[string]any
}

// isoTime renders a timestamp for serialization: RFC 3339 text, or nil
// when the store never set it.
func isoTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}
