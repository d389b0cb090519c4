package store

import "fmt"

// ConfigurationError indicates a required credential or flag was missing
// when an operation was attempted. It is fatal to that operation only.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// LocalStoreError wraps a failure from the relational engine: constraint
// violation, connectivity loss, or transaction failure. The operation
// that produced it has already rolled back.
type LocalStoreError struct {
	Op  string
	Err error
}

func (e *LocalStoreError) Error() string {
	return fmt.Sprintf("local store %s: %v", e.Op, e.Err)
}

func (e *LocalStoreError) Unwrap() error { return e.Err }

// RemoteStoreError wraps a non-2xx response or transport failure from the
// remote table-store. Status is zero when the request never completed.
type RemoteStoreError struct {
	Table  string
	Status int
	Err    error
}

func (e *RemoteStoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote store create %s: status %d: %v", e.Table, e.Status, e.Err)
	}
	return fmt.Sprintf("remote store create %s: %v", e.Table, e.Err)
}

func (e *RemoteStoreError) Unwrap() error { return e.Err }
