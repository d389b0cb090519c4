package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// remoteTimeout bounds every call to the remote table-store. There is no
// retry; the caller sees the timeout as a RemoteStoreError.
const remoteTimeout = 10 * time.Second

// RemoteStore creates rows in the remote REST table-store. Only create
// operations are supported; rows written here are invisible to the
// local-only query, export, and delete paths.
type RemoteStore struct {
	baseURL     string
	serviceRole string
	http        *http.Client
}

// NewRemoteStore creates a client for the table-store at baseURL,
// authorized with the service-role token. Either value may be empty;
// Configured reports whether calls can be attempted.
func NewRemoteStore(baseURL, serviceRole string) *RemoteStore {
	return &RemoteStore{
		baseURL:     strings.TrimRight(baseURL, "/"),
		serviceRole: serviceRole,
		http: &http.Client{
			Timeout: remoteTimeout,
		},
	}
}

// Configured reports whether the base URL and service-role token are set.
func (s *RemoteStore) Configured() bool {
	return s.baseURL != "" && s.serviceRole != ""
}

// CreateRow inserts one row into the named table. Fields must already
// use the remote schema's column names. The created row is echoed back
// via Prefer: return=representation and returned as a single mapping,
// whether the server responds with an object or a one-element array.
func (s *RemoteStore) CreateRow(ctx context.Context, table string, fields map[string]any) (map[string]any, error) {
	if !s.Configured() {
		return nil, &ConfigurationError{Reason: "remote store URL or service-role token is not set"}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/rest/v1/"+table, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", table, err)
	}
	req.Header.Set("apikey", s.serviceRole)
	req.Header.Set("Authorization", "Bearer "+s.serviceRole)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &RemoteStoreError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &RemoteStoreError{
			Table:  table,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteStoreError{Table: table, Err: fmt.Errorf("read response: %w", err)}
	}

	row, err := normalizeRow(body)
	if err != nil {
		return nil, &RemoteStoreError{Table: table, Err: fmt.Errorf("decode response: %w", err)}
	}
	return row, nil
}

// normalizeRow accepts either a single JSON object or an array of rows
// and returns the first row as a map.
func normalizeRow(body []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return map[string]any{}, nil
		}
		return rows[0], nil
	}
	var row map[string]any
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return nil, err
	}
	return row, nil
}
