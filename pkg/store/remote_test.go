package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteStore_CreateRowSendsAuthHeaders(t *testing.T) {
	var gotHeaders http.Header
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 17, "manufacturer": "Yamaha"}`))
	}))
	defer srv.Close()

	st := NewRemoteStore(srv.URL, "secret-role")
	row, err := st.CreateRow(context.Background(), "registrations", map[string]any{"manufacturer": "Yamaha"})
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/registrations", gotPath)
	assert.Equal(t, "secret-role", gotHeaders.Get("apikey"))
	assert.Equal(t, "Bearer secret-role", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "return=representation", gotHeaders.Get("Prefer"))
	assert.Equal(t, "Yamaha", gotBody["manufacturer"])
	assert.Equal(t, float64(17), row["id"])
}

func TestRemoteStore_NormalizesArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id": 5, "message": "hi"}]`))
	}))
	defer srv.Close()

	st := NewRemoteStore(srv.URL, "role")
	row, err := st.CreateRow(context.Background(), "contacts", map[string]any{"message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, float64(5), row["id"])
	assert.Equal(t, "hi", row["message"])
}

func TestRemoteStore_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	st := NewRemoteStore(srv.URL, "role")
	_, err := st.CreateRow(context.Background(), "registrations", map[string]any{})
	require.Error(t, err)

	var remoteErr *RemoteStoreError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusForbidden, remoteErr.Status)
	assert.Equal(t, "registrations", remoteErr.Table)
}

func TestRemoteStore_UnconfiguredFailsBeforeNetwork(t *testing.T) {
	st := NewRemoteStore("", "")
	assert.False(t, st.Configured())

	_, err := st.CreateRow(context.Background(), "registrations", map[string]any{})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRemoteStore_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/contacts", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer srv.Close()

	st := NewRemoteStore(srv.URL+"/", "role")
	_, err := st.CreateRow(context.Background(), "contacts", map[string]any{})
	require.NoError(t, err)
}
