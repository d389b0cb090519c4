package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/store"
)

func newTestLocal(t *testing.T) *store.LocalStore {
	t.Helper()
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	return store.NewLocalStore(db)
}

func TestGateway_RoutesToLocalByDefault(t *testing.T) {
	local := newTestLocal(t)
	gw := New(local, nil, nil, nil, nil)

	id, err := gw.Create(context.Background(), &model.Contact{Message: "hello"})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := local.GetByID(context.Background(), model.KindContact, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.(*model.Contact).Message)
}

func TestGateway_RemoteEnabledButUnconfigured(t *testing.T) {
	local := newTestLocal(t)
	remote := store.NewRemoteStore("", "")
	gw := New(local, remote, func() bool { return true }, nil, nil)

	_, err := gw.Create(context.Background(), &model.Contact{Message: "hello"})
	require.Error(t, err)

	var cfgErr *store.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	// The failed create must not fall back to the local store.
	n, err := local.Count(context.Background(), model.KindContact)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGateway_RoutesToRemoteWhenEnabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/registrations", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id": 99}]`))
	}))
	defer srv.Close()

	local := newTestLocal(t)
	remote := store.NewRemoteStore(srv.URL, "role")
	gw := New(local, remote, func() bool { return true }, nil, nil)

	id, err := gw.Create(context.Background(), &model.Registration{
		Manufacturer: "Yamaha", Model: "U1", Serial: "S1", Year: 1998,
		Height: "121cm", Finish: "Ebony", ColorWood: "Black", CityState: "Portland, OR",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)

	// Remotely created rows are invisible to the local store.
	n, err := local.Count(context.Background(), model.KindRegistration)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGateway_ToggleIsReadPerCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	local := newTestLocal(t)
	remote := store.NewRemoteStore(srv.URL, "role")

	useRemote := false
	gw := New(local, remote, func() bool { return useRemote }, nil, nil)
	ctx := context.Background()

	_, err := gw.Create(ctx, &model.Contact{Message: "first"})
	require.NoError(t, err)

	useRemote = true
	id, err := gw.Create(ctx, &model.Contact{Message: "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// Only the first create reached the local store.
	n, err := local.Count(ctx, model.KindContact)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRowID(t *testing.T) {
	id, err := rowID(map[string]any{"id": float64(42)})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = rowID(map[string]any{"id": "43"})
	require.NoError(t, err)
	assert.Equal(t, int64(43), id)

	_, err = rowID(map[string]any{})
	assert.Error(t, err)

	_, err = rowID(map[string]any{"id": true})
	assert.Error(t, err)
}
