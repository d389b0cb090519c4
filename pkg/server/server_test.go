package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavisnova/submissions/pkg/export"
	"github.com/clavisnova/submissions/pkg/gateway"
	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/query"
	"github.com/clavisnova/submissions/pkg/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.LocalStore) {
	t.Helper()
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	local := store.NewLocalStore(db)

	router := NewRouter(Deps{
		Gateway:     gateway.New(local, nil, nil, nil, nil),
		Query:       query.NewService(local),
		Store:       local,
		Exporter:    export.NewExporter(local, nil),
		CORSOrigins: []string{"http://localhost:8080"},
	})
	return router, local
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateRegistration(t *testing.T) {
	h, local := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/registrations", `{
		"manufacturer": "Yamaha", "model": "U1", "serial": "S-1000",
		"year": 1998, "height": "121cm", "finish": "Polished Ebony",
		"color_wood": "Black", "city_state": "Portland, OR", "access": "ground floor"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registration created successfully", body["message"])
	assert.Greater(t, body["id"].(float64), float64(0))

	n, err := local.Count(context.Background(), model.KindRegistration)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateRegistration_YearCoercion(t *testing.T) {
	h, local := newTestServer(t)

	// String years are parsed; garbage falls back to the default.
	rec, _ := doJSON(t, h, http.MethodPost, "/api/registrations", `{
		"manufacturer": "Kawai", "model": "K300", "serial": "S-2", "year": "1985",
		"height": "122cm", "finish": "Satin", "color_wood": "Walnut", "city_state": "Austin, TX"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/registrations", `{
		"manufacturer": "Kawai", "model": "K300", "serial": "S-3", "year": "unknown",
		"height": "122cm", "finish": "Satin", "color_wood": "Walnut", "city_state": "Austin, TX"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rows, err := local.ListAll(context.Background(), model.KindRegistration)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, defaultYear, rows[0].(*model.Registration).Year)
	assert.Equal(t, 1985, rows[1].(*model.Registration).Year)
}

func TestCreateRegistration_MissingRequiredField(t *testing.T) {
	h, _ := newTestServer(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/registrations", `{"manufacturer": "Yamaha"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestCreateRequirements_LegacyAliases(t *testing.T) {
	h, local := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/requirements", `{
		"info1": "Lincoln Elementary", "info4": "Ms. Park"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rows, err := local.ListAll(context.Background(), model.KindRequirements)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	req := rows[0].(*model.Requirements)
	assert.Equal(t, "Lincoln Elementary", req.SchoolName)
	assert.Equal(t, "Ms. Park", req.TeacherName)
}

func TestCreateRequirements_AllFieldsEmpty(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/requirements", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateContact_RequiresMessage(t *testing.T) {
	h, local := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/contact", `{"name": "Ada", "email": "ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/contact", `{"message": "piano inquiry"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	n, err := local.Count(context.Background(), model.KindContact)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAdminListing(t *testing.T) {
	h, local := newTestServer(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := local.Insert(ctx, &model.Contact{Name: "Person", Message: "hello"})
		require.NoError(t, err)
	}

	rec, body := doJSON(t, h, http.MethodGet, "/api/admin/contacts?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 2)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["total_pages"])
	assert.Equal(t, true, pagination["has_next"])
}

func TestAdminStats(t *testing.T) {
	h, local := newTestServer(t)

	_, err := local.Insert(context.Background(), &model.Requirements{SchoolName: "Lincoln Elementary"})
	require.NoError(t, err)

	rec, body := doJSON(t, h, http.MethodGet, "/api/admin/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["registrations"])
	assert.Equal(t, float64(1), data["requirements"])
	assert.Equal(t, float64(1), data["total_submissions"])
}

func TestAdminDelete(t *testing.T) {
	h, local := newTestServer(t)

	id, err := local.Insert(context.Background(), &model.Contact{Message: "bye"})
	require.NoError(t, err)

	rec, body := doJSON(t, h, http.MethodDelete, "/api/admin/contacts/nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", body["message"])

	rec, body = doJSON(t, h, http.MethodDelete, "/api/admin/contacts/424242", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", body["message"])

	rec, body = doJSON(t, h, http.MethodDelete, "/api/admin/contacts/"+jsonID(id), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestAdminExport(t *testing.T) {
	h, local := newTestServer(t)

	_, err := local.Insert(context.Background(), &model.Contact{Name: "Ada", Message: "hello"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export/contacts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="contacts.xlsx"`)
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestUnknownExportKind(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/admin/export/bogus", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	h, _ := newTestServer(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
