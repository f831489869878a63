package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/jakechorley/volunteer-hours/internal/config"
	"github.com/jakechorley/volunteer-hours/pkg/clients/sheetsclient"
	"github.com/jakechorley/volunteer-hours/pkg/core/model"
	"github.com/jakechorley/volunteer-hours/pkg/core/services"
	"github.com/jakechorley/volunteer-hours/pkg/db"
)

// mockWorksheetWriter records worksheet titles and fails with err when set
type mockWorksheetWriter struct {
	titles []string
	err    error
}

func (m *mockWorksheetWriter) EnsureAndOverwriteWorksheet(ctx context.Context, spreadsheetID, title string, header []interface{}, rows [][]interface{}) error {
	m.titles = append(m.titles, title)
	return m.err
}

type testServer struct {
	router   *gin.Engine
	database *db.DB
	writer   *mockWorksheetWriter
	public   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewDB(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.PublicDir = t.TempDir()

	writer := &mockWorksheetWriter{}
	newWriter := func(ctx context.Context, credentialsJSON []byte) (services.WorksheetWriter, error) {
		return writer, nil
	}

	return &testServer{
		router:   NewRouter(cfg, database, newWriter, zap.NewNop()),
		database: database,
		writer:   writer,
		public:   cfg.PublicDir,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func (s *testServer) configureSheets(t *testing.T) {
	t.Helper()
	err := s.database.SaveSettings(context.Background(), &model.Settings{
		AdminPassword: "pw",
		SheetsConfig: &model.SheetsConfig{
			SpreadsheetID: "spreadsheet-1",
			Credentials:   json.RawMessage(`{"type":"service_account","client_email":"sync@project.iam.gserviceaccount.com"}`),
		},
	})
	require.NoError(t, err)
}

func TestVolunteerLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/volunteers", map[string]string{"name": "Alice", "phone": "123", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	alice := decode[model.Volunteer](t, w)
	assert.NotEmpty(t, alice.ID)
	assert.Equal(t, "Alice", alice.Name)

	w = s.do(t, http.MethodPost, "/api/volunteers", map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusCreated, w.Code)
	bob := decode[model.Volunteer](t, w)

	w = s.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"volunteerId": alice.ID, "name": "Fair", "location": "Park", "date": "2025-05-01", "hours": 2.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, model.Hours("2.5"), decode[model.Event](t, w).Hours)

	w = s.do(t, http.MethodPost, "/api/events", map[string]interface{}{
		"volunteerId": bob.ID, "name": "Drive", "date": "2025-05-02", "hours": "1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/volunteers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Volunteer](t, w), 2)

	w = s.do(t, http.MethodGet, "/api/volunteers/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", decode[model.Volunteer](t, w).Email)

	w = s.do(t, http.MethodGet, "/api/volunteers/"+alice.ID+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Event](t, w), 1)

	w = s.do(t, http.MethodDelete, "/api/volunteers/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, w)["success"])

	w = s.do(t, http.MethodGet, "/api/volunteers/"+alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Volunteer not found", decode[map[string]string](t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]model.Event](t, w)
	require.Len(t, events, 1, "deleting a volunteer removes only their events")
	assert.Equal(t, bob.ID, events[0].VolunteerID)
}

func TestCreateVolunteer_BadRequest(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/volunteers", "{broken")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/volunteers", map[string]string{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "invalid input")
}

func TestCreateEvent_BadRequest(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/events", map[string]string{"name": "Fair"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteVolunteer_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodDelete, "/api/volunteers/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/admin/password", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, db.DefaultAdminPassword, decode[map[string]string](t, w)["password"])

	w = s.do(t, http.MethodPost, "/api/admin/password", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/admin/password", map[string]string{"password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/admin/password", nil)
	assert.Equal(t, "hunter2", decode[map[string]string](t, w)["password"])
}

func TestSheetsConfig(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/sheets/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]interface{}](t, w)["configured"])

	w = s.do(t, http.MethodPost, "/api/sheets/config", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/sheets/config", map[string]interface{}{
		"spreadsheetId": "spreadsheet-1",
		"credentials": map[string]string{
			"type":         "service_account",
			"client_email": "sync@project.iam.gserviceaccount.com",
			"private_key":  "secret-key",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/sheets/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-key")
	view := decode[services.SheetsConfigView](t, w)
	assert.True(t, view.Configured)
	assert.Equal(t, "spreadsheet-1", view.SpreadsheetID)
	assert.Equal(t, "sync@project.iam.gserviceaccount.com", view.ClientEmail)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, []interface{}{"volunteers.csv", "events.csv"}, body["files"])
}

func TestSyncSheets_Unconfigured(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/sync/sheets", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.writer.titles)
}

func TestSyncSheets_Success(t *testing.T) {
	s := newTestServer(t)
	s.configureSheets(t)

	ctx := context.Background()
	require.NoError(t, s.database.SaveVolunteers(ctx, []model.Volunteer{{ID: "vol-1", Name: "Zed"}, {ID: "vol-2", Name: "amy"}}))
	require.NoError(t, s.database.SaveEvents(ctx, []model.Event{{ID: "evt-1", VolunteerID: "vol-1", Date: "2025-01-01", Hours: "2"}}))

	w := s.do(t, http.MethodPost, "/api/sync/sheets", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["volunteersCount"])
	assert.Equal(t, float64(1), body["eventsCount"])
	assert.Equal(t, []string{"Volunteers", "Volunteer - Zed"}, s.writer.titles)
}

func TestSyncSheets_PermissionDenied(t *testing.T) {
	s := newTestServer(t)
	s.configureSheets(t)
	s.writer.err = &sheetsclient.Error{
		Kind: sheetsclient.KindPermission,
		Op:   "get spreadsheet metadata",
		Err:  errors.New("googleapi: Error 403: The caller does not have permission"),
	}

	w := s.do(t, http.MethodPost, "/api/sync/sheets", nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	body := decode[map[string]string](t, w)
	assert.Contains(t, body["error"], "sync@project.iam.gserviceaccount.com")
	assert.Contains(t, body["error"], "Editor")
	assert.Equal(t, "sync@project.iam.gserviceaccount.com", body["serviceAccount"])
}

func TestSyncSheets_RemoteError(t *testing.T) {
	s := newTestServer(t)
	s.configureSheets(t)
	s.writer.err = errors.New("googleapi: Error 500: backend error")

	w := s.do(t, http.MethodPost, "/api/sync/sheets", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "googleapi: Error 500: backend error", decode[map[string]string](t, w)["error"])
}

func TestSyncSheets_RemoteErrorFromSheetsAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sheetsAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"sheets":[{"properties":{"title":"Volunteers"}}]}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Unable to parse range"}}`))
	}))
	t.Cleanup(sheetsAPI.Close)

	newWriter := func(ctx context.Context, credentialsJSON []byte) (services.WorksheetWriter, error) {
		return sheetsclient.NewClientWithOptions(ctx,
			option.WithEndpoint(sheetsAPI.URL+"/"),
			option.WithHTTPClient(sheetsAPI.Client()),
		)
	}

	database, err := db.NewDB(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	s := &testServer{
		router:   NewRouter(config.Default(), database, newWriter, zap.NewNop()),
		database: database,
	}
	s.configureSheets(t)

	w := s.do(t, http.MethodPost, "/api/sync/sheets", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "googleapi: Error 400: Unable to parse range", decode[map[string]string](t, w)["error"])
}

func TestStaticFiles(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.public, "index.html"), []byte("<h1>hi</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.public, "app.js"), []byte("console.log(1)"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.public, "data.bin"), []byte{0x01}, 0644))

	w := s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>hi</h1>", w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodGet, "/app.js", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/javascript; charset=utf-8", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodGet, "/data.bin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodGet, "/missing.css", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found", decode[map[string]string](t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("logo.PNG"))
	assert.Equal(t, "application/json", contentTypeFor("manifest.json"))
	assert.Equal(t, defaultContentType, contentTypeFor("archive.tar.gz"))
	assert.Equal(t, defaultContentType, contentTypeFor("README"))
}

func TestPermissionHint(t *testing.T) {
	assert.Contains(t, PermissionHint("svc@example.com"), "svc@example.com")
	assert.Contains(t, PermissionHint(""), "service account")
}
