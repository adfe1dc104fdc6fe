// file: internals/features/services/burial/controller/burial_controller_test.go
package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	memberModel "gerejaku_backend/internals/features/members/model"
	burialModel "gerejaku_backend/internals/features/services/burial/model"
	burialRoute "gerejaku_backend/internals/features/services/burial/route"
	core "gerejaku_backend/internals/features/services/core"
	"gerejaku_backend/internals/mailer"
)

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, string, mailer.Payload) error { return nil }

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&memberModel.MemberModel{},
		&burialModel.BurialServiceModel{},
		&core.ServiceArchiveModel{},
	))

	app := fiber.New()
	burialRoute.BurialRoutes(app.Group("/api"), db, nopNotifier{})
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func burialPayload() map[string]any {
	return map[string]any{
		"burial_requester_name": "Peter Son",
		"burial_relationship":   "son",
		"burial_deceased_name":  "Jacob Father",
		"burial_date_death":     "2026-09-01",
		"burial_date":           "2026-09-05 13:00:00",
		"burial_location":       "Memorial Garden",
		"burial_contact_email":  "peter@example.com",
	}
}

func TestBurialCreateAssignsSequentialIDs(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/burials", burialPayload())
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "0000000001", body["data"].(map[string]any)["burial_id"])

	second := burialPayload()
	second["burial_deceased_name"] = "Another Deceased"
	second["burial_date"] = "2026-09-06 13:00:00"
	status, body = doJSON(t, app, http.MethodPost, "/api/burials", second)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "0000000002", body["data"].(map[string]any)["burial_id"])
}

func TestBurialDuplicateRequestSuppressed(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/burials", burialPayload())
	require.Equal(t, http.StatusCreated, status)

	// byte-for-byte resubmission, with only case and spacing varied
	dup := burialPayload()
	dup["burial_requester_name"] = "  peter SON "
	dup["burial_deceased_name"] = "JACOB father"
	status, body := doJSON(t, app, http.MethodPost, "/api/burials", dup)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "already exists")
	require.Contains(t, body["message"], "0000000001")
}

func TestBurialRequesterRequired(t *testing.T) {
	app, _ := newTestApp(t)

	payload := burialPayload()
	delete(payload, "burial_requester_name")
	status, body := doJSON(t, app, http.MethodPost, "/api/burials", payload)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "Requester is required")
}

func TestBurialDeleteArchivesRecord(t *testing.T) {
	app, db := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/burials", burialPayload())
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]any)["burial_id"].(string)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/burials/"+id, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/burials/"+id, nil)
	require.Equal(t, http.StatusNotFound, status)

	var arch core.ServiceArchiveModel
	require.NoError(t, db.First(&arch, "original_id = ? AND service_type = ?", id, "burial").Error)

	var snap burialModel.BurialServiceModel
	require.NoError(t, json.Unmarshal(arch.Snapshot, &snap))
	require.Equal(t, "Jacob Father", snap.BurialDeceasedName)
}

func TestBurialListWithStatusHistogram(t *testing.T) {
	app, _ := newTestApp(t)

	first := burialPayload()
	status, _ := doJSON(t, app, http.MethodPost, "/api/burials", first)
	require.Equal(t, http.StatusCreated, status)

	second := burialPayload()
	second["burial_deceased_name"] = "Another Deceased"
	second["burial_date"] = "2026-09-06 13:00:00"
	status, _ = doJSON(t, app, http.MethodPost, "/api/burials", second)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/burials?per_page=1", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"].([]any), 1)

	pagination := body["pagination"].(map[string]any)
	require.EqualValues(t, 2, pagination["total"])
	require.EqualValues(t, 2, pagination["total_pages"])

	stats := body["summary_stats"].(map[string]any)
	require.EqualValues(t, 2, stats["pending"])
}
