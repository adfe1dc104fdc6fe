// file: internals/features/forms/controller/form_controller_test.go
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

	formModel "gerejaku_backend/internals/features/forms/model"
	formRoute "gerejaku_backend/internals/features/forms/route"
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
		&burialModel.BurialServiceModel{},
		&formModel.FormSubmissionModel{},
		&core.ServiceArchiveModel{},
	))

	app := fiber.New()
	api := app.Group("/api")
	burialRoute.BurialRoutes(api, db, nopNotifier{})
	formRoute.FormRoutes(api, db, nopNotifier{})
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

func createBurial(t *testing.T, app *fiber.App, deceased, date string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/burials", map[string]any{
		"burial_requester_name": "Peter Son",
		"burial_relationship":   "son",
		"burial_deceased_name":  deceased,
		"burial_date_death":     "2026-09-01",
		"burial_date":           date,
		"burial_location":       "Memorial Garden",
	})
	require.Equal(t, http.StatusCreated, status)
	return body["data"].(map[string]any)["burial_id"].(string)
}

func submitForm(t *testing.T, app *fiber.App, formData map[string]any) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/forms", map[string]any{
		"form_type":            "schedule_change",
		"form_submitter_name":  "Peter Son",
		"form_submitter_email": "peter@example.com",
		"form_data":            formData,
	})
	require.Equal(t, http.StatusCreated, status)
	return body["data"].(map[string]any)["form_id"].(string)
}

func TestScheduleChangeApprovalMovesServiceDate(t *testing.T) {
	app, db := newTestApp(t)
	burialID := createBurial(t, app, "Jacob Father", "2026-09-05 13:00:00")

	formID := submitForm(t, app, map[string]any{
		"service_type": "burial",
		"service_id":   burialID,
		"new_date":     "2026-09-12 09:00:00",
	})

	status, body := doJSON(t, app, http.MethodPut, "/api/forms/"+formID+"/review", map[string]any{
		"form_status":      "approved",
		"form_reviewed_by": "Admin One",
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	require.Equal(t, "approved", data["form"].(map[string]any)["form_status"])
	sync := data["schedule_sync"].(map[string]any)
	require.Equal(t, true, sync["synced"])
	require.Equal(t, burialID, sync["service_id"])

	var b burialModel.BurialServiceModel
	require.NoError(t, db.First(&b, "burial_id = ?", burialID).Error)
	require.NotNil(t, b.BurialDate)
	require.Equal(t, "2026-09-12 09:00:00", b.BurialDate.UTC().Format("2006-01-02 15:04:05"))
	// the move never touches lifecycle state
	require.Equal(t, core.StatusPending, b.BurialStatus)
}

func TestScheduleChangeFallsBackToOriginalDate(t *testing.T) {
	app, db := newTestApp(t)
	burialID := createBurial(t, app, "Jacob Father", "2026-09-05 13:00:00")

	// no service_id: the original date identifies the record
	formID := submitForm(t, app, map[string]any{
		"service_type":  "burial",
		"original_date": "2026-09-05 13:00:00",
		"new_date":      "2026-09-12 09:00:00",
	})

	status, body := doJSON(t, app, http.MethodPut, "/api/forms/"+formID+"/review", map[string]any{
		"form_status": "approved",
	})
	require.Equal(t, http.StatusOK, status)
	sync := body["data"].(map[string]any)["schedule_sync"].(map[string]any)
	require.Equal(t, true, sync["synced"])
	require.Equal(t, burialID, sync["service_id"])

	var b burialModel.BurialServiceModel
	require.NoError(t, db.First(&b, "burial_id = ?", burialID).Error)
	require.Equal(t, "2026-09-12 09:00:00", b.BurialDate.UTC().Format("2006-01-02 15:04:05"))
}

func TestScheduleChangeMissingServiceStillApproves(t *testing.T) {
	app, _ := newTestApp(t)

	formID := submitForm(t, app, map[string]any{
		"service_type": "burial",
		"service_id":   "9999999999",
		"new_date":     "2026-09-12 09:00:00",
	})

	status, body := doJSON(t, app, http.MethodPut, "/api/forms/"+formID+"/review", map[string]any{
		"form_status": "approved",
	})
	// a failed sync is reported, never an error
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	require.Equal(t, "approved", data["form"].(map[string]any)["form_status"])
	sync := data["schedule_sync"].(map[string]any)
	require.Equal(t, false, sync["synced"])
	require.Contains(t, sync["reason"], "9999999999")
}

func TestScheduleChangeAmbiguousOriginalDate(t *testing.T) {
	app, _ := newTestApp(t)
	createBurial(t, app, "Jacob Father", "2026-09-05 13:00:00")
	createBurial(t, app, "Other Deceased", "2026-09-05 13:00:00")

	formID := submitForm(t, app, map[string]any{
		"service_type":  "burial",
		"original_date": "2026-09-05 13:00:00",
		"new_date":      "2026-09-12 09:00:00",
	})

	status, body := doJSON(t, app, http.MethodPut, "/api/forms/"+formID+"/review", map[string]any{
		"form_status": "approved",
	})
	require.Equal(t, http.StatusOK, status)
	sync := body["data"].(map[string]any)["schedule_sync"].(map[string]any)
	require.Equal(t, false, sync["synced"])
	require.Contains(t, sync["reason"], "more than one")
}

func TestFormDeleteArchivesRecord(t *testing.T) {
	app, db := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/forms", map[string]any{
		"form_type":           "message",
		"form_submitter_name": "Peter Son",
		"form_data":           map[string]any{"message": "Thank you for the service"},
	})
	require.Equal(t, http.StatusCreated, status)
	formID := body["data"].(map[string]any)["form_id"].(string)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/forms/"+formID, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/forms/"+formID, nil)
	require.Equal(t, http.StatusNotFound, status)

	// same retention path as the service types: snapshot first, then delete
	var arch core.ServiceArchiveModel
	require.NoError(t, db.First(&arch, "original_id = ? AND service_type = ?", formID, "form").Error)

	var snap formModel.FormSubmissionModel
	require.NoError(t, json.Unmarshal(arch.Snapshot, &snap))
	require.Equal(t, "message", snap.FormType)
}

func TestPrayerRequestReviewHasNoSync(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/forms", map[string]any{
		"form_type":           "prayer_request",
		"form_submitter_name": "Peter Son",
		"form_data":           map[string]any{"request": "Please pray for my family"},
	})
	require.Equal(t, http.StatusCreated, status)
	formID := body["data"].(map[string]any)["form_id"].(string)

	status, body = doJSON(t, app, http.MethodPut, "/api/forms/"+formID+"/review", map[string]any{
		"form_status": "read",
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	require.Equal(t, "read", data["form"].(map[string]any)["form_status"])
	_, hasSync := data["schedule_sync"]
	require.False(t, hasSync)
}
