// file: internals/features/services/marriage/controller/marriage_controller_test.go
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
	core "gerejaku_backend/internals/features/services/core"
	marriageModel "gerejaku_backend/internals/features/services/marriage/model"
	marriageRoute "gerejaku_backend/internals/features/services/marriage/route"
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
		&marriageModel.MarriageServiceModel{},
		&core.ServiceArchiveModel{},
	))

	app := fiber.New()
	marriageRoute.MarriageRoutes(app.Group("/api"), db, nopNotifier{})
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

func seedMember(t *testing.T, db *gorm.DB, name string) memberModel.MemberModel {
	t.Helper()
	m := memberModel.MemberModel{
		MemberFullName:    name,
		MemberCivilStatus: memberModel.CivilStatusSingle,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestMarriageCompletionMarksMembersMarried(t *testing.T) {
	app, db := newTestApp(t)
	groom := seedMember(t, db, "John Smith")
	bystander := seedMember(t, db, "Mary Jones")

	// bride is free-text only; just the groom holds a member reference
	status, body := doJSON(t, app, http.MethodPost, "/api/marriages", map[string]any{
		"marriage_groom_member_id": groom.MemberID.String(),
		"marriage_groom_name":      "John Smith",
		"marriage_bride_name":      "Mary Jones",
		"marriage_date":            "2026-11-21 10:00:00",
		"marriage_location":        "Main Sanctuary",
		"marriage_contact_email":   "john@example.com",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["success"])
	id := body["data"].(map[string]any)["marriage_id"].(string)
	require.Equal(t, "0000000001", id)

	status, _ = doJSON(t, app, http.MethodPut, "/api/marriages/"+id, map[string]any{
		"marriage_status": "approved",
	})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodPut, "/api/marriages/"+id, map[string]any{
		"marriage_status": "completed",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "completed", body["data"].(map[string]any)["marriage_status"])

	// fresh struct per reload: a populated model would smuggle its primary
	// key into the next query as an extra condition
	var reloadedGroom memberModel.MemberModel
	require.NoError(t, db.First(&reloadedGroom, "member_id = ?", groom.MemberID).Error)
	require.Equal(t, memberModel.CivilStatusMarried, reloadedGroom.MemberCivilStatus)

	// the name-only bride never had a member reference; an unrelated member
	// with the same name must stay untouched
	var reloadedBystander memberModel.MemberModel
	require.NoError(t, db.First(&reloadedBystander, "member_id = ?", bystander.MemberID).Error)
	require.Equal(t, memberModel.CivilStatusSingle, reloadedBystander.MemberCivilStatus)
}

func TestMarriageRejectsDoubleBookedPastor(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/marriages", map[string]any{
		"marriage_groom_name":  "Adam First",
		"marriage_bride_name":  "Eve First",
		"marriage_date":        "2026-11-21 10:00:00",
		"marriage_location":    "Main Sanctuary",
		"marriage_pastor_name": "Pastor Andrew",
	})
	require.Equal(t, http.StatusCreated, status)

	// different couple, same pastor, exact same slot
	status, body := doJSON(t, app, http.MethodPost, "/api/marriages", map[string]any{
		"marriage_groom_name":  "Ben Second",
		"marriage_bride_name":  "Beth Second",
		"marriage_date":        "2026-11-21 10:00:00",
		"marriage_location":    "Chapel",
		"marriage_pastor_name": "pastor andrew",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])

	conflict := body["conflict"].(map[string]any)
	types := conflict["conflict_type"].([]any)
	require.Contains(t, types, "pastor")
	require.Equal(t, "0000000001", conflict["conflicting_id"])
}

func TestMarriageRejectsInvalidTransition(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/marriages", map[string]any{
		"marriage_groom_name": "Adam First",
		"marriage_bride_name": "Eve First",
		"marriage_date":       "2026-11-21 10:00:00",
		"marriage_location":   "Main Sanctuary",
	})
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]any)["marriage_id"].(string)

	// pending cannot jump straight to completed
	status, body = doJSON(t, app, http.MethodPut, "/api/marriages/"+id, map[string]any{
		"marriage_status": "completed",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "Status cannot change")
}

func TestMarriageDuplicateCouple(t *testing.T) {
	app, _ := newTestApp(t)

	payload := map[string]any{
		"marriage_groom_name": "Adam First",
		"marriage_bride_name": "Eve First",
		"marriage_date":       "2026-11-21 10:00:00",
		"marriage_location":   "Main Sanctuary",
	}
	status, _ := doJSON(t, app, http.MethodPost, "/api/marriages", payload)
	require.Equal(t, http.StatusCreated, status)

	// same couple and slot, differing only in case
	payload["marriage_groom_name"] = "ADAM FIRST"
	payload["marriage_bride_name"] = " eve first "
	payload["marriage_location"] = "Chapel"
	status, body := doJSON(t, app, http.MethodPost, "/api/marriages", payload)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.Contains(t, body["message"], "already exists")
}
