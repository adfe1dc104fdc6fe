// file: internals/features/forms/controller/form_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "gerejaku_backend/internals/features/forms/dto"
	model "gerejaku_backend/internals/features/forms/model"
	core "gerejaku_backend/internals/features/services/core"
	helper "gerejaku_backend/internals/helpers"
	"gerejaku_backend/internals/mailer"
)

type FormController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

func NewFormController(db *gorm.DB, n mailer.Notifier) *FormController {
	return &FormController{DB: db, Notifier: n}
}

var validate = validator.New()

/* =========================
   CREATE - POST /api/forms
   ========================= */

func (ctl *FormController) Create(c *fiber.Ctx) error {
	var req dto.FormCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if req.FormMemberID == nil && req.FormSubmitterName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Submitter is required (member id or name)")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit form")
	}
	return helper.JsonCreated(c, "Form submitted", dto.ToFormResponse(m))
}

/* =========================
   LIST - GET /api/forms
   ========================= */

func (ctl *FormController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&model.FormSubmissionModel{})

	if ft := strings.TrimSpace(c.Query("form_type")); ft != "" {
		if !model.IsValidFormType(ft) {
			return helper.JsonError(c, fiber.StatusBadRequest, "form_type invalid")
		}
		q = q.Where("form_type = ?", ft)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !model.IsValidFormStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("form_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(COALESCE(form_submitter_name,'')) LIKE ? OR LOWER(COALESCE(form_submitter_email,'')) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count form submissions")
	}

	var rows []model.FormSubmissionModel
	if err := q.Order("form_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list form submissions")
	}

	out := make([]dto.FormResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToFormResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, nil)
}

/* =========================
   GET BY ID - GET /api/forms/:id
   ========================= */

func (ctl *FormController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}
	var m model.FormSubmissionModel
	if err := ctl.DB.First(&m, "form_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load form submission")
	}
	return helper.JsonOK(c, "ok", dto.ToFormResponse(&m))
}

/* =========================
   REVIEW - PUT /api/forms/:id/review
   ========================= */

func (ctl *FormController) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}
	var m model.FormSubmissionModel
	if err := ctl.DB.First(&m, "form_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load form submission")
	}

	var req dto.FormReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// Schedule changes push the new date onto the referenced service before
	// the form itself is marked. A failed sync never blocks the review.
	var sync *scheduleSyncResult
	if m.FormType == model.FormTypeScheduleChange && req.FormStatus == model.FormStatusApproved {
		res := ctl.applyScheduleChange(m.FormData)
		sync = &res
		if !res.Synced {
			log.Printf("[WARN] schedule change sync failed for form %s: %s", m.FormID, res.Reason)
		}
	}

	m.FormStatus = req.FormStatus
	m.FormAdminNotes = req.FormAdminNotes
	m.FormReviewedBy = req.FormReviewedBy
	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to review form submission")
	}

	if email := strVal(m.FormSubmitterEmail); email != "" {
		mailer.Dispatch(ctl.Notifier, "form-"+m.FormStatus, mailer.Payload{
			RecipientEmail: email,
			RecipientName:  strVal(m.FormSubmitterName),
			Fields: map[string]string{
				"Form Type": m.FormType,
				"Status":    m.FormStatus,
				"Notes":     strVal(m.FormAdminNotes),
			},
		})
	}

	body := fiber.Map{"form": dto.ToFormResponse(&m)}
	if sync != nil {
		body["schedule_sync"] = sync
	}
	return helper.JsonUpdated(c, "Form reviewed", body)
}

/* =========================
   DELETE - DELETE /api/forms/:id
   ========================= */

func (ctl *FormController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid form id")
	}
	var m model.FormSubmissionModel
	if err := ctl.DB.First(&m, "form_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Form submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load form submission")
	}
	if err := core.ArchiveThenDelete(ctl.DB, "form", m.FormID.String(), &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete form submission")
	}
	return helper.JsonDeleted(c, "Form submission deleted", dto.ToFormResponse(&m))
}

/* =========================
   Schedule-change sync
   ========================= */

type scheduleSyncResult struct {
	Synced      bool   `json:"synced"`
	ServiceType string `json:"service_type,omitempty"`
	ServiceID   string `json:"service_id,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type scheduleChangeData struct {
	ServiceType  string `json:"service_type"`
	ServiceID    string `json:"service_id"`
	OriginalDate string `json:"original_date"`
	NewDate      string `json:"new_date"`
}

// One entry per reschedulable service table.
var serviceTables = map[string]struct {
	Table      string
	IDColumn   string
	DateColumn string
}{
	"baptism":    {"baptism_services", "baptism_id", "baptism_date"},
	"marriage":   {"marriage_services", "marriage_id", "marriage_date"},
	"burial":     {"burial_services", "burial_id", "burial_date"},
	"dedication": {"child_dedications", "dedication_id", "dedication_date"},
}

// applyScheduleChange moves the referenced service to the requested new
// date. Only the date column changes; the service keeps its status. The
// result is always structured, never an error: the caller records the
// outcome and proceeds with the review either way.
func (ctl *FormController) applyScheduleChange(raw []byte) scheduleSyncResult {
	var data scheduleChangeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return scheduleSyncResult{Reason: "form_data is not a valid schedule change payload"}
	}
	data.ServiceType = strings.ToLower(strings.TrimSpace(data.ServiceType))

	target, ok := serviceTables[data.ServiceType]
	if !ok {
		return scheduleSyncResult{Reason: "unknown service type " + data.ServiceType}
	}
	if strings.TrimSpace(data.NewDate) == "" {
		return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "new_date is missing"}
	}
	newDate, err := helper.ParseDateTime(data.NewDate)
	if err != nil {
		return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "new_date is not a valid date"}
	}

	serviceID := strings.TrimSpace(data.ServiceID)
	if serviceID == "" {
		// Fallback: locate the service by its currently scheduled date.
		if strings.TrimSpace(data.OriginalDate) == "" {
			return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "neither service_id nor original_date given"}
		}
		origDate, err := helper.ParseDateTime(data.OriginalDate)
		if err != nil {
			return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "original_date is not a valid date"}
		}
		var ids []string
		if err := ctl.DB.Table(target.Table).
			Where(target.DateColumn+" = ?", origDate).
			Limit(2).
			Pluck(target.IDColumn, &ids).Error; err != nil {
			return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "service lookup failed"}
		}
		switch len(ids) {
		case 0:
			return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "no service scheduled on the original date"}
		case 1:
			serviceID = ids[0]
		default:
			return scheduleSyncResult{ServiceType: data.ServiceType, Reason: "original date matches more than one service"}
		}
	}

	res := ctl.DB.Table(target.Table).
		Where(target.IDColumn+" = ?", serviceID).
		Update(target.DateColumn, newDate)
	if res.Error != nil {
		return scheduleSyncResult{ServiceType: data.ServiceType, ServiceID: serviceID, Reason: "service update failed"}
	}
	if res.RowsAffected == 0 {
		return scheduleSyncResult{
			ServiceType: data.ServiceType,
			ServiceID:   serviceID,
			Reason:      fmt.Sprintf("no %s service with id %s", data.ServiceType, serviceID),
		}
	}
	return scheduleSyncResult{Synced: true, ServiceType: data.ServiceType, ServiceID: serviceID}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
