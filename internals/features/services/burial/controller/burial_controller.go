// file: internals/features/services/burial/controller/burial_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "gerejaku_backend/internals/features/services/burial/dto"
	model "gerejaku_backend/internals/features/services/burial/model"
	core "gerejaku_backend/internals/features/services/core"
	helper "gerejaku_backend/internals/helpers"
	"gerejaku_backend/internals/mailer"
)

type BurialController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

func NewBurialController(db *gorm.DB, n mailer.Notifier) *BurialController {
	return &BurialController{DB: db, Notifier: n}
}

var validate = validator.New()

const serviceType = "burial"

/* =========================
   Check builders
   ========================= */

// Duplicate = requester + deceased + date of death.
func duplicateSpec(m *model.BurialServiceModel, excludeID string) core.DuplicateSpec {
	spec := core.DuplicateSpec{
		Table:     model.BurialServiceModel{}.TableName(),
		IDColumn:  "burial_id",
		ExcludeID: excludeID,
		Clauses: []core.Clause{
			core.EqualFold("burial_deceased_name", m.BurialDeceasedName),
			core.Equal("burial_date_death", m.BurialDateDeath),
		},
	}
	if m.BurialMemberID != nil {
		spec.Clauses = append(spec.Clauses, core.Equal("burial_member_id", *m.BurialMemberID))
	} else if m.BurialRequesterName != nil {
		spec.Clauses = append(spec.Clauses, core.EqualFold("burial_requester_name", *m.BurialRequesterName))
	}
	return spec
}

// Conflict parties: requesting member and officiating pastor on the burial
// slot.
func conflictSpec(m *model.BurialServiceModel, excludeID string) core.ConflictSpec {
	spec := core.ConflictSpec{
		Table:        model.BurialServiceModel{}.TableName(),
		IDColumn:     "burial_id",
		DateColumn:   "burial_date",
		Date:         *m.BurialDate,
		StatusColumn: "burial_status",
		ExcludeID:    excludeID,
	}
	if m.BurialMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "member",
			Match: core.Equal("burial_member_id", *m.BurialMemberID),
		})
	}
	if m.BurialPastorID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.Equal("burial_pastor_id", *m.BurialPastorID),
		})
	} else if m.BurialPastorName != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.EqualFold("burial_pastor_name", *m.BurialPastorName),
		})
	}
	return spec
}

func notifyPayload(m *model.BurialServiceModel) mailer.Payload {
	name := ""
	if m.BurialRequesterName != nil {
		name = *m.BurialRequesterName
	}
	email := ""
	if m.BurialContactEmail != nil {
		email = *m.BurialContactEmail
	}
	fields := map[string]string{
		"Request ID": m.BurialID,
		"Deceased":   m.BurialDeceasedName,
		"Location":   m.BurialLocation,
		"Status":     m.BurialStatus,
	}
	if m.BurialDate != nil {
		fields["Burial Date"] = helper.FormatDateTime(*m.BurialDate)
	}
	return mailer.Payload{RecipientEmail: email, RecipientName: name, Fields: fields}
}

/* =========================
   CREATE - POST /api/burials
   ========================= */

func (ctl *BurialController) Create(c *fiber.Ctx) error {
	var req dto.BurialCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if req.BurialMemberID == nil && req.BurialRequesterName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Requester is required (member id or name)")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	dup, err := core.CheckDuplicate(ctl.DB, duplicateSpec(m, ""))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for duplicates")
	}
	if dup.IsDuplicate {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"A burial request for this deceased already exists (record "+dup.MatchedID+")")
	}

	if m.BurialDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(m, "")); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		id, err := core.NextID(tx, model.BurialServiceModel{}.TableName(), "burial_id", core.IDWidth)
		if err != nil {
			return err
		}
		m.BurialID = id
		return tx.Create(m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create burial request")
	}

	// canonical row back from the store
	var saved model.BurialServiceModel
	if err := ctl.DB.First(&saved, "burial_id = ?", m.BurialID).Error; err == nil {
		*m = saved
	}

	mailer.Dispatch(ctl.Notifier, serviceType+"-created", notifyPayload(m))
	return helper.JsonCreated(c, "Burial request created", dto.ToBurialResponse(m))
}

/* =========================
   LIST - GET /api/burials
   ========================= */

func (ctl *BurialController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&model.BurialServiceModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(burial_deceased_name) LIKE ? OR LOWER(COALESCE(burial_requester_name,'')) LIKE ? OR LOWER(burial_location) LIKE ?",
			like, like, like,
		)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !core.IsValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("burial_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count burial requests")
	}

	sortBy := "burial_created_at"
	switch c.Query("sort_by") {
	case "date":
		sortBy = "burial_date"
	case "deceased":
		sortBy = "burial_deceased_name"
	case "updated_at":
		sortBy = "burial_updated_at"
	}
	order := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "ASC"
	}

	var rows []model.BurialServiceModel
	if err := q.Order(sortBy + " " + order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list burial requests")
	}

	out := make([]dto.BurialResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToBurialResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, fiber.Map{
		"summary_stats": core.StatusHistogram(ctl.DB, model.BurialServiceModel{}.TableName(), "burial_status"),
	})
}

/* =========================
   GET BY ID - GET /api/burials/:id
   ========================= */

func (ctl *BurialController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BurialServiceModel
	if err := ctl.DB.First(&m, "burial_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Burial request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load burial request")
	}
	return helper.JsonOK(c, "ok", dto.ToBurialResponse(&m))
}

/* =========================
   UPDATE - PUT /api/burials/:id
   ========================= */

func (ctl *BurialController) Update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BurialServiceModel
	if err := ctl.DB.First(&m, "burial_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Burial request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load burial request")
	}
	prevStatus := m.BurialStatus

	var req dto.BurialUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if m.BurialStatus != prevStatus && !core.CanTransition(prevStatus, m.BurialStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Status cannot change from "+prevStatus+" to "+m.BurialStatus)
	}

	// Own id excluded so a no-op re-save never trips its own record.
	dup, err := core.CheckDuplicate(ctl.DB, duplicateSpec(&m, m.BurialID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for duplicates")
	}
	if dup.IsDuplicate {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"A burial request for this deceased already exists (record "+dup.MatchedID+")")
	}
	if m.BurialDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(&m, m.BurialID)); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update burial request")
	}

	if m.BurialStatus != prevStatus {
		mailer.Dispatch(ctl.Notifier, serviceType+"-"+m.BurialStatus, notifyPayload(&m))
	}
	return helper.JsonUpdated(c, "Burial request updated", dto.ToBurialResponse(&m))
}

/* =========================
   DELETE - DELETE /api/burials/:id
   ========================= */

func (ctl *BurialController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BurialServiceModel
	if err := ctl.DB.First(&m, "burial_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Burial request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load burial request")
	}

	if err := core.ArchiveThenDelete(ctl.DB, serviceType, m.BurialID, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete burial request")
	}
	return helper.JsonDeleted(c, "Burial request deleted", dto.ToBurialResponse(&m))
}

/* =========================
   EXPORT - GET /api/burials/export/excel
   ========================= */

func (ctl *BurialController) ExportExcel(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.BurialServiceModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("burial_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(burial_deceased_name) LIKE ?", like)
	}

	var rows []model.BurialServiceModel
	if err := q.Order("burial_created_at DESC").Limit(10_000).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export burial requests")
	}

	headers := []string{"ID", "Deceased", "Date of Death", "Requester", "Relationship", "Burial Date", "Location", "Pastor", "Status"}
	data := make([][]any, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		burialDate := ""
		if m.BurialDate != nil {
			burialDate = helper.FormatDateTime(*m.BurialDate)
		}
		data = append(data, []any{
			m.BurialID,
			m.BurialDeceasedName,
			helper.FormatDate(m.BurialDateDeath),
			strVal(m.BurialRequesterName),
			m.BurialRelationship,
			burialDate,
			m.BurialLocation,
			strVal(m.BurialPastorName),
			m.BurialStatus,
		})
	}
	return helper.StreamExcel(c, "Burial Services", "burial_services.xlsx", headers, data)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
