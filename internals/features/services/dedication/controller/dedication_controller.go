// file: internals/features/services/dedication/controller/dedication_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	core "gerejaku_backend/internals/features/services/core"
	dto "gerejaku_backend/internals/features/services/dedication/dto"
	model "gerejaku_backend/internals/features/services/dedication/model"
	helper "gerejaku_backend/internals/helpers"
	"gerejaku_backend/internals/mailer"
)

type DedicationController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

func NewDedicationController(db *gorm.DB, n mailer.Notifier) *DedicationController {
	return &DedicationController{DB: db, Notifier: n}
}

var validate = validator.New()

const serviceType = "dedication"

/* =========================
   Check builders
   ========================= */

// Duplicate = same requesting parent, same child (name + DOB). Child DOB is
// the key date for dedications.
func duplicateSpec(m *model.ChildDedicationModel, excludeID string) core.DuplicateSpec {
	spec := core.DuplicateSpec{
		Table:     model.ChildDedicationModel{}.TableName(),
		IDColumn:  "dedication_id",
		ExcludeID: excludeID,
		Clauses: []core.Clause{
			core.EqualFold("dedication_child_name", m.DedicationChildName),
			core.Equal("dedication_child_dob", m.DedicationChildDOB),
		},
	}
	switch {
	case m.DedicationFatherMemberID != nil:
		spec.Clauses = append(spec.Clauses, core.Equal("dedication_father_member_id", *m.DedicationFatherMemberID))
	case m.DedicationMotherMemberID != nil:
		spec.Clauses = append(spec.Clauses, core.Equal("dedication_mother_member_id", *m.DedicationMotherMemberID))
	case m.DedicationFatherName != nil:
		spec.Clauses = append(spec.Clauses, core.EqualFold("dedication_father_name", *m.DedicationFatherName))
	case m.DedicationMotherName != nil:
		spec.Clauses = append(spec.Clauses, core.EqualFold("dedication_mother_name", *m.DedicationMotherName))
	}
	return spec
}

func conflictSpec(m *model.ChildDedicationModel, excludeID string) core.ConflictSpec {
	spec := core.ConflictSpec{
		Table:        model.ChildDedicationModel{}.TableName(),
		IDColumn:     "dedication_id",
		DateColumn:   "dedication_date",
		Date:         *m.DedicationDate,
		StatusColumn: "dedication_status",
		ExcludeID:    excludeID,
	}
	if m.DedicationFatherMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "father",
			Match: core.Equal("dedication_father_member_id", *m.DedicationFatherMemberID),
		})
	}
	if m.DedicationMotherMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "mother",
			Match: core.Equal("dedication_mother_member_id", *m.DedicationMotherMemberID),
		})
	}
	if m.DedicationPastorID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.Equal("dedication_pastor_id", *m.DedicationPastorID),
		})
	} else if m.DedicationPastorName != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.EqualFold("dedication_pastor_name", *m.DedicationPastorName),
		})
	}
	return spec
}

func notifyPayload(m *model.ChildDedicationModel) mailer.Payload {
	email, name := "", ""
	if m.DedicationContactEmail != nil {
		email = *m.DedicationContactEmail
	}
	switch {
	case m.DedicationFatherName != nil:
		name = *m.DedicationFatherName
	case m.DedicationMotherName != nil:
		name = *m.DedicationMotherName
	}
	fields := map[string]string{
		"Request ID": m.DedicationID,
		"Child":      m.DedicationChildName,
		"Location":   m.DedicationLocation,
		"Status":     m.DedicationStatus,
	}
	if m.DedicationDate != nil {
		fields["Dedication Date"] = helper.FormatDateTime(*m.DedicationDate)
	}
	return mailer.Payload{RecipientEmail: email, RecipientName: name, Fields: fields}
}

/* =========================
   CREATE - POST /api/dedications
   ========================= */

func (ctl *DedicationController) Create(c *fiber.Ctx) error {
	var req dto.DedicationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if req.DedicationFatherMemberID == nil && req.DedicationMotherMemberID == nil &&
		req.DedicationFatherName == nil && req.DedicationMotherName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "At least one parent is required (member id or name)")
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
			"A dedication request for this child already exists (record "+dup.MatchedID+")")
	}

	if m.DedicationDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(m, "")); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		id, err := core.NextID(tx, model.ChildDedicationModel{}.TableName(), "dedication_id", core.IDWidth)
		if err != nil {
			return err
		}
		m.DedicationID = id
		return tx.Create(m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create dedication request")
	}

	var saved model.ChildDedicationModel
	if err := ctl.DB.First(&saved, "dedication_id = ?", m.DedicationID).Error; err == nil {
		*m = saved
	}

	mailer.Dispatch(ctl.Notifier, serviceType+"-created", notifyPayload(m))
	return helper.JsonCreated(c, "Dedication request created", dto.ToDedicationResponse(m))
}

/* =========================
   LIST - GET /api/dedications
   ========================= */

func (ctl *DedicationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&model.ChildDedicationModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(dedication_child_name) LIKE ? OR LOWER(COALESCE(dedication_father_name,'')) LIKE ? OR LOWER(COALESCE(dedication_mother_name,'')) LIKE ?",
			like, like, like,
		)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !core.IsValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("dedication_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count dedication requests")
	}

	sortBy := "dedication_created_at"
	switch c.Query("sort_by") {
	case "date":
		sortBy = "dedication_date"
	case "child":
		sortBy = "dedication_child_name"
	case "updated_at":
		sortBy = "dedication_updated_at"
	}
	order := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "ASC"
	}

	var rows []model.ChildDedicationModel
	if err := q.Order(sortBy + " " + order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list dedication requests")
	}

	out := make([]dto.DedicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToDedicationResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, fiber.Map{
		"summary_stats": core.StatusHistogram(ctl.DB, model.ChildDedicationModel{}.TableName(), "dedication_status"),
	})
}

/* =========================
   GET BY ID - GET /api/dedications/:id
   ========================= */

func (ctl *DedicationController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.ChildDedicationModel
	if err := ctl.DB.First(&m, "dedication_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dedication request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dedication request")
	}
	return helper.JsonOK(c, "ok", dto.ToDedicationResponse(&m))
}

/* =========================
   UPDATE - PUT /api/dedications/:id
   ========================= */

func (ctl *DedicationController) Update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.ChildDedicationModel
	if err := ctl.DB.First(&m, "dedication_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dedication request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dedication request")
	}
	prevStatus := m.DedicationStatus

	var req dto.DedicationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if m.DedicationStatus != prevStatus && !core.CanTransition(prevStatus, m.DedicationStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Status cannot change from "+prevStatus+" to "+m.DedicationStatus)
	}

	dup, err := core.CheckDuplicate(ctl.DB, duplicateSpec(&m, m.DedicationID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for duplicates")
	}
	if dup.IsDuplicate {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"A dedication request for this child already exists (record "+dup.MatchedID+")")
	}
	if m.DedicationDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(&m, m.DedicationID)); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update dedication request")
	}

	if m.DedicationStatus != prevStatus {
		mailer.Dispatch(ctl.Notifier, serviceType+"-"+m.DedicationStatus, notifyPayload(&m))
	}
	return helper.JsonUpdated(c, "Dedication request updated", dto.ToDedicationResponse(&m))
}

/* =========================
   DELETE - DELETE /api/dedications/:id
   ========================= */

func (ctl *DedicationController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.ChildDedicationModel
	if err := ctl.DB.First(&m, "dedication_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Dedication request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dedication request")
	}

	if err := core.ArchiveThenDelete(ctl.DB, serviceType, m.DedicationID, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete dedication request")
	}
	return helper.JsonDeleted(c, "Dedication request deleted", dto.ToDedicationResponse(&m))
}

/* =========================
   EXPORT - GET /api/dedications/export/excel
   ========================= */

func (ctl *DedicationController) ExportExcel(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.ChildDedicationModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("dedication_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(dedication_child_name) LIKE ?", like)
	}

	var rows []model.ChildDedicationModel
	if err := q.Order("dedication_created_at DESC").Limit(10_000).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export dedication requests")
	}

	headers := []string{"ID", "Child", "Date of Birth", "Gender", "Father", "Mother", "Dedication Date", "Location", "Pastor", "Status"}
	data := make([][]any, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		date := ""
		if m.DedicationDate != nil {
			date = helper.FormatDateTime(*m.DedicationDate)
		}
		data = append(data, []any{
			m.DedicationID,
			m.DedicationChildName,
			helper.FormatDate(m.DedicationChildDOB),
			m.DedicationChildGender,
			strVal(m.DedicationFatherName),
			strVal(m.DedicationMotherName),
			date,
			m.DedicationLocation,
			strVal(m.DedicationPastorName),
			m.DedicationStatus,
		})
	}
	return helper.StreamExcel(c, "Child Dedications", "child_dedications.xlsx", headers, data)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
