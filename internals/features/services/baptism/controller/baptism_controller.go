// file: internals/features/services/baptism/controller/baptism_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "gerejaku_backend/internals/features/services/baptism/dto"
	model "gerejaku_backend/internals/features/services/baptism/model"
	core "gerejaku_backend/internals/features/services/core"
	helper "gerejaku_backend/internals/helpers"
	"gerejaku_backend/internals/mailer"
)

type BaptismController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

func NewBaptismController(db *gorm.DB, n mailer.Notifier) *BaptismController {
	return &BaptismController{DB: db, Notifier: n}
}

var validate = validator.New()

const serviceType = "baptism"

/* =========================
   Check builders
   ========================= */

// Duplicate = same candidate, same baptism date.
func duplicateSpec(m *model.BaptismServiceModel, excludeID string) core.DuplicateSpec {
	spec := core.DuplicateSpec{
		Table:     model.BaptismServiceModel{}.TableName(),
		IDColumn:  "baptism_id",
		ExcludeID: excludeID,
	}
	if m.BaptismMemberID != nil {
		spec.Clauses = append(spec.Clauses, core.Equal("baptism_member_id", *m.BaptismMemberID))
	} else if m.BaptismCandidateName != nil {
		spec.Clauses = append(spec.Clauses, core.EqualFold("baptism_candidate_name", *m.BaptismCandidateName))
	}
	if m.BaptismDate != nil {
		spec.Clauses = append(spec.Clauses, core.Equal("baptism_date", *m.BaptismDate))
	} else {
		// unscheduled requests: one open request per candidate
		spec.Clauses = append(spec.Clauses, core.Clause{Query: "baptism_status = ?", Args: []any{core.StatusPending}})
	}
	return spec
}

func conflictSpec(m *model.BaptismServiceModel, excludeID string) core.ConflictSpec {
	spec := core.ConflictSpec{
		Table:        model.BaptismServiceModel{}.TableName(),
		IDColumn:     "baptism_id",
		DateColumn:   "baptism_date",
		Date:         *m.BaptismDate,
		StatusColumn: "baptism_status",
		ExcludeID:    excludeID,
	}
	if m.BaptismMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "member",
			Match: core.Equal("baptism_member_id", *m.BaptismMemberID),
		})
	} else if m.BaptismCandidateName != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "member",
			Match: core.EqualFold("baptism_candidate_name", *m.BaptismCandidateName),
		})
	}
	if m.BaptismPastorID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.Equal("baptism_pastor_id", *m.BaptismPastorID),
		})
	} else if m.BaptismPastorName != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.EqualFold("baptism_pastor_name", *m.BaptismPastorName),
		})
	}
	return spec
}

func notifyPayload(m *model.BaptismServiceModel) mailer.Payload {
	name, email := "", ""
	if m.BaptismCandidateName != nil {
		name = *m.BaptismCandidateName
	}
	if m.BaptismContactEmail != nil {
		email = *m.BaptismContactEmail
	}
	fields := map[string]string{
		"Request ID": m.BaptismID,
		"Location":   m.BaptismLocation,
		"Status":     m.BaptismStatus,
	}
	if m.BaptismDate != nil {
		fields["Baptism Date"] = helper.FormatDateTime(*m.BaptismDate)
	}
	return mailer.Payload{RecipientEmail: email, RecipientName: name, Fields: fields}
}

/* =========================
   CREATE - POST /api/baptisms
   ========================= */

func (ctl *BaptismController) Create(c *fiber.Ctx) error {
	var req dto.BaptismCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if req.BaptismMemberID == nil && req.BaptismCandidateName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Candidate is required (member id or name)")
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
			"A baptism request for this candidate already exists (record "+dup.MatchedID+")")
	}

	if m.BaptismDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(m, "")); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		id, err := core.NextID(tx, model.BaptismServiceModel{}.TableName(), "baptism_id", core.IDWidth)
		if err != nil {
			return err
		}
		m.BaptismID = id
		return tx.Create(m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create baptism request")
	}

	var saved model.BaptismServiceModel
	if err := ctl.DB.First(&saved, "baptism_id = ?", m.BaptismID).Error; err == nil {
		*m = saved
	}

	mailer.Dispatch(ctl.Notifier, serviceType+"-created", notifyPayload(m))
	return helper.JsonCreated(c, "Baptism request created", dto.ToBaptismResponse(m))
}

/* =========================
   LIST - GET /api/baptisms
   ========================= */

func (ctl *BaptismController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&model.BaptismServiceModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(COALESCE(baptism_candidate_name,'')) LIKE ? OR LOWER(baptism_location) LIKE ?",
			like, like,
		)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !core.IsValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("baptism_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count baptism requests")
	}

	sortBy := "baptism_created_at"
	switch c.Query("sort_by") {
	case "date":
		sortBy = "baptism_date"
	case "updated_at":
		sortBy = "baptism_updated_at"
	}
	order := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "ASC"
	}

	var rows []model.BaptismServiceModel
	if err := q.Order(sortBy + " " + order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list baptism requests")
	}

	out := make([]dto.BaptismResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToBaptismResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, fiber.Map{
		"summary_stats": core.StatusHistogram(ctl.DB, model.BaptismServiceModel{}.TableName(), "baptism_status"),
	})
}

/* =========================
   GET BY ID - GET /api/baptisms/:id
   ========================= */

func (ctl *BaptismController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BaptismServiceModel
	if err := ctl.DB.First(&m, "baptism_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Baptism request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load baptism request")
	}
	return helper.JsonOK(c, "ok", dto.ToBaptismResponse(&m))
}

/* =========================
   UPDATE - PUT /api/baptisms/:id
   ========================= */

func (ctl *BaptismController) Update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BaptismServiceModel
	if err := ctl.DB.First(&m, "baptism_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Baptism request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load baptism request")
	}
	prevStatus := m.BaptismStatus

	var req dto.BaptismUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if m.BaptismStatus != prevStatus && !core.CanTransition(prevStatus, m.BaptismStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Status cannot change from "+prevStatus+" to "+m.BaptismStatus)
	}

	dup, err := core.CheckDuplicate(ctl.DB, duplicateSpec(&m, m.BaptismID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for duplicates")
	}
	if dup.IsDuplicate {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"A baptism request for this candidate already exists (record "+dup.MatchedID+")")
	}
	if m.BaptismDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(&m, m.BaptismID)); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update baptism request")
	}

	if m.BaptismStatus != prevStatus {
		mailer.Dispatch(ctl.Notifier, serviceType+"-"+m.BaptismStatus, notifyPayload(&m))
	}
	return helper.JsonUpdated(c, "Baptism request updated", dto.ToBaptismResponse(&m))
}

/* =========================
   DELETE - DELETE /api/baptisms/:id
   ========================= */

func (ctl *BaptismController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.BaptismServiceModel
	if err := ctl.DB.First(&m, "baptism_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Baptism request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load baptism request")
	}

	if err := core.ArchiveThenDelete(ctl.DB, serviceType, m.BaptismID, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete baptism request")
	}
	return helper.JsonDeleted(c, "Baptism request deleted", dto.ToBaptismResponse(&m))
}

/* =========================
   EXPORT - GET /api/baptisms/export/excel
   ========================= */

func (ctl *BaptismController) ExportExcel(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.BaptismServiceModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("baptism_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(COALESCE(baptism_candidate_name,'')) LIKE ?", like)
	}

	var rows []model.BaptismServiceModel
	if err := q.Order("baptism_created_at DESC").Limit(10_000).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export baptism requests")
	}

	headers := []string{"ID", "Candidate", "Baptism Date", "Location", "Pastor", "Status"}
	data := make([][]any, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		date := ""
		if m.BaptismDate != nil {
			date = helper.FormatDateTime(*m.BaptismDate)
		}
		data = append(data, []any{
			m.BaptismID,
			strVal(m.BaptismCandidateName),
			date,
			m.BaptismLocation,
			strVal(m.BaptismPastorName),
			m.BaptismStatus,
		})
	}
	return helper.StreamExcel(c, "Baptism Services", "baptism_services.xlsx", headers, data)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
