// file: internals/features/services/marriage/controller/marriage_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "gerejaku_backend/internals/features/members/model"
	core "gerejaku_backend/internals/features/services/core"
	dto "gerejaku_backend/internals/features/services/marriage/dto"
	model "gerejaku_backend/internals/features/services/marriage/model"
	helper "gerejaku_backend/internals/helpers"
	"gerejaku_backend/internals/mailer"
)

type MarriageController struct {
	DB       *gorm.DB
	Notifier mailer.Notifier
}

func NewMarriageController(db *gorm.DB, n mailer.Notifier) *MarriageController {
	return &MarriageController{DB: db, Notifier: n}
}

var validate = validator.New()

const serviceType = "marriage"

/* =========================
   Check builders
   ========================= */

// Duplicate = same couple, same marriage date.
func duplicateSpec(m *model.MarriageServiceModel, excludeID string) core.DuplicateSpec {
	spec := core.DuplicateSpec{
		Table:     model.MarriageServiceModel{}.TableName(),
		IDColumn:  "marriage_id",
		ExcludeID: excludeID,
		Clauses: []core.Clause{
			core.EqualFold("marriage_groom_name", m.MarriageGroomName),
			core.EqualFold("marriage_bride_name", m.MarriageBrideName),
		},
	}
	if m.MarriageDate != nil {
		spec.Clauses = append(spec.Clauses, core.Equal("marriage_date", *m.MarriageDate))
	} else {
		spec.Clauses = append(spec.Clauses, core.Clause{Query: "marriage_status = ?", Args: []any{core.StatusPending}})
	}
	return spec
}

// Conflict checks groom, bride and pastor independently, so a response can
// report several busy parties at once.
func conflictSpec(m *model.MarriageServiceModel, excludeID string) core.ConflictSpec {
	spec := core.ConflictSpec{
		Table:        model.MarriageServiceModel{}.TableName(),
		IDColumn:     "marriage_id",
		DateColumn:   "marriage_date",
		Date:         *m.MarriageDate,
		StatusColumn: "marriage_status",
		ExcludeID:    excludeID,
	}
	if m.MarriageGroomMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "groom",
			Match: core.Equal("marriage_groom_member_id", *m.MarriageGroomMemberID),
		})
	} else {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "groom",
			Match: core.EqualFold("marriage_groom_name", m.MarriageGroomName),
		})
	}
	if m.MarriageBrideMemberID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "bride",
			Match: core.Equal("marriage_bride_member_id", *m.MarriageBrideMemberID),
		})
	} else {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "bride",
			Match: core.EqualFold("marriage_bride_name", m.MarriageBrideName),
		})
	}
	if m.MarriagePastorID != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.Equal("marriage_pastor_id", *m.MarriagePastorID),
		})
	} else if m.MarriagePastorName != nil {
		spec.Parties = append(spec.Parties, core.Party{
			Type:  "pastor",
			Match: core.EqualFold("marriage_pastor_name", *m.MarriagePastorName),
		})
	}
	return spec
}

func notifyPayload(m *model.MarriageServiceModel) mailer.Payload {
	email := ""
	if m.MarriageContactEmail != nil {
		email = *m.MarriageContactEmail
	}
	fields := map[string]string{
		"Request ID": m.MarriageID,
		"Groom":      m.MarriageGroomName,
		"Bride":      m.MarriageBrideName,
		"Location":   m.MarriageLocation,
		"Status":     m.MarriageStatus,
	}
	if m.MarriageDate != nil {
		fields["Marriage Date"] = helper.FormatDateTime(*m.MarriageDate)
	}
	return mailer.Payload{
		RecipientEmail: email,
		RecipientName:  m.MarriageGroomName + " & " + m.MarriageBrideName,
		Fields:         fields,
	}
}

/* =========================
   Derived write: civil status
   ========================= */

// syncCivilStatus marks groom/bride members as married once the service
// completes. Free-text parties are skipped. Best-effort: a failure is logged
// and never rolls back the status change.
func (ctl *MarriageController) syncCivilStatus(m *model.MarriageServiceModel) {
	parties := []*uuid.UUID{m.MarriageGroomMemberID, m.MarriageBrideMemberID}
	for _, id := range parties {
		if id == nil {
			continue
		}
		err := ctl.DB.Model(&memberModel.MemberModel{}).
			Where("member_id = ?", *id).
			Update("member_civil_status", memberModel.CivilStatusMarried).Error
		if err != nil {
			log.Printf("[WARN] civil status sync for member %s (marriage %s) failed: %v", id, m.MarriageID, err)
		}
	}
}

/* =========================
   CREATE - POST /api/marriages
   ========================= */

func (ctl *MarriageController) Create(c *fiber.Ctx) error {
	var req dto.MarriageCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
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
			"A marriage request for this couple already exists (record "+dup.MatchedID+")")
	}

	if m.MarriageDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(m, "")); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		id, err := core.NextID(tx, model.MarriageServiceModel{}.TableName(), "marriage_id", core.IDWidth)
		if err != nil {
			return err
		}
		m.MarriageID = id
		return tx.Create(m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create marriage request")
	}

	var saved model.MarriageServiceModel
	if err := ctl.DB.First(&saved, "marriage_id = ?", m.MarriageID).Error; err == nil {
		*m = saved
	}

	mailer.Dispatch(ctl.Notifier, serviceType+"-created", notifyPayload(m))
	return helper.JsonCreated(c, "Marriage request created", dto.ToMarriageResponse(m))
}

/* =========================
   LIST - GET /api/marriages
   ========================= */

func (ctl *MarriageController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := ctl.DB.Model(&model.MarriageServiceModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(marriage_groom_name) LIKE ? OR LOWER(marriage_bride_name) LIKE ? OR LOWER(marriage_location) LIKE ?",
			like, like, like,
		)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !core.IsValidStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status invalid")
		}
		q = q.Where("marriage_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count marriage requests")
	}

	sortBy := "marriage_created_at"
	switch c.Query("sort_by") {
	case "date":
		sortBy = "marriage_date"
	case "updated_at":
		sortBy = "marriage_updated_at"
	}
	order := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "ASC"
	}

	var rows []model.MarriageServiceModel
	if err := q.Order(sortBy + " " + order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list marriage requests")
	}

	out := make([]dto.MarriageResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToMarriageResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, fiber.Map{
		"summary_stats": core.StatusHistogram(ctl.DB, model.MarriageServiceModel{}.TableName(), "marriage_status"),
	})
}

/* =========================
   GET BY ID - GET /api/marriages/:id
   ========================= */

func (ctl *MarriageController) GetByID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.MarriageServiceModel
	if err := ctl.DB.First(&m, "marriage_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Marriage request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load marriage request")
	}
	return helper.JsonOK(c, "ok", dto.ToMarriageResponse(&m))
}

/* =========================
   UPDATE - PUT /api/marriages/:id
   ========================= */

func (ctl *MarriageController) Update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.MarriageServiceModel
	if err := ctl.DB.First(&m, "marriage_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Marriage request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load marriage request")
	}
	prevStatus := m.MarriageStatus

	var req dto.MarriageUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if m.MarriageStatus != prevStatus && !core.CanTransition(prevStatus, m.MarriageStatus) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"Status cannot change from "+prevStatus+" to "+m.MarriageStatus)
	}

	dup, err := core.CheckDuplicate(ctl.DB, duplicateSpec(&m, m.MarriageID))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for duplicates")
	}
	if dup.IsDuplicate {
		return helper.JsonError(c, fiber.StatusBadRequest,
			"A marriage request for this couple already exists (record "+dup.MatchedID+")")
	}
	if m.MarriageDate != nil {
		if res := core.CheckConflict(ctl.DB, conflictSpec(&m, m.MarriageID)); res.HasConflict {
			return helper.JsonErrorWith(c, fiber.StatusBadRequest, res.Message, "conflict", fiber.Map{
				"conflict_type":  res.ConflictTypes,
				"conflicting_id": res.ConflictingID,
			})
		}
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update marriage request")
	}

	if m.MarriageStatus != prevStatus {
		if m.MarriageStatus == core.StatusCompleted {
			ctl.syncCivilStatus(&m)
		}
		mailer.Dispatch(ctl.Notifier, serviceType+"-"+m.MarriageStatus, notifyPayload(&m))
	}
	return helper.JsonUpdated(c, "Marriage request updated", dto.ToMarriageResponse(&m))
}

/* =========================
   DELETE - DELETE /api/marriages/:id
   ========================= */

func (ctl *MarriageController) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	var m model.MarriageServiceModel
	if err := ctl.DB.First(&m, "marriage_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Marriage request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load marriage request")
	}

	if err := core.ArchiveThenDelete(ctl.DB, serviceType, m.MarriageID, &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete marriage request")
	}
	return helper.JsonDeleted(c, "Marriage request deleted", dto.ToMarriageResponse(&m))
}

/* =========================
   EXPORT - GET /api/marriages/export/excel
   ========================= */

func (ctl *MarriageController) ExportExcel(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.MarriageServiceModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("marriage_status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(marriage_groom_name) LIKE ? OR LOWER(marriage_bride_name) LIKE ?", like, like)
	}

	var rows []model.MarriageServiceModel
	if err := q.Order("marriage_created_at DESC").Limit(10_000).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export marriage requests")
	}

	headers := []string{"ID", "Groom", "Bride", "Marriage Date", "Location", "Pastor", "Status"}
	data := make([][]any, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		date := ""
		if m.MarriageDate != nil {
			date = helper.FormatDateTime(*m.MarriageDate)
		}
		pastor := ""
		if m.MarriagePastorName != nil {
			pastor = *m.MarriagePastorName
		}
		data = append(data, []any{
			m.MarriageID,
			m.MarriageGroomName,
			m.MarriageBrideName,
			date,
			m.MarriageLocation,
			pastor,
			m.MarriageStatus,
		})
	}
	return helper.StreamExcel(c, "Marriage Services", "marriage_services.xlsx", headers, data)
}
