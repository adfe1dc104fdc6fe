// file: internals/features/members/controller/member_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "gerejaku_backend/internals/features/members/dto"
	model "gerejaku_backend/internals/features/members/model"
	core "gerejaku_backend/internals/features/services/core"
	helper "gerejaku_backend/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

var validate = validator.New()

/* =========================
   CREATE - POST /api/members
   ========================= */

func (ctl *MemberController) Create(c *fiber.Ctx) error {
	var req dto.MemberCreateRequest
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

	// Same person guard: full name + birth date, case-insensitive.
	if m.MemberBirthDate != nil {
		var cnt int64
		if err := ctl.DB.Model(&model.MemberModel{}).
			Where("LOWER(TRIM(member_full_name)) = LOWER(?) AND member_birth_date = ?",
				strings.TrimSpace(m.MemberFullName), *m.MemberBirthDate).
			Count(&cnt).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check for an existing member")
		}
		if cnt > 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "A member with this name and birth date already exists")
		}
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create member")
	}
	return helper.JsonCreated(c, "Member created", dto.ToMemberResponse(m))
}

/* =========================
   LIST - GET /api/members
   ========================= */

func (ctl *MemberController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.Model(&model.MemberModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(member_full_name) LIKE ? OR LOWER(COALESCE(member_email,'')) LIKE ? OR COALESCE(member_phone,'') LIKE ?",
			like, like, "%"+search+"%",
		)
	}
	if cs := strings.TrimSpace(c.Query("civil_status")); cs != "" {
		if !model.IsValidCivilStatus(cs) {
			return helper.JsonError(c, fiber.StatusBadRequest, "civil_status invalid")
		}
		q = q.Where("member_civil_status = ?", cs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count members")
	}

	sortBy := "member_created_at"
	switch c.Query("sort_by") {
	case "name":
		sortBy = "member_full_name"
	case "updated_at":
		sortBy = "member_updated_at"
	}
	order := "DESC"
	if strings.EqualFold(c.Query("order"), "asc") {
		order = "ASC"
	}

	var rows []model.MemberModel
	if err := q.Order(sortBy + " " + order).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list members")
	}

	out := make([]dto.MemberResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToMemberResponse(&rows[i]))
	}
	pagination := helper.BuildPagination(total, paging.Page, paging.PerPage, len(out))
	return helper.JsonList(c, "ok", out, pagination, fiber.Map{
		"summary_stats": core.StatusHistogram(ctl.DB, model.MemberModel{}.TableName(), "member_civil_status"),
	})
}

/* =========================
   GET BY ID - GET /api/members/:id
   ========================= */

func (ctl *MemberController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Member id invalid")
	}

	var m model.MemberModel
	if err := ctl.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}
	return helper.JsonOK(c, "ok", dto.ToMemberResponse(&m))
}

/* =========================
   UPDATE - PUT /api/members/:id
   ========================= */

func (ctl *MemberController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Member id invalid")
	}

	var m model.MemberModel
	if err := ctl.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}

	var req dto.MemberUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update member")
	}
	return helper.JsonUpdated(c, "Member updated", dto.ToMemberResponse(&m))
}

/* =========================
   DELETE - DELETE /api/members/:id
   ========================= */

func (ctl *MemberController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Member id invalid")
	}

	var m model.MemberModel
	if err := ctl.DB.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}

	if err := core.ArchiveThenDelete(ctl.DB, "member", m.MemberID.String(), &m); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete member")
	}
	return helper.JsonDeleted(c, "Member deleted", dto.ToMemberResponse(&m))
}

/* =========================
   EXPORT - GET /api/members/export/excel
   ========================= */

func (ctl *MemberController) ExportExcel(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.MemberModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(member_full_name) LIKE ?", like)
	}
	if cs := strings.TrimSpace(c.Query("civil_status")); cs != "" {
		q = q.Where("member_civil_status = ?", cs)
	}

	var rows []model.MemberModel
	if err := q.Order("member_full_name ASC").Limit(10_000).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export members")
	}

	headers := []string{"ID", "Full Name", "Email", "Phone", "Gender", "Birth Date", "Civil Status", "Registered"}
	data := make([][]any, 0, len(rows))
	for i := range rows {
		m := &rows[i]
		birth := ""
		if m.MemberBirthDate != nil {
			birth = helper.FormatDate(*m.MemberBirthDate)
		}
		data = append(data, []any{
			m.MemberID.String(),
			m.MemberFullName,
			strVal(m.MemberEmail),
			strVal(m.MemberPhone),
			strVal(m.MemberGender),
			birth,
			m.MemberCivilStatus,
			helper.FormatDate(m.MemberCreatedAt),
		})
	}
	return helper.StreamExcel(c, "Members", "members.xlsx", headers, data)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
