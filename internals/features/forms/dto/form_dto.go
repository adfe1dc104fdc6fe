// file: internals/features/forms/dto/form_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "gerejaku_backend/internals/features/forms/model"
)

/* =========================
   REQUEST
   ========================= */

type FormCreateRequest struct {
	FormType           string         `json:"form_type" validate:"required,oneof=schedule_change prayer_request message"`
	FormMemberID       *string        `json:"form_member_id" validate:"omitempty,uuid"`
	FormSubmitterName  *string        `json:"form_submitter_name" validate:"omitempty,max=150"`
	FormSubmitterEmail *string        `json:"form_submitter_email" validate:"omitempty,email"`
	FormData           map[string]any `json:"form_data" validate:"required"`
}

func (r *FormCreateRequest) Normalize() {
	r.FormType = strings.ToLower(strings.TrimSpace(r.FormType))
	r.FormSubmitterName = trimPtr(r.FormSubmitterName)
	r.FormSubmitterEmail = trimPtr(r.FormSubmitterEmail)
}

func (r *FormCreateRequest) ToModel() (*model.FormSubmissionModel, error) {
	raw, err := json.Marshal(r.FormData)
	if err != nil {
		return nil, err
	}
	m := &model.FormSubmissionModel{
		FormType:           r.FormType,
		FormSubmitterName:  r.FormSubmitterName,
		FormSubmitterEmail: r.FormSubmitterEmail,
		FormData:           datatypes.JSON(raw),
		FormStatus:         model.FormStatusPending,
	}
	if m.FormMemberID, err = parseUUIDPtr(r.FormMemberID); err != nil {
		return nil, err
	}
	return m, nil
}

type FormReviewRequest struct {
	FormStatus     string  `json:"form_status" validate:"required,oneof=approved rejected read"`
	FormAdminNotes *string `json:"form_admin_notes"`
	FormReviewedBy *string `json:"form_reviewed_by" validate:"omitempty,max=150"`
}

func (r *FormReviewRequest) Normalize() {
	r.FormStatus = strings.ToLower(strings.TrimSpace(r.FormStatus))
	r.FormAdminNotes = trimPtr(r.FormAdminNotes)
	r.FormReviewedBy = trimPtr(r.FormReviewedBy)
}

/* =========================
   RESPONSE
   ========================= */

type FormResponse struct {
	FormID             uuid.UUID      `json:"form_id"`
	FormType           string         `json:"form_type"`
	FormMemberID       *uuid.UUID     `json:"form_member_id,omitempty"`
	FormSubmitterName  *string        `json:"form_submitter_name,omitempty"`
	FormSubmitterEmail *string        `json:"form_submitter_email,omitempty"`
	FormData           map[string]any `json:"form_data"`
	FormStatus         string         `json:"form_status"`
	FormAdminNotes     *string        `json:"form_admin_notes,omitempty"`
	FormReviewedBy     *string        `json:"form_reviewed_by,omitempty"`
	FormCreatedAt      time.Time      `json:"form_created_at"`
	FormUpdatedAt      time.Time      `json:"form_updated_at"`
}

func ToFormResponse(m *model.FormSubmissionModel) FormResponse {
	resp := FormResponse{
		FormID:             m.FormID,
		FormType:           m.FormType,
		FormMemberID:       m.FormMemberID,
		FormSubmitterName:  m.FormSubmitterName,
		FormSubmitterEmail: m.FormSubmitterEmail,
		FormStatus:         m.FormStatus,
		FormAdminNotes:     m.FormAdminNotes,
		FormReviewedBy:     m.FormReviewedBy,
		FormCreatedAt:      m.FormCreatedAt,
		FormUpdatedAt:      m.FormUpdatedAt,
	}
	if len(m.FormData) > 0 {
		_ = json.Unmarshal(m.FormData, &resp.FormData)
	}
	return resp
}

/* =========================
   NORMALIZER
   ========================= */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &id, nil
}
