// file: internals/features/members/dto/member_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	helper "gerejaku_backend/internals/helpers"

	model "gerejaku_backend/internals/features/members/model"
)

/* =========================
   REQUEST
   ========================= */

type MemberCreateRequest struct {
	MemberFullName    string  `json:"member_full_name" validate:"required,min=2,max=150"`
	MemberEmail       *string `json:"member_email" validate:"omitempty,email"`
	MemberPhone       *string `json:"member_phone" validate:"omitempty,max=30"`
	MemberGender      *string `json:"member_gender" validate:"omitempty,oneof=male female"`
	MemberAddress     *string `json:"member_address"`
	MemberBirthDate   *string `json:"member_birth_date"` // YYYY-MM-DD
	MemberCivilStatus *string `json:"member_civil_status" validate:"omitempty,oneof=single married widowed divorced"`
}

func (r *MemberCreateRequest) Normalize() {
	r.MemberFullName = strings.TrimSpace(r.MemberFullName)
	r.MemberEmail = trimPtr(r.MemberEmail)
	r.MemberPhone = trimPtr(r.MemberPhone)
	r.MemberGender = trimPtr(r.MemberGender)
	r.MemberAddress = trimPtr(r.MemberAddress)
}

func (r *MemberCreateRequest) ToModel() (*model.MemberModel, error) {
	m := &model.MemberModel{
		MemberFullName: r.MemberFullName,
		MemberEmail:    r.MemberEmail,
		MemberPhone:    r.MemberPhone,
		MemberGender:   r.MemberGender,
		MemberAddress:  r.MemberAddress,
	}
	if r.MemberBirthDate != nil && strings.TrimSpace(*r.MemberBirthDate) != "" {
		d, err := helper.ParseDate(*r.MemberBirthDate)
		if err != nil {
			return nil, err
		}
		m.MemberBirthDate = &d
	}
	if r.MemberCivilStatus != nil {
		m.MemberCivilStatus = *r.MemberCivilStatus
	} else {
		m.MemberCivilStatus = model.CivilStatusSingle
	}
	return m, nil
}

type MemberUpdateRequest struct {
	MemberFullName    *string `json:"member_full_name" validate:"omitempty,min=2,max=150"`
	MemberEmail       *string `json:"member_email" validate:"omitempty,email"`
	MemberPhone       *string `json:"member_phone" validate:"omitempty,max=30"`
	MemberGender      *string `json:"member_gender" validate:"omitempty,oneof=male female"`
	MemberAddress     *string `json:"member_address"`
	MemberBirthDate   *string `json:"member_birth_date"`
	MemberCivilStatus *string `json:"member_civil_status" validate:"omitempty,oneof=single married widowed divorced"`
}

func (r *MemberUpdateRequest) Apply(m *model.MemberModel) error {
	if r.MemberFullName != nil {
		m.MemberFullName = strings.TrimSpace(*r.MemberFullName)
	}
	if r.MemberEmail != nil {
		m.MemberEmail = trimPtr(r.MemberEmail)
	}
	if r.MemberPhone != nil {
		m.MemberPhone = trimPtr(r.MemberPhone)
	}
	if r.MemberGender != nil {
		m.MemberGender = trimPtr(r.MemberGender)
	}
	if r.MemberAddress != nil {
		m.MemberAddress = trimPtr(r.MemberAddress)
	}
	if r.MemberBirthDate != nil && strings.TrimSpace(*r.MemberBirthDate) != "" {
		d, err := helper.ParseDate(*r.MemberBirthDate)
		if err != nil {
			return err
		}
		m.MemberBirthDate = &d
	}
	if r.MemberCivilStatus != nil {
		m.MemberCivilStatus = *r.MemberCivilStatus
	}
	return nil
}

/* =========================
   RESPONSE
   ========================= */

type MemberResponse struct {
	MemberID          uuid.UUID `json:"member_id"`
	MemberFullName    string    `json:"member_full_name"`
	MemberEmail       *string   `json:"member_email,omitempty"`
	MemberPhone       *string   `json:"member_phone,omitempty"`
	MemberGender      *string   `json:"member_gender,omitempty"`
	MemberAddress     *string   `json:"member_address,omitempty"`
	MemberBirthDate   *string   `json:"member_birth_date,omitempty"`
	MemberCivilStatus string    `json:"member_civil_status"`
	MemberCreatedAt   time.Time `json:"member_created_at"`
	MemberUpdatedAt   time.Time `json:"member_updated_at"`
}

func ToMemberResponse(m *model.MemberModel) MemberResponse {
	resp := MemberResponse{
		MemberID:          m.MemberID,
		MemberFullName:    m.MemberFullName,
		MemberEmail:       m.MemberEmail,
		MemberPhone:       m.MemberPhone,
		MemberGender:      m.MemberGender,
		MemberAddress:     m.MemberAddress,
		MemberCivilStatus: m.MemberCivilStatus,
		MemberCreatedAt:   m.MemberCreatedAt,
		MemberUpdatedAt:   m.MemberUpdatedAt,
	}
	if m.MemberBirthDate != nil {
		s := helper.FormatDate(*m.MemberBirthDate)
		resp.MemberBirthDate = &s
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
