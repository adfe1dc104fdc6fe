// file: internals/features/services/baptism/dto/baptism_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "gerejaku_backend/internals/features/services/baptism/model"
	helper "gerejaku_backend/internals/helpers"
)

/* =========================
   REQUEST
   ========================= */

type BaptismCreateRequest struct {
	BaptismMemberID      *string `json:"baptism_member_id" validate:"omitempty,uuid"`
	BaptismCandidateName *string `json:"baptism_candidate_name" validate:"omitempty,max=150"`
	BaptismDate          *string `json:"baptism_date"` // YYYY-MM-DD HH:mm:ss
	BaptismLocation      string  `json:"baptism_location" validate:"required,max=200"`
	BaptismPastorID      *string `json:"baptism_pastor_id" validate:"omitempty,uuid"`
	BaptismPastorName    *string `json:"baptism_pastor_name" validate:"omitempty,max=150"`
	BaptismContactEmail  *string `json:"baptism_contact_email" validate:"omitempty,email"`
	BaptismNotes         *string `json:"baptism_notes"`
}

func (r *BaptismCreateRequest) Normalize() {
	r.BaptismLocation = strings.TrimSpace(r.BaptismLocation)
	r.BaptismCandidateName = trimPtr(r.BaptismCandidateName)
	r.BaptismPastorName = trimPtr(r.BaptismPastorName)
	r.BaptismContactEmail = trimPtr(r.BaptismContactEmail)
	r.BaptismNotes = trimPtr(r.BaptismNotes)
}

func (r *BaptismCreateRequest) ToModel() (*model.BaptismServiceModel, error) {
	m := &model.BaptismServiceModel{
		BaptismCandidateName: r.BaptismCandidateName,
		BaptismLocation:      r.BaptismLocation,
		BaptismPastorName:    r.BaptismPastorName,
		BaptismContactEmail:  r.BaptismContactEmail,
		BaptismNotes:         r.BaptismNotes,
		BaptismStatus:        "pending",
	}
	var err error
	if m.BaptismMemberID, err = parseUUIDPtr(r.BaptismMemberID); err != nil {
		return nil, err
	}
	if m.BaptismPastorID, err = parseUUIDPtr(r.BaptismPastorID); err != nil {
		return nil, err
	}
	if r.BaptismDate != nil && strings.TrimSpace(*r.BaptismDate) != "" {
		d, err := helper.ParseDateTime(*r.BaptismDate)
		if err != nil {
			return nil, err
		}
		m.BaptismDate = &d
	}
	return m, nil
}

type BaptismUpdateRequest struct {
	BaptismMemberID      *string `json:"baptism_member_id" validate:"omitempty,uuid"`
	BaptismCandidateName *string `json:"baptism_candidate_name" validate:"omitempty,max=150"`
	BaptismDate          *string `json:"baptism_date"`
	BaptismLocation      *string `json:"baptism_location" validate:"omitempty,max=200"`
	BaptismPastorID      *string `json:"baptism_pastor_id" validate:"omitempty,uuid"`
	BaptismPastorName    *string `json:"baptism_pastor_name" validate:"omitempty,max=150"`
	BaptismContactEmail  *string `json:"baptism_contact_email" validate:"omitempty,email"`
	BaptismStatus        *string `json:"baptism_status" validate:"omitempty,oneof=pending approved disapproved completed cancelled"`
	BaptismNotes         *string `json:"baptism_notes"`
}

func (r *BaptismUpdateRequest) Apply(m *model.BaptismServiceModel) error {
	if r.BaptismMemberID != nil {
		id, err := parseUUIDPtr(r.BaptismMemberID)
		if err != nil {
			return err
		}
		m.BaptismMemberID = id
	}
	if r.BaptismCandidateName != nil {
		m.BaptismCandidateName = trimPtr(r.BaptismCandidateName)
	}
	if r.BaptismDate != nil {
		if strings.TrimSpace(*r.BaptismDate) == "" {
			m.BaptismDate = nil
		} else {
			d, err := helper.ParseDateTime(*r.BaptismDate)
			if err != nil {
				return err
			}
			m.BaptismDate = &d
		}
	}
	if r.BaptismLocation != nil {
		m.BaptismLocation = strings.TrimSpace(*r.BaptismLocation)
	}
	if r.BaptismPastorID != nil {
		id, err := parseUUIDPtr(r.BaptismPastorID)
		if err != nil {
			return err
		}
		m.BaptismPastorID = id
	}
	if r.BaptismPastorName != nil {
		m.BaptismPastorName = trimPtr(r.BaptismPastorName)
	}
	if r.BaptismContactEmail != nil {
		m.BaptismContactEmail = trimPtr(r.BaptismContactEmail)
	}
	if r.BaptismStatus != nil {
		m.BaptismStatus = *r.BaptismStatus
	}
	if r.BaptismNotes != nil {
		m.BaptismNotes = trimPtr(r.BaptismNotes)
	}
	return nil
}

/* =========================
   RESPONSE
   ========================= */

type BaptismResponse struct {
	BaptismID            string     `json:"baptism_id"`
	BaptismMemberID      *uuid.UUID `json:"baptism_member_id,omitempty"`
	BaptismCandidateName *string    `json:"baptism_candidate_name,omitempty"`
	BaptismDate          *string    `json:"baptism_date,omitempty"`
	BaptismLocation      string     `json:"baptism_location"`
	BaptismPastorID      *uuid.UUID `json:"baptism_pastor_id,omitempty"`
	BaptismPastorName    *string    `json:"baptism_pastor_name,omitempty"`
	BaptismContactEmail  *string    `json:"baptism_contact_email,omitempty"`
	BaptismStatus        string     `json:"baptism_status"`
	BaptismNotes         *string    `json:"baptism_notes,omitempty"`
	BaptismCreatedAt     time.Time  `json:"baptism_created_at"`
	BaptismUpdatedAt     time.Time  `json:"baptism_updated_at"`
}

func ToBaptismResponse(m *model.BaptismServiceModel) BaptismResponse {
	resp := BaptismResponse{
		BaptismID:            m.BaptismID,
		BaptismMemberID:      m.BaptismMemberID,
		BaptismCandidateName: m.BaptismCandidateName,
		BaptismLocation:      m.BaptismLocation,
		BaptismPastorID:      m.BaptismPastorID,
		BaptismPastorName:    m.BaptismPastorName,
		BaptismContactEmail:  m.BaptismContactEmail,
		BaptismStatus:        m.BaptismStatus,
		BaptismNotes:         m.BaptismNotes,
		BaptismCreatedAt:     m.BaptismCreatedAt,
		BaptismUpdatedAt:     m.BaptismUpdatedAt,
	}
	if m.BaptismDate != nil {
		s := helper.FormatDateTime(*m.BaptismDate)
		resp.BaptismDate = &s
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
