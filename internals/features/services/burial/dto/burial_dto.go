// file: internals/features/services/burial/dto/burial_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "gerejaku_backend/internals/features/services/burial/model"
	helper "gerejaku_backend/internals/helpers"
)

/* =========================
   REQUEST
   ========================= */

type BurialCreateRequest struct {
	BurialMemberID      *string `json:"burial_member_id" validate:"omitempty,uuid"`
	BurialRequesterName *string `json:"burial_requester_name" validate:"omitempty,max=150"`
	BurialRelationship  string  `json:"burial_relationship" validate:"required,max=60"`
	BurialDeceasedName  string  `json:"burial_deceased_name" validate:"required,max=150"`
	BurialDateDeath     string  `json:"burial_date_death" validate:"required"` // YYYY-MM-DD
	BurialDate          *string `json:"burial_date"`                           // YYYY-MM-DD HH:mm:ss
	BurialLocation      string  `json:"burial_location" validate:"required,max=200"`
	BurialPastorID      *string `json:"burial_pastor_id" validate:"omitempty,uuid"`
	BurialPastorName    *string `json:"burial_pastor_name" validate:"omitempty,max=150"`
	BurialContactEmail  *string `json:"burial_contact_email" validate:"omitempty,email"`
	BurialNotes         *string `json:"burial_notes"`
}

func (r *BurialCreateRequest) Normalize() {
	r.BurialRelationship = strings.TrimSpace(r.BurialRelationship)
	r.BurialDeceasedName = strings.TrimSpace(r.BurialDeceasedName)
	r.BurialLocation = strings.TrimSpace(r.BurialLocation)
	r.BurialRequesterName = trimPtr(r.BurialRequesterName)
	r.BurialPastorName = trimPtr(r.BurialPastorName)
	r.BurialContactEmail = trimPtr(r.BurialContactEmail)
	r.BurialNotes = trimPtr(r.BurialNotes)
}

func (r *BurialCreateRequest) ToModel() (*model.BurialServiceModel, error) {
	dateDeath, err := helper.ParseDate(r.BurialDateDeath)
	if err != nil {
		return nil, err
	}
	m := &model.BurialServiceModel{
		BurialRequesterName: r.BurialRequesterName,
		BurialRelationship:  r.BurialRelationship,
		BurialDeceasedName:  r.BurialDeceasedName,
		BurialDateDeath:     dateDeath,
		BurialLocation:      r.BurialLocation,
		BurialPastorName:    r.BurialPastorName,
		BurialContactEmail:  r.BurialContactEmail,
		BurialNotes:         r.BurialNotes,
		BurialStatus:        "pending",
	}
	if id, err := parseUUIDPtr(r.BurialMemberID); err != nil {
		return nil, err
	} else {
		m.BurialMemberID = id
	}
	if id, err := parseUUIDPtr(r.BurialPastorID); err != nil {
		return nil, err
	} else {
		m.BurialPastorID = id
	}
	if r.BurialDate != nil && strings.TrimSpace(*r.BurialDate) != "" {
		d, err := helper.ParseDateTime(*r.BurialDate)
		if err != nil {
			return nil, err
		}
		m.BurialDate = &d
	}
	return m, nil
}

type BurialUpdateRequest struct {
	BurialMemberID      *string `json:"burial_member_id" validate:"omitempty,uuid"`
	BurialRequesterName *string `json:"burial_requester_name" validate:"omitempty,max=150"`
	BurialRelationship  *string `json:"burial_relationship" validate:"omitempty,max=60"`
	BurialDeceasedName  *string `json:"burial_deceased_name" validate:"omitempty,max=150"`
	BurialDateDeath     *string `json:"burial_date_death"`
	BurialDate          *string `json:"burial_date"`
	BurialLocation      *string `json:"burial_location" validate:"omitempty,max=200"`
	BurialPastorID      *string `json:"burial_pastor_id" validate:"omitempty,uuid"`
	BurialPastorName    *string `json:"burial_pastor_name" validate:"omitempty,max=150"`
	BurialContactEmail  *string `json:"burial_contact_email" validate:"omitempty,email"`
	BurialStatus        *string `json:"burial_status" validate:"omitempty,oneof=pending approved disapproved completed cancelled"`
	BurialNotes         *string `json:"burial_notes"`
}

func (r *BurialUpdateRequest) Apply(m *model.BurialServiceModel) error {
	if r.BurialMemberID != nil {
		id, err := parseUUIDPtr(r.BurialMemberID)
		if err != nil {
			return err
		}
		m.BurialMemberID = id
	}
	if r.BurialRequesterName != nil {
		m.BurialRequesterName = trimPtr(r.BurialRequesterName)
	}
	if r.BurialRelationship != nil {
		m.BurialRelationship = strings.TrimSpace(*r.BurialRelationship)
	}
	if r.BurialDeceasedName != nil {
		m.BurialDeceasedName = strings.TrimSpace(*r.BurialDeceasedName)
	}
	if r.BurialDateDeath != nil && strings.TrimSpace(*r.BurialDateDeath) != "" {
		d, err := helper.ParseDate(*r.BurialDateDeath)
		if err != nil {
			return err
		}
		m.BurialDateDeath = d
	}
	if r.BurialDate != nil {
		if strings.TrimSpace(*r.BurialDate) == "" {
			m.BurialDate = nil
		} else {
			d, err := helper.ParseDateTime(*r.BurialDate)
			if err != nil {
				return err
			}
			m.BurialDate = &d
		}
	}
	if r.BurialLocation != nil {
		m.BurialLocation = strings.TrimSpace(*r.BurialLocation)
	}
	if r.BurialPastorID != nil {
		id, err := parseUUIDPtr(r.BurialPastorID)
		if err != nil {
			return err
		}
		m.BurialPastorID = id
	}
	if r.BurialPastorName != nil {
		m.BurialPastorName = trimPtr(r.BurialPastorName)
	}
	if r.BurialContactEmail != nil {
		m.BurialContactEmail = trimPtr(r.BurialContactEmail)
	}
	if r.BurialStatus != nil {
		m.BurialStatus = *r.BurialStatus
	}
	if r.BurialNotes != nil {
		m.BurialNotes = trimPtr(r.BurialNotes)
	}
	return nil
}

/* =========================
   RESPONSE
   ========================= */

type BurialResponse struct {
	BurialID            string     `json:"burial_id"`
	BurialMemberID      *uuid.UUID `json:"burial_member_id,omitempty"`
	BurialRequesterName *string    `json:"burial_requester_name,omitempty"`
	BurialRelationship  string     `json:"burial_relationship"`
	BurialDeceasedName  string     `json:"burial_deceased_name"`
	BurialDateDeath     string     `json:"burial_date_death"`
	BurialDate          *string    `json:"burial_date,omitempty"`
	BurialLocation      string     `json:"burial_location"`
	BurialPastorID      *uuid.UUID `json:"burial_pastor_id,omitempty"`
	BurialPastorName    *string    `json:"burial_pastor_name,omitempty"`
	BurialContactEmail  *string    `json:"burial_contact_email,omitempty"`
	BurialStatus        string     `json:"burial_status"`
	BurialNotes         *string    `json:"burial_notes,omitempty"`
	BurialCreatedAt     time.Time  `json:"burial_created_at"`
	BurialUpdatedAt     time.Time  `json:"burial_updated_at"`
}

func ToBurialResponse(m *model.BurialServiceModel) BurialResponse {
	resp := BurialResponse{
		BurialID:            m.BurialID,
		BurialMemberID:      m.BurialMemberID,
		BurialRequesterName: m.BurialRequesterName,
		BurialRelationship:  m.BurialRelationship,
		BurialDeceasedName:  m.BurialDeceasedName,
		BurialDateDeath:     helper.FormatDate(m.BurialDateDeath),
		BurialLocation:      m.BurialLocation,
		BurialPastorID:      m.BurialPastorID,
		BurialPastorName:    m.BurialPastorName,
		BurialContactEmail:  m.BurialContactEmail,
		BurialStatus:        m.BurialStatus,
		BurialNotes:         m.BurialNotes,
		BurialCreatedAt:     m.BurialCreatedAt,
		BurialUpdatedAt:     m.BurialUpdatedAt,
	}
	if m.BurialDate != nil {
		s := helper.FormatDateTime(*m.BurialDate)
		resp.BurialDate = &s
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
