// file: internals/features/services/dedication/dto/dedication_dto.go
package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "gerejaku_backend/internals/features/services/dedication/model"
	helper "gerejaku_backend/internals/helpers"
)

// Serialized sponsors list may not exceed this many characters.
const MaxSponsorsJSON = 1000

/* =========================
   REQUEST
   ========================= */

type DedicationCreateRequest struct {
	DedicationChildName      string   `json:"dedication_child_name" validate:"required,max=150"`
	DedicationChildDOB       string   `json:"dedication_child_dob" validate:"required"` // YYYY-MM-DD
	DedicationChildGender    string   `json:"dedication_child_gender" validate:"required,oneof=male female"`
	DedicationFatherMemberID *string  `json:"dedication_father_member_id" validate:"omitempty,uuid"`
	DedicationFatherName     *string  `json:"dedication_father_name" validate:"omitempty,max=150"`
	DedicationMotherMemberID *string  `json:"dedication_mother_member_id" validate:"omitempty,uuid"`
	DedicationMotherName     *string  `json:"dedication_mother_name" validate:"omitempty,max=150"`
	DedicationSponsors       []string `json:"dedication_sponsors" validate:"omitempty,dive,max=150"`
	DedicationDate           *string  `json:"dedication_date"` // YYYY-MM-DD HH:mm:ss
	DedicationLocation       string   `json:"dedication_location" validate:"required,max=200"`
	DedicationPastorID       *string  `json:"dedication_pastor_id" validate:"omitempty,uuid"`
	DedicationPastorName     *string  `json:"dedication_pastor_name" validate:"omitempty,max=150"`
	DedicationContactEmail   *string  `json:"dedication_contact_email" validate:"omitempty,email"`
	DedicationNotes          *string  `json:"dedication_notes"`
}

func (r *DedicationCreateRequest) Normalize() {
	r.DedicationChildName = strings.TrimSpace(r.DedicationChildName)
	r.DedicationChildGender = strings.ToLower(strings.TrimSpace(r.DedicationChildGender))
	r.DedicationLocation = strings.TrimSpace(r.DedicationLocation)
	r.DedicationFatherName = trimPtr(r.DedicationFatherName)
	r.DedicationMotherName = trimPtr(r.DedicationMotherName)
	r.DedicationPastorName = trimPtr(r.DedicationPastorName)
	r.DedicationContactEmail = trimPtr(r.DedicationContactEmail)
	r.DedicationNotes = trimPtr(r.DedicationNotes)
	for i := range r.DedicationSponsors {
		r.DedicationSponsors[i] = strings.TrimSpace(r.DedicationSponsors[i])
	}
}

func (r *DedicationCreateRequest) ToModel() (*model.ChildDedicationModel, error) {
	dob, err := helper.ParseDate(r.DedicationChildDOB)
	if err != nil {
		return nil, err
	}
	m := &model.ChildDedicationModel{
		DedicationChildName:    r.DedicationChildName,
		DedicationChildDOB:     dob,
		DedicationChildGender:  r.DedicationChildGender,
		DedicationFatherName:   r.DedicationFatherName,
		DedicationMotherName:   r.DedicationMotherName,
		DedicationLocation:     r.DedicationLocation,
		DedicationPastorName:   r.DedicationPastorName,
		DedicationContactEmail: r.DedicationContactEmail,
		DedicationNotes:        r.DedicationNotes,
		DedicationStatus:       "pending",
	}
	if m.DedicationFatherMemberID, err = parseUUIDPtr(r.DedicationFatherMemberID); err != nil {
		return nil, err
	}
	if m.DedicationMotherMemberID, err = parseUUIDPtr(r.DedicationMotherMemberID); err != nil {
		return nil, err
	}
	if m.DedicationPastorID, err = parseUUIDPtr(r.DedicationPastorID); err != nil {
		return nil, err
	}
	if m.DedicationSponsors, err = MarshalSponsors(r.DedicationSponsors); err != nil {
		return nil, err
	}
	if r.DedicationDate != nil && strings.TrimSpace(*r.DedicationDate) != "" {
		d, err := helper.ParseDateTime(*r.DedicationDate)
		if err != nil {
			return nil, err
		}
		m.DedicationDate = &d
	}
	return m, nil
}

type DedicationUpdateRequest struct {
	DedicationChildName      *string   `json:"dedication_child_name" validate:"omitempty,max=150"`
	DedicationChildDOB       *string   `json:"dedication_child_dob"`
	DedicationChildGender    *string   `json:"dedication_child_gender" validate:"omitempty,oneof=male female"`
	DedicationFatherMemberID *string   `json:"dedication_father_member_id" validate:"omitempty,uuid"`
	DedicationFatherName     *string   `json:"dedication_father_name" validate:"omitempty,max=150"`
	DedicationMotherMemberID *string   `json:"dedication_mother_member_id" validate:"omitempty,uuid"`
	DedicationMotherName     *string   `json:"dedication_mother_name" validate:"omitempty,max=150"`
	DedicationSponsors       *[]string `json:"dedication_sponsors" validate:"omitempty,dive,max=150"`
	DedicationDate           *string   `json:"dedication_date"`
	DedicationLocation       *string   `json:"dedication_location" validate:"omitempty,max=200"`
	DedicationPastorID       *string   `json:"dedication_pastor_id" validate:"omitempty,uuid"`
	DedicationPastorName     *string   `json:"dedication_pastor_name" validate:"omitempty,max=150"`
	DedicationContactEmail   *string   `json:"dedication_contact_email" validate:"omitempty,email"`
	DedicationStatus         *string   `json:"dedication_status" validate:"omitempty,oneof=pending approved disapproved completed cancelled"`
	DedicationNotes          *string   `json:"dedication_notes"`
}

func (r *DedicationUpdateRequest) Apply(m *model.ChildDedicationModel) error {
	if r.DedicationChildName != nil {
		m.DedicationChildName = strings.TrimSpace(*r.DedicationChildName)
	}
	if r.DedicationChildDOB != nil && strings.TrimSpace(*r.DedicationChildDOB) != "" {
		dob, err := helper.ParseDate(*r.DedicationChildDOB)
		if err != nil {
			return err
		}
		m.DedicationChildDOB = dob
	}
	if r.DedicationChildGender != nil {
		m.DedicationChildGender = strings.ToLower(strings.TrimSpace(*r.DedicationChildGender))
	}
	if r.DedicationFatherMemberID != nil {
		id, err := parseUUIDPtr(r.DedicationFatherMemberID)
		if err != nil {
			return err
		}
		m.DedicationFatherMemberID = id
	}
	if r.DedicationFatherName != nil {
		m.DedicationFatherName = trimPtr(r.DedicationFatherName)
	}
	if r.DedicationMotherMemberID != nil {
		id, err := parseUUIDPtr(r.DedicationMotherMemberID)
		if err != nil {
			return err
		}
		m.DedicationMotherMemberID = id
	}
	if r.DedicationMotherName != nil {
		m.DedicationMotherName = trimPtr(r.DedicationMotherName)
	}
	if r.DedicationSponsors != nil {
		s, err := MarshalSponsors(*r.DedicationSponsors)
		if err != nil {
			return err
		}
		m.DedicationSponsors = s
	}
	if r.DedicationDate != nil {
		if strings.TrimSpace(*r.DedicationDate) == "" {
			m.DedicationDate = nil
		} else {
			d, err := helper.ParseDateTime(*r.DedicationDate)
			if err != nil {
				return err
			}
			m.DedicationDate = &d
		}
	}
	if r.DedicationLocation != nil {
		m.DedicationLocation = strings.TrimSpace(*r.DedicationLocation)
	}
	if r.DedicationPastorID != nil {
		id, err := parseUUIDPtr(r.DedicationPastorID)
		if err != nil {
			return err
		}
		m.DedicationPastorID = id
	}
	if r.DedicationPastorName != nil {
		m.DedicationPastorName = trimPtr(r.DedicationPastorName)
	}
	if r.DedicationContactEmail != nil {
		m.DedicationContactEmail = trimPtr(r.DedicationContactEmail)
	}
	if r.DedicationStatus != nil {
		m.DedicationStatus = *r.DedicationStatus
	}
	if r.DedicationNotes != nil {
		m.DedicationNotes = trimPtr(r.DedicationNotes)
	}
	return nil
}

// MarshalSponsors serializes the sponsors list and enforces the storage cap.
func MarshalSponsors(names []string) (datatypes.JSON, error) {
	if len(names) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	if len(b) > MaxSponsorsJSON {
		return nil, fmt.Errorf("sponsors list too long (%d chars serialized, max %d)", len(b), MaxSponsorsJSON)
	}
	return datatypes.JSON(b), nil
}

/* =========================
   RESPONSE
   ========================= */

type DedicationResponse struct {
	DedicationID             string     `json:"dedication_id"`
	DedicationChildName      string     `json:"dedication_child_name"`
	DedicationChildDOB       string     `json:"dedication_child_dob"`
	DedicationChildGender    string     `json:"dedication_child_gender"`
	DedicationFatherMemberID *uuid.UUID `json:"dedication_father_member_id,omitempty"`
	DedicationFatherName     *string    `json:"dedication_father_name,omitempty"`
	DedicationMotherMemberID *uuid.UUID `json:"dedication_mother_member_id,omitempty"`
	DedicationMotherName     *string    `json:"dedication_mother_name,omitempty"`
	DedicationSponsors       []string   `json:"dedication_sponsors,omitempty"`
	DedicationDate           *string    `json:"dedication_date,omitempty"`
	DedicationLocation       string     `json:"dedication_location"`
	DedicationPastorID       *uuid.UUID `json:"dedication_pastor_id,omitempty"`
	DedicationPastorName     *string    `json:"dedication_pastor_name,omitempty"`
	DedicationContactEmail   *string    `json:"dedication_contact_email,omitempty"`
	DedicationStatus         string     `json:"dedication_status"`
	DedicationNotes          *string    `json:"dedication_notes,omitempty"`
	DedicationCreatedAt      time.Time  `json:"dedication_created_at"`
	DedicationUpdatedAt      time.Time  `json:"dedication_updated_at"`
}

func ToDedicationResponse(m *model.ChildDedicationModel) DedicationResponse {
	resp := DedicationResponse{
		DedicationID:             m.DedicationID,
		DedicationChildName:      m.DedicationChildName,
		DedicationChildDOB:       helper.FormatDate(m.DedicationChildDOB),
		DedicationChildGender:    m.DedicationChildGender,
		DedicationFatherMemberID: m.DedicationFatherMemberID,
		DedicationFatherName:     m.DedicationFatherName,
		DedicationMotherMemberID: m.DedicationMotherMemberID,
		DedicationMotherName:     m.DedicationMotherName,
		DedicationLocation:       m.DedicationLocation,
		DedicationPastorID:       m.DedicationPastorID,
		DedicationPastorName:     m.DedicationPastorName,
		DedicationContactEmail:   m.DedicationContactEmail,
		DedicationStatus:         m.DedicationStatus,
		DedicationNotes:          m.DedicationNotes,
		DedicationCreatedAt:      m.DedicationCreatedAt,
		DedicationUpdatedAt:      m.DedicationUpdatedAt,
	}
	if len(m.DedicationSponsors) > 0 {
		_ = json.Unmarshal(m.DedicationSponsors, &resp.DedicationSponsors)
	}
	if m.DedicationDate != nil {
		s := helper.FormatDateTime(*m.DedicationDate)
		resp.DedicationDate = &s
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
