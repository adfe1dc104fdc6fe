// file: internals/features/services/marriage/dto/marriage_dto.go
package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "gerejaku_backend/internals/features/services/marriage/model"
	helper "gerejaku_backend/internals/helpers"
)

// Serialized guardians list may not exceed this many characters.
const MaxGuardiansJSON = 1000

/* =========================
   REQUEST
   ========================= */

type MarriageCreateRequest struct {
	MarriageGroomMemberID *string  `json:"marriage_groom_member_id" validate:"omitempty,uuid"`
	MarriageGroomName     string   `json:"marriage_groom_name" validate:"required,max=150"`
	MarriageBrideMemberID *string  `json:"marriage_bride_member_id" validate:"omitempty,uuid"`
	MarriageBrideName     string   `json:"marriage_bride_name" validate:"required,max=150"`
	MarriageGuardians     []string `json:"marriage_guardians" validate:"omitempty,dive,max=150"`
	MarriageDate          *string  `json:"marriage_date"` // YYYY-MM-DD HH:mm:ss
	MarriageLocation      string   `json:"marriage_location" validate:"required,max=200"`
	MarriagePastorID      *string  `json:"marriage_pastor_id" validate:"omitempty,uuid"`
	MarriagePastorName    *string  `json:"marriage_pastor_name" validate:"omitempty,max=150"`
	MarriageContactEmail  *string  `json:"marriage_contact_email" validate:"omitempty,email"`
	MarriageNotes         *string  `json:"marriage_notes"`
}

func (r *MarriageCreateRequest) Normalize() {
	r.MarriageGroomName = strings.TrimSpace(r.MarriageGroomName)
	r.MarriageBrideName = strings.TrimSpace(r.MarriageBrideName)
	r.MarriageLocation = strings.TrimSpace(r.MarriageLocation)
	r.MarriagePastorName = trimPtr(r.MarriagePastorName)
	r.MarriageContactEmail = trimPtr(r.MarriageContactEmail)
	r.MarriageNotes = trimPtr(r.MarriageNotes)
	for i := range r.MarriageGuardians {
		r.MarriageGuardians[i] = strings.TrimSpace(r.MarriageGuardians[i])
	}
}

func (r *MarriageCreateRequest) ToModel() (*model.MarriageServiceModel, error) {
	m := &model.MarriageServiceModel{
		MarriageGroomName:    r.MarriageGroomName,
		MarriageBrideName:    r.MarriageBrideName,
		MarriageLocation:     r.MarriageLocation,
		MarriagePastorName:   r.MarriagePastorName,
		MarriageContactEmail: r.MarriageContactEmail,
		MarriageNotes:        r.MarriageNotes,
		MarriageStatus:       "pending",
	}
	var err error
	if m.MarriageGroomMemberID, err = parseUUIDPtr(r.MarriageGroomMemberID); err != nil {
		return nil, err
	}
	if m.MarriageBrideMemberID, err = parseUUIDPtr(r.MarriageBrideMemberID); err != nil {
		return nil, err
	}
	if m.MarriagePastorID, err = parseUUIDPtr(r.MarriagePastorID); err != nil {
		return nil, err
	}
	if m.MarriageGuardians, err = MarshalGuardians(r.MarriageGuardians); err != nil {
		return nil, err
	}
	if r.MarriageDate != nil && strings.TrimSpace(*r.MarriageDate) != "" {
		d, err := helper.ParseDateTime(*r.MarriageDate)
		if err != nil {
			return nil, err
		}
		m.MarriageDate = &d
	}
	return m, nil
}

type MarriageUpdateRequest struct {
	MarriageGroomMemberID *string   `json:"marriage_groom_member_id" validate:"omitempty,uuid"`
	MarriageGroomName     *string   `json:"marriage_groom_name" validate:"omitempty,max=150"`
	MarriageBrideMemberID *string   `json:"marriage_bride_member_id" validate:"omitempty,uuid"`
	MarriageBrideName     *string   `json:"marriage_bride_name" validate:"omitempty,max=150"`
	MarriageGuardians     *[]string `json:"marriage_guardians" validate:"omitempty,dive,max=150"`
	MarriageDate          *string   `json:"marriage_date"`
	MarriageLocation      *string   `json:"marriage_location" validate:"omitempty,max=200"`
	MarriagePastorID      *string   `json:"marriage_pastor_id" validate:"omitempty,uuid"`
	MarriagePastorName    *string   `json:"marriage_pastor_name" validate:"omitempty,max=150"`
	MarriageContactEmail  *string   `json:"marriage_contact_email" validate:"omitempty,email"`
	MarriageStatus        *string   `json:"marriage_status" validate:"omitempty,oneof=pending approved disapproved completed cancelled"`
	MarriageNotes         *string   `json:"marriage_notes"`
}

func (r *MarriageUpdateRequest) Apply(m *model.MarriageServiceModel) error {
	if r.MarriageGroomMemberID != nil {
		id, err := parseUUIDPtr(r.MarriageGroomMemberID)
		if err != nil {
			return err
		}
		m.MarriageGroomMemberID = id
	}
	if r.MarriageGroomName != nil {
		m.MarriageGroomName = strings.TrimSpace(*r.MarriageGroomName)
	}
	if r.MarriageBrideMemberID != nil {
		id, err := parseUUIDPtr(r.MarriageBrideMemberID)
		if err != nil {
			return err
		}
		m.MarriageBrideMemberID = id
	}
	if r.MarriageBrideName != nil {
		m.MarriageBrideName = strings.TrimSpace(*r.MarriageBrideName)
	}
	if r.MarriageGuardians != nil {
		g, err := MarshalGuardians(*r.MarriageGuardians)
		if err != nil {
			return err
		}
		m.MarriageGuardians = g
	}
	if r.MarriageDate != nil {
		if strings.TrimSpace(*r.MarriageDate) == "" {
			m.MarriageDate = nil
		} else {
			d, err := helper.ParseDateTime(*r.MarriageDate)
			if err != nil {
				return err
			}
			m.MarriageDate = &d
		}
	}
	if r.MarriageLocation != nil {
		m.MarriageLocation = strings.TrimSpace(*r.MarriageLocation)
	}
	if r.MarriagePastorID != nil {
		id, err := parseUUIDPtr(r.MarriagePastorID)
		if err != nil {
			return err
		}
		m.MarriagePastorID = id
	}
	if r.MarriagePastorName != nil {
		m.MarriagePastorName = trimPtr(r.MarriagePastorName)
	}
	if r.MarriageContactEmail != nil {
		m.MarriageContactEmail = trimPtr(r.MarriageContactEmail)
	}
	if r.MarriageStatus != nil {
		m.MarriageStatus = *r.MarriageStatus
	}
	if r.MarriageNotes != nil {
		m.MarriageNotes = trimPtr(r.MarriageNotes)
	}
	return nil
}

// MarshalGuardians serializes the guardians list and enforces the storage cap.
func MarshalGuardians(names []string) (datatypes.JSON, error) {
	if len(names) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	if len(b) > MaxGuardiansJSON {
		return nil, fmt.Errorf("guardians list too long (%d chars serialized, max %d)", len(b), MaxGuardiansJSON)
	}
	return datatypes.JSON(b), nil
}

/* =========================
   RESPONSE
   ========================= */

type MarriageResponse struct {
	MarriageID            string     `json:"marriage_id"`
	MarriageGroomMemberID *uuid.UUID `json:"marriage_groom_member_id,omitempty"`
	MarriageGroomName     string     `json:"marriage_groom_name"`
	MarriageBrideMemberID *uuid.UUID `json:"marriage_bride_member_id,omitempty"`
	MarriageBrideName     string     `json:"marriage_bride_name"`
	MarriageGuardians     []string   `json:"marriage_guardians,omitempty"`
	MarriageDate          *string    `json:"marriage_date,omitempty"`
	MarriageLocation      string     `json:"marriage_location"`
	MarriagePastorID      *uuid.UUID `json:"marriage_pastor_id,omitempty"`
	MarriagePastorName    *string    `json:"marriage_pastor_name,omitempty"`
	MarriageContactEmail  *string    `json:"marriage_contact_email,omitempty"`
	MarriageStatus        string     `json:"marriage_status"`
	MarriageNotes         *string    `json:"marriage_notes,omitempty"`
	MarriageCreatedAt     time.Time  `json:"marriage_created_at"`
	MarriageUpdatedAt     time.Time  `json:"marriage_updated_at"`
}

func ToMarriageResponse(m *model.MarriageServiceModel) MarriageResponse {
	resp := MarriageResponse{
		MarriageID:            m.MarriageID,
		MarriageGroomMemberID: m.MarriageGroomMemberID,
		MarriageGroomName:     m.MarriageGroomName,
		MarriageBrideMemberID: m.MarriageBrideMemberID,
		MarriageBrideName:     m.MarriageBrideName,
		MarriageLocation:      m.MarriageLocation,
		MarriagePastorID:      m.MarriagePastorID,
		MarriagePastorName:    m.MarriagePastorName,
		MarriageContactEmail:  m.MarriageContactEmail,
		MarriageStatus:        m.MarriageStatus,
		MarriageNotes:         m.MarriageNotes,
		MarriageCreatedAt:     m.MarriageCreatedAt,
		MarriageUpdatedAt:     m.MarriageUpdatedAt,
	}
	if len(m.MarriageGuardians) > 0 {
		_ = json.Unmarshal(m.MarriageGuardians, &resp.MarriageGuardians)
	}
	if m.MarriageDate != nil {
		s := helper.FormatDateTime(*m.MarriageDate)
		resp.MarriageDate = &s
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
