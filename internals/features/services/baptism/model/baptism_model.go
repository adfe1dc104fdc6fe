// file: internals/features/services/baptism/model/baptism_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   BaptismServiceModel — maps to table baptism_services
   ======================================================= */

type BaptismServiceModel struct {
	// Sequential zero-padded PK
	BaptismID string `json:"baptism_id" gorm:"type:varchar(10);primaryKey;column:baptism_id"`

	// Candidate: member reference or free-text name
	BaptismMemberID      *uuid.UUID `json:"baptism_member_id,omitempty" gorm:"type:uuid;column:baptism_member_id;index"`
	BaptismCandidateName *string    `json:"baptism_candidate_name,omitempty" gorm:"type:varchar(150);column:baptism_candidate_name"`

	// Schedule
	BaptismDate     *time.Time `json:"baptism_date,omitempty" gorm:"column:baptism_date;index"`
	BaptismLocation string     `json:"baptism_location" gorm:"type:varchar(200);not null;column:baptism_location"`

	// Officiant
	BaptismPastorID   *uuid.UUID `json:"baptism_pastor_id,omitempty" gorm:"type:uuid;column:baptism_pastor_id;index"`
	BaptismPastorName *string    `json:"baptism_pastor_name,omitempty" gorm:"type:varchar(150);column:baptism_pastor_name"`

	// Contact & lifecycle
	BaptismContactEmail *string `json:"baptism_contact_email,omitempty" gorm:"type:varchar(255);column:baptism_contact_email"`
	BaptismStatus       string  `json:"baptism_status" gorm:"type:varchar(16);not null;default:'pending';column:baptism_status;index"`
	BaptismNotes        *string `json:"baptism_notes,omitempty" gorm:"type:text;column:baptism_notes"`

	// Timestamps
	BaptismCreatedAt time.Time `json:"baptism_created_at" gorm:"column:baptism_created_at;not null;autoCreateTime"`
	BaptismUpdatedAt time.Time `json:"baptism_updated_at" gorm:"column:baptism_updated_at;not null;autoUpdateTime"`
}

func (BaptismServiceModel) TableName() string {
	return "baptism_services"
}
