// file: internals/features/services/marriage/model/marriage_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   MarriageServiceModel — maps to table marriage_services
   ======================================================= */

type MarriageServiceModel struct {
	// Sequential zero-padded PK
	MarriageID string `json:"marriage_id" gorm:"type:varchar(10);primaryKey;column:marriage_id"`

	// Groom: member reference or free-text name
	MarriageGroomMemberID *uuid.UUID `json:"marriage_groom_member_id,omitempty" gorm:"type:uuid;column:marriage_groom_member_id;index"`
	MarriageGroomName     string     `json:"marriage_groom_name" gorm:"type:varchar(150);not null;column:marriage_groom_name"`

	// Bride: member reference or free-text name
	MarriageBrideMemberID *uuid.UUID `json:"marriage_bride_member_id,omitempty" gorm:"type:uuid;column:marriage_bride_member_id;index"`
	MarriageBrideName     string     `json:"marriage_bride_name" gorm:"type:varchar(150);not null;column:marriage_bride_name"`

	// Guardians/witnesses, serialized list (capped at 1000 chars)
	MarriageGuardians datatypes.JSON `json:"marriage_guardians,omitempty" gorm:"column:marriage_guardians"`

	// Schedule
	MarriageDate     *time.Time `json:"marriage_date,omitempty" gorm:"column:marriage_date;index"`
	MarriageLocation string     `json:"marriage_location" gorm:"type:varchar(200);not null;column:marriage_location"`

	// Officiant
	MarriagePastorID   *uuid.UUID `json:"marriage_pastor_id,omitempty" gorm:"type:uuid;column:marriage_pastor_id;index"`
	MarriagePastorName *string    `json:"marriage_pastor_name,omitempty" gorm:"type:varchar(150);column:marriage_pastor_name"`

	// Contact & lifecycle
	MarriageContactEmail *string `json:"marriage_contact_email,omitempty" gorm:"type:varchar(255);column:marriage_contact_email"`
	MarriageStatus       string  `json:"marriage_status" gorm:"type:varchar(16);not null;default:'pending';column:marriage_status;index"`
	MarriageNotes        *string `json:"marriage_notes,omitempty" gorm:"type:text;column:marriage_notes"`

	// Timestamps
	MarriageCreatedAt time.Time `json:"marriage_created_at" gorm:"column:marriage_created_at;not null;autoCreateTime"`
	MarriageUpdatedAt time.Time `json:"marriage_updated_at" gorm:"column:marriage_updated_at;not null;autoUpdateTime"`
}

func (MarriageServiceModel) TableName() string {
	return "marriage_services"
}
