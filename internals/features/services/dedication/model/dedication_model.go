// file: internals/features/services/dedication/model/dedication_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =======================================================
   ChildDedicationModel — maps to table child_dedications
   ======================================================= */

type ChildDedicationModel struct {
	// Sequential zero-padded PK
	DedicationID string `json:"dedication_id" gorm:"type:varchar(10);primaryKey;column:dedication_id"`

	// Child sub-record
	DedicationChildName   string    `json:"dedication_child_name" gorm:"type:varchar(150);not null;column:dedication_child_name"`
	DedicationChildDOB    time.Time `json:"dedication_child_dob" gorm:"type:date;not null;column:dedication_child_dob"`
	DedicationChildGender string    `json:"dedication_child_gender" gorm:"type:varchar(10);not null;column:dedication_child_gender"`

	// Parents: member references or free-text names
	DedicationFatherMemberID *uuid.UUID `json:"dedication_father_member_id,omitempty" gorm:"type:uuid;column:dedication_father_member_id;index"`
	DedicationFatherName     *string    `json:"dedication_father_name,omitempty" gorm:"type:varchar(150);column:dedication_father_name"`
	DedicationMotherMemberID *uuid.UUID `json:"dedication_mother_member_id,omitempty" gorm:"type:uuid;column:dedication_mother_member_id;index"`
	DedicationMotherName     *string    `json:"dedication_mother_name,omitempty" gorm:"type:varchar(150);column:dedication_mother_name"`

	// Sponsors/godparents, serialized list (capped at 1000 chars)
	DedicationSponsors datatypes.JSON `json:"dedication_sponsors,omitempty" gorm:"column:dedication_sponsors"`

	// Schedule
	DedicationDate     *time.Time `json:"dedication_date,omitempty" gorm:"column:dedication_date;index"`
	DedicationLocation string     `json:"dedication_location" gorm:"type:varchar(200);not null;column:dedication_location"`

	// Officiant
	DedicationPastorID   *uuid.UUID `json:"dedication_pastor_id,omitempty" gorm:"type:uuid;column:dedication_pastor_id;index"`
	DedicationPastorName *string    `json:"dedication_pastor_name,omitempty" gorm:"type:varchar(150);column:dedication_pastor_name"`

	// Contact & lifecycle
	DedicationContactEmail *string `json:"dedication_contact_email,omitempty" gorm:"type:varchar(255);column:dedication_contact_email"`
	DedicationStatus       string  `json:"dedication_status" gorm:"type:varchar(16);not null;default:'pending';column:dedication_status;index"`
	DedicationNotes        *string `json:"dedication_notes,omitempty" gorm:"type:text;column:dedication_notes"`

	// Timestamps
	DedicationCreatedAt time.Time `json:"dedication_created_at" gorm:"column:dedication_created_at;not null;autoCreateTime"`
	DedicationUpdatedAt time.Time `json:"dedication_updated_at" gorm:"column:dedication_updated_at;not null;autoUpdateTime"`
}

func (ChildDedicationModel) TableName() string {
	return "child_dedications"
}
