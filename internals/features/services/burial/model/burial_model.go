// file: internals/features/services/burial/model/burial_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   BurialServiceModel — maps to table burial_services
   ======================================================= */

type BurialServiceModel struct {
	// Sequential zero-padded PK, e.g. "0000000001"
	BurialID string `json:"burial_id" gorm:"type:varchar(10);primaryKey;column:burial_id"`

	// Requester: a member reference or free-text name
	BurialMemberID      *uuid.UUID `json:"burial_member_id,omitempty" gorm:"type:uuid;column:burial_member_id;index"`
	BurialRequesterName *string    `json:"burial_requester_name,omitempty" gorm:"type:varchar(150);column:burial_requester_name"`
	BurialRelationship  string     `json:"burial_relationship" gorm:"type:varchar(60);not null;column:burial_relationship"`

	// Deceased
	BurialDeceasedName string    `json:"burial_deceased_name" gorm:"type:varchar(150);not null;column:burial_deceased_name"`
	BurialDateDeath    time.Time `json:"burial_date_death" gorm:"type:date;not null;column:burial_date_death"`

	// Schedule
	BurialDate     *time.Time `json:"burial_date,omitempty" gorm:"column:burial_date;index"`
	BurialLocation string     `json:"burial_location" gorm:"type:varchar(200);not null;column:burial_location"`

	// Officiant
	BurialPastorID   *uuid.UUID `json:"burial_pastor_id,omitempty" gorm:"type:uuid;column:burial_pastor_id;index"`
	BurialPastorName *string    `json:"burial_pastor_name,omitempty" gorm:"type:varchar(150);column:burial_pastor_name"`

	// Contact & lifecycle
	BurialContactEmail *string `json:"burial_contact_email,omitempty" gorm:"type:varchar(255);column:burial_contact_email"`
	BurialStatus       string  `json:"burial_status" gorm:"type:varchar(16);not null;default:'pending';column:burial_status;index"`
	BurialNotes        *string `json:"burial_notes,omitempty" gorm:"type:text;column:burial_notes"`

	// Timestamps
	BurialCreatedAt time.Time `json:"burial_created_at" gorm:"column:burial_created_at;not null;autoCreateTime"`
	BurialUpdatedAt time.Time `json:"burial_updated_at" gorm:"column:burial_updated_at;not null;autoUpdateTime"`
}

func (BurialServiceModel) TableName() string {
	return "burial_services"
}
