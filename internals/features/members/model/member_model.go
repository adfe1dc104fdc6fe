// file: internals/features/members/model/member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   Civil status (matches civil_status_enum in DB)
   ======================================================= */

const (
	CivilStatusSingle   = "single"
	CivilStatusMarried  = "married"
	CivilStatusWidowed  = "widowed"
	CivilStatusDivorced = "divorced"
)

func IsValidCivilStatus(s string) bool {
	switch s {
	case CivilStatusSingle, CivilStatusMarried, CivilStatusWidowed, CivilStatusDivorced:
		return true
	}
	return false
}

/* =======================================================
   MemberModel — maps to table members
   ======================================================= */

type MemberModel struct {
	// PK
	MemberID uuid.UUID `json:"member_id" gorm:"type:uuid;primaryKey;column:member_id"`

	// Identity
	MemberFullName string  `json:"member_full_name" gorm:"type:varchar(150);not null;column:member_full_name"`
	MemberEmail    *string `json:"member_email,omitempty" gorm:"type:varchar(255);column:member_email"`
	MemberPhone    *string `json:"member_phone,omitempty" gorm:"type:varchar(30);column:member_phone"`
	MemberGender   *string `json:"member_gender,omitempty" gorm:"type:varchar(10);column:member_gender"`
	MemberAddress  *string `json:"member_address,omitempty" gorm:"type:text;column:member_address"`

	// Dates
	MemberBirthDate *time.Time `json:"member_birth_date,omitempty" gorm:"type:date;column:member_birth_date"`

	// Derived by marriage lifecycle: set to 'married' when a marriage service
	// the member takes part in completes.
	MemberCivilStatus string `json:"member_civil_status" gorm:"type:varchar(16);not null;default:'single';column:member_civil_status"`

	// Timestamps
	MemberCreatedAt time.Time `json:"member_created_at" gorm:"column:member_created_at;not null;autoCreateTime"`
	MemberUpdatedAt time.Time `json:"member_updated_at" gorm:"column:member_updated_at;not null;autoUpdateTime"`
}

func (MemberModel) TableName() string {
	return "members"
}

func (m *MemberModel) BeforeCreate(_ *gorm.DB) error {
	if m.MemberID == uuid.Nil {
		m.MemberID = uuid.New()
	}
	return nil
}
