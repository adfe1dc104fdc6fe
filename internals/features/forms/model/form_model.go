// file: internals/features/forms/model/form_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =======================================================
   Form types & statuses
   ======================================================= */

const (
	FormTypeScheduleChange = "schedule_change"
	FormTypePrayerRequest  = "prayer_request"
	FormTypeMessage        = "message"
)

const (
	FormStatusPending  = "pending"
	FormStatusApproved = "approved"
	FormStatusRejected = "rejected"
	FormStatusRead     = "read"
)

func IsValidFormType(s string) bool {
	switch s {
	case FormTypeScheduleChange, FormTypePrayerRequest, FormTypeMessage:
		return true
	}
	return false
}

func IsValidFormStatus(s string) bool {
	switch s {
	case FormStatusPending, FormStatusApproved, FormStatusRejected, FormStatusRead:
		return true
	}
	return false
}

/* =======================================================
   FormSubmissionModel — maps to table form_submissions
   ======================================================= */

type FormSubmissionModel struct {
	// PK
	FormID uuid.UUID `json:"form_id" gorm:"type:uuid;primaryKey;column:form_id"`

	FormType string `json:"form_type" gorm:"type:varchar(32);not null;column:form_type;index"`

	// Submitter: member reference or guest name/email
	FormMemberID       *uuid.UUID `json:"form_member_id,omitempty" gorm:"type:uuid;column:form_member_id;index"`
	FormSubmitterName  *string    `json:"form_submitter_name,omitempty" gorm:"type:varchar(150);column:form_submitter_name"`
	FormSubmitterEmail *string    `json:"form_submitter_email,omitempty" gorm:"type:varchar(255);column:form_submitter_email"`

	// Free-form payload; schedule_change carries service_type/service_id/dates
	FormData datatypes.JSON `json:"form_data" gorm:"column:form_data;not null"`

	// Review
	FormStatus     string  `json:"form_status" gorm:"type:varchar(16);not null;default:'pending';column:form_status;index"`
	FormAdminNotes *string `json:"form_admin_notes,omitempty" gorm:"type:text;column:form_admin_notes"`
	FormReviewedBy *string `json:"form_reviewed_by,omitempty" gorm:"type:varchar(150);column:form_reviewed_by"`

	// Timestamps
	FormCreatedAt time.Time `json:"form_created_at" gorm:"column:form_created_at;not null;autoCreateTime"`
	FormUpdatedAt time.Time `json:"form_updated_at" gorm:"column:form_updated_at;not null;autoUpdateTime"`
}

func (FormSubmissionModel) TableName() string {
	return "form_submissions"
}

func (m *FormSubmissionModel) BeforeCreate(_ *gorm.DB) error {
	if m.FormID == uuid.Nil {
		m.FormID = uuid.New()
	}
	return nil
}
