// file: internals/features/services/core/archive.go
package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Archive-before-delete
   ========================= */

// ServiceArchiveModel keeps the full pre-delete row as a JSON snapshot, keyed
// by the original id. Manual retention, not soft delete: the source row is
// hard-deleted afterwards.
type ServiceArchiveModel struct {
	ArchiveID   uuid.UUID      `json:"archive_id" gorm:"type:uuid;primaryKey;column:archive_id"`
	ServiceType string         `json:"service_type" gorm:"type:varchar(32);not null;column:service_type;index"`
	OriginalID  string         `json:"original_id" gorm:"type:varchar(36);not null;column:original_id;index"`
	Snapshot    datatypes.JSON `json:"snapshot" gorm:"column:snapshot;not null"`
	ArchivedAt  time.Time      `json:"archived_at" gorm:"column:archived_at;not null;autoCreateTime"`
}

func (ServiceArchiveModel) TableName() string {
	return "service_archives"
}

func (m *ServiceArchiveModel) BeforeCreate(_ *gorm.DB) error {
	if m.ArchiveID == uuid.Nil {
		m.ArchiveID = uuid.New()
	}
	return nil
}

// ArchiveThenDelete snapshots row into service_archives and hard-deletes the
// source in one transaction. A failed archive aborts the delete.
func ArchiveThenDelete(db *gorm.DB, serviceType, originalID string, row any) error {
	snapshot, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		arch := ServiceArchiveModel{
			ServiceType: serviceType,
			OriginalID:  originalID,
			Snapshot:    datatypes.JSON(snapshot),
		}
		if err := tx.Create(&arch).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(row).Error
	})
}
