package models

import "time"

// AuditLog records collection mutations after the fact. Writes are best-effort:
// a failed audit insert never fails the operation it describes.
type AuditLog struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string    `gorm:"not null" json:"action"`
	SetNum    string    `gorm:"size:20" json:"set_num"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
