package models

import "time"

type ChangeType string

const (
	ChangeCreated         ChangeType = "created"
	ChangeUpdated         ChangeType = "updated"
	ChangeDeleted         ChangeType = "deleted"
	ChangeCategoryChanged ChangeType = "category_changed"
)

// TransactionAuditLog is append-only. Rows are written in the same database
// transaction as the mutation they describe and are never updated or deleted.
type TransactionAuditLog struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TransactionID uint       `gorm:"index;not null" json:"transaction_id"`
	UserID        uint       `gorm:"not null" json:"user_id"`
	ChangeType    ChangeType `gorm:"not null" json:"change_type"`
	OldValue      Snapshot   `gorm:"type:jsonb" json:"old_value,omitempty"`
	NewValue      Snapshot   `gorm:"type:jsonb" json:"new_value,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
}
