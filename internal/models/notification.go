package models

import "time"

type NotificationType string

const (
	NotificationAlert    NotificationType = "alert"
	NotificationInfo     NotificationType = "info"
	NotificationReminder NotificationType = "reminder"
)

type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	TeamID        uint             `gorm:"index;not null" json:"team_id"`
	UserID        *uint            `json:"user_id,omitempty"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	Type          NotificationType `gorm:"default:info" json:"type"`
	Read          bool             `gorm:"default:false" json:"read"`
	TransactionID *uint            `json:"transaction_id,omitempty"`
	CategoryID    *uint            `json:"category_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
