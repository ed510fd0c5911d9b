package models

import "time"

type Team struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	InviteCode string    `gorm:"uniqueIndex" json:"invite_code"`
	Banks      JSONArray `gorm:"type:jsonb" json:"banks"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
