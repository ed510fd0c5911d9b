package models

import "time"

type TransactionStatus string

const (
	TransactionActive  TransactionStatus = "active"
	TransactionDeleted TransactionStatus = "deleted"
	TransactionPending TransactionStatus = "pending"
)

type TransactionSource string

const (
	SourceManual    TransactionSource = "manual"
	SourceStatement TransactionSource = "statement"
	SourceTicket    TransactionSource = "ticket"
	SourceOCR       TransactionSource = "ocr"
	SourceFile      TransactionSource = "file"
)

// Transaction is an expense recorded by a team member. Amount is always
// stored non-negative; deletion is a status change, never a row delete.
type Transaction struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	TeamID       uint              `gorm:"index;not null" json:"team_id"`
	UserID       uint              `gorm:"index;not null" json:"user_id"`
	CategoryID   *uint             `gorm:"index" json:"category_id,omitempty"`
	Amount       float64           `gorm:"not null" json:"amount"`
	Description  string            `json:"description"`
	Date         time.Time         `gorm:"index;not null" json:"date"`
	Bank         string            `json:"bank"`
	Source       TransactionSource `gorm:"default:manual" json:"source"`
	Status       TransactionStatus `gorm:"index;default:active" json:"status"`
	AISuggested  bool              `gorm:"default:false" json:"ai_suggested"`
	AIConfidence float64           `json:"ai_confidence"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}
