package models

import "time"

type RuleField string

const (
	RuleFieldDescription RuleField = "description"
	RuleFieldAmount      RuleField = "amount"
	RuleFieldDate        RuleField = "date"
)

// Rule is an auto-categorization directive. Rules are evaluated in creation
// order (ascending id); the first match wins.
type Rule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeamID     uint      `gorm:"index;not null" json:"team_id"`
	Name       string    `json:"name"`
	Field      RuleField `gorm:"not null" json:"field"`
	MatchText  string    `gorm:"not null" json:"match_text"`
	CategoryID uint      `gorm:"not null" json:"category_id"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
}
