package models

import "time"

type BudgetPeriod string

const (
	BudgetWeekly   BudgetPeriod = "weekly"
	BudgetBiweekly BudgetPeriod = "biweekly"
	BudgetMonthly  BudgetPeriod = "monthly"
	BudgetCustom   BudgetPeriod = "custom"
)

type Budget struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	TeamID     uint         `gorm:"index;not null" json:"team_id"`
	CategoryID uint         `gorm:"index;not null" json:"category_id"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Period     BudgetPeriod `gorm:"default:monthly" json:"period"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    *time.Time   `json:"end_date,omitempty"`
	Active     bool         `gorm:"default:true" json:"active"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
}
