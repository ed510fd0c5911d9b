// Package notify delivers budget-alert notifications. The mutation service
// calls a Notifier best-effort: delivery failures are logged by the caller
// and never fail the mutation that triggered them.
package notify

import (
	"context"
	"fmt"

	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
)

// BudgetAlert describes a category pushed over its budget ceiling by a
// transaction mutation.
type BudgetAlert struct {
	TeamID        uint    `json:"team_id"`
	UserID        uint    `json:"user_id"`
	CategoryID    uint    `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	TransactionID uint    `json:"transaction_id"`
	BudgetAmount  float64 `json:"budget_amount"`
	SpentAmount   float64 `json:"spent_amount"`
}

type Notifier interface {
	BudgetExceeded(ctx context.Context, alert BudgetAlert) error
}

// DBNotifier records alerts as in-app notification rows.
type DBNotifier struct {
	notifications repository.NotificationRepo
}

func NewDBNotifier(notifications repository.NotificationRepo) *DBNotifier {
	return &DBNotifier{notifications: notifications}
}

func (n *DBNotifier) BudgetExceeded(ctx context.Context, alert BudgetAlert) error {
	categoryID := alert.CategoryID
	transactionID := alert.TransactionID
	note := &models.Notification{
		TeamID: alert.TeamID,
		Title:  fmt.Sprintf("Budget exceeded: %s", alert.CategoryName),
		Body: fmt.Sprintf("Spending in %s reached %.2f of a %.2f budget.",
			alert.CategoryName, alert.SpentAmount, alert.BudgetAmount),
		Type:          models.NotificationAlert,
		TransactionID: &transactionID,
		CategoryID:    &categoryID,
	}
	return n.notifications.Create(ctx, note)
}

// Multi fans an alert out to several notifiers, returning the first error
// after trying all of them.
type Multi []Notifier

func (m Multi) BudgetExceeded(ctx context.Context, alert BudgetAlert) error {
	var firstErr error
	for _, n := range m {
		if err := n.BudgetExceeded(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
