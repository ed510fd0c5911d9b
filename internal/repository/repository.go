// Package repository defines the persistence interfaces the services and
// analytics layers depend on, plus their GORM implementations. Keeping the
// interfaces here lets the core logic run against in-memory fakes in tests.
package repository

import (
	"context"
	"time"

	"family-budget-go/internal/models"
)

// TransactionFilter narrows List queries. Zero values mean "no filter".
type TransactionFilter struct {
	CategoryID *uint
	Status     models.TransactionStatus
	From       time.Time
	To         time.Time
}

type TeamRepo interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Team, error)
	Save(ctx context.Context, team *models.Team) error
}

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	Save(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, teamID, id uint) (*models.Category, error)
	GetActiveByID(ctx context.Context, teamID, id uint) (*models.Category, error)
	FindActive(ctx context.Context, teamID uint) ([]models.Category, error)
	FindAll(ctx context.Context, teamID uint) ([]models.Category, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, t *models.Transaction) error
	Save(ctx context.Context, t *models.Transaction) error
	// GetByID returns the row regardless of status; deleted transactions
	// stay reachable by direct id lookup.
	GetByID(ctx context.Context, teamID, id uint) (*models.Transaction, error)
	// GetByIDForUpdate takes a row lock so concurrent mutations of the same
	// transaction serialize and the audit trail stays linear.
	GetByIDForUpdate(ctx context.Context, teamID, id uint) (*models.Transaction, error)
	List(ctx context.Context, teamID uint, f TransactionFilter) ([]models.Transaction, error)
	// FindActiveInRange returns active transactions dated in [from, to],
	// optionally restricted to one category.
	FindActiveInRange(ctx context.Context, teamID uint, categoryID *uint, from, to time.Time) ([]models.Transaction, error)
	FindUncategorizedActive(ctx context.Context, teamID uint) ([]models.Transaction, error)
}

type BudgetRepo interface {
	Create(ctx context.Context, b *models.Budget) error
	Save(ctx context.Context, b *models.Budget) error
	GetByID(ctx context.Context, teamID, id uint) (*models.Budget, error)
	FindActive(ctx context.Context, teamID uint) ([]models.Budget, error)
	FindActiveByCategory(ctx context.Context, teamID, categoryID uint) ([]models.Budget, error)
}

type RuleRepo interface {
	Create(ctx context.Context, r *models.Rule) error
	Save(ctx context.Context, r *models.Rule) error
	GetByID(ctx context.Context, teamID, id uint) (*models.Rule, error)
	// FindActiveOrdered returns active rules in creation order, the order
	// the matcher evaluates them in.
	FindActiveOrdered(ctx context.Context, teamID uint) ([]models.Rule, error)
	FindAll(ctx context.Context, teamID uint) ([]models.Rule, error)
}

type AuditLogRepo interface {
	Append(ctx context.Context, entry *models.TransactionAuditLog) error
	ListByTransaction(ctx context.Context, transactionID uint) ([]models.TransactionAuditLog, error)
	ListInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.TransactionAuditLog, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByTeam(ctx context.Context, teamID uint, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, teamID, id uint) error
}

// Manager bundles the repositories and provides the transaction boundary.
// InTx runs fn with a Manager whose repositories share one database
// transaction; returning an error rolls everything back.
type Manager interface {
	Teams() TeamRepo
	Users() UserRepo
	Categories() CategoryRepo
	Transactions() TransactionRepo
	Budgets() BudgetRepo
	Rules() RuleRepo
	AuditLogs() AuditLogRepo
	Notifications() NotificationRepo
	InTx(ctx context.Context, fn func(m Manager) error) error
}
