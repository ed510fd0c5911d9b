package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
)

// GormManager implements Manager on a *gorm.DB handle.
type GormManager struct {
	db *gorm.DB
}

func NewGormManager(db *gorm.DB) *GormManager {
	return &GormManager{db: db}
}

func (m *GormManager) Teams() TeamRepo                 { return &gormTeams{db: m.db} }
func (m *GormManager) Users() UserRepo                 { return &gormUsers{db: m.db} }
func (m *GormManager) Categories() CategoryRepo        { return &gormCategories{db: m.db} }
func (m *GormManager) Transactions() TransactionRepo   { return &gormTransactions{db: m.db} }
func (m *GormManager) Budgets() BudgetRepo             { return &gormBudgets{db: m.db} }
func (m *GormManager) Rules() RuleRepo                 { return &gormRules{db: m.db} }
func (m *GormManager) AuditLogs() AuditLogRepo         { return &gormAuditLogs{db: m.db} }
func (m *GormManager) Notifications() NotificationRepo { return &gormNotifications{db: m.db} }

func (m *GormManager) InTx(ctx context.Context, fn func(Manager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormManager{db: tx})
	})
}

// --- teams ---

type gormTeams struct{ db *gorm.DB }

func (r *gormTeams) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *gormTeams) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("team", id)
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *gormTeams) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("team", 0)
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *gormTeams) Save(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// --- users ---

type gormUsers struct{ db *gorm.DB }

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("user", 0)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --- categories ---

type gormCategories struct{ db *gorm.DB }

func (r *gormCategories) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormCategories) Save(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormCategories) GetByID(ctx context.Context, teamID, id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormCategories) GetActiveByID(ctx context.Context, teamID, id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ? AND active = ?", id, teamID, true).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormCategories) FindActive(ctx context.Context, teamID uint) ([]models.Category, error) {
	var cats []models.Category
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND active = ?", teamID, true).
		Order("id asc").Find(&cats).Error
	return cats, err
}

func (r *gormCategories) FindAll(ctx context.Context, teamID uint) ([]models.Category, error) {
	var cats []models.Category
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id asc").Find(&cats).Error
	return cats, err
}

// --- transactions ---

type gormTransactions struct{ db *gorm.DB }

func (r *gormTransactions) Create(ctx context.Context, t *models.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *gormTransactions) Save(ctx context.Context, t *models.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *gormTransactions) GetByID(ctx context.Context, teamID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormTransactions) GetByIDForUpdate(ctx context.Context, teamID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND team_id = ?", id, teamID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormTransactions) List(ctx context.Context, teamID uint, f TransactionFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if !f.From.IsZero() {
		query = query.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		query = query.Where("date <= ?", f.To)
	}
	var txs []models.Transaction
	err := query.Order("date desc, id desc").Find(&txs).Error
	return txs, err
}

func (r *gormTransactions) FindActiveInRange(ctx context.Context, teamID uint, categoryID *uint, from, to time.Time) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ? AND date >= ? AND date <= ?",
			teamID, models.TransactionActive, from, to)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	var txs []models.Transaction
	err := query.Order("date asc, id asc").Find(&txs).Error
	return txs, err
}

func (r *gormTransactions) FindUncategorizedActive(ctx context.Context, teamID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ? AND category_id IS NULL",
			teamID, models.TransactionActive).
		Order("id asc").Find(&txs).Error
	return txs, err
}

// --- budgets ---

type gormBudgets struct{ db *gorm.DB }

func (r *gormBudgets) Create(ctx context.Context, b *models.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *gormBudgets) Save(ctx context.Context, b *models.Budget) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *gormBudgets) GetByID(ctx context.Context, teamID, id uint) (*models.Budget, error) {
	var b models.Budget
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("budget", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *gormBudgets) FindActive(ctx context.Context, teamID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND active = ?", teamID, true).
		Order("id asc").Find(&budgets).Error
	return budgets, err
}

func (r *gormBudgets) FindActiveByCategory(ctx context.Context, teamID, categoryID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND category_id = ? AND active = ?", teamID, categoryID, true).
		Order("id asc").Find(&budgets).Error
	return budgets, err
}

// --- rules ---

type gormRules struct{ db *gorm.DB }

func (r *gormRules) Create(ctx context.Context, rule *models.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *gormRules) Save(ctx context.Context, rule *models.Rule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *gormRules) GetByID(ctx context.Context, teamID, id uint) (*models.Rule, error) {
	var rule models.Rule
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("rule", id)
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *gormRules) FindActiveOrdered(ctx context.Context, teamID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND active = ?", teamID, true).
		Order("id asc").Find(&rules).Error
	return rules, err
}

func (r *gormRules) FindAll(ctx context.Context, teamID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id asc").Find(&rules).Error
	return rules, err
}

// --- audit logs ---

type gormAuditLogs struct{ db *gorm.DB }

func (r *gormAuditLogs) Append(ctx context.Context, entry *models.TransactionAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormAuditLogs) ListByTransaction(ctx context.Context, transactionID uint) ([]models.TransactionAuditLog, error) {
	var entries []models.TransactionAuditLog
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("id asc").Find(&entries).Error
	return entries, err
}

func (r *gormAuditLogs) ListInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.TransactionAuditLog, error) {
	var entries []models.TransactionAuditLog
	err := r.db.WithContext(ctx).
		Joins("JOIN transactions ON transactions.id = transaction_audit_logs.transaction_id").
		Where("transactions.team_id = ?", teamID).
		Where("transaction_audit_logs.created_at >= ? AND transaction_audit_logs.created_at <= ?", from, to).
		Order("transaction_audit_logs.id asc").
		Find(&entries).Error
	return entries, err
}

// --- notifications ---

type gormNotifications struct{ db *gorm.DB }

func (r *gormNotifications) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormNotifications) ListByTeam(ctx context.Context, teamID uint, unreadOnly bool) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var notes []models.Notification
	err := query.Order("id desc").Find(&notes).Error
	return notes, err
}

func (r *gormNotifications) MarkRead(ctx context.Context, teamID, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND team_id = ?", id, teamID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("notification", id)
	}
	return nil
}
