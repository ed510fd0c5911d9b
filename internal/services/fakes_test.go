package services

import (
	"context"
	"sync"
	"time"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
	"family-budget-go/internal/notify"
	"family-budget-go/internal/repository"
)

// memManager is an in-memory repository.Manager for service tests. InTx is
// a no-op boundary: fn runs against the same state, which is enough for the
// paths under test.
type memManager struct {
	mu sync.Mutex

	teams         map[uint]*models.Team
	users         map[uint]*models.User
	categories    map[uint]*models.Category
	transactions  map[uint]*models.Transaction
	budgets       map[uint]*models.Budget
	rules         map[uint]*models.Rule
	auditLogs     []models.TransactionAuditLog
	notifications []models.Notification

	nextID uint
}

func newMemManager() *memManager {
	return &memManager{
		teams:        make(map[uint]*models.Team),
		users:        make(map[uint]*models.User),
		categories:   make(map[uint]*models.Category),
		transactions: make(map[uint]*models.Transaction),
		budgets:      make(map[uint]*models.Budget),
		rules:        make(map[uint]*models.Rule),
	}
}

func (m *memManager) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memManager) Teams() repository.TeamRepo                 { return (*memTeams)(m) }
func (m *memManager) Users() repository.UserRepo                 { return (*memUsers)(m) }
func (m *memManager) Categories() repository.CategoryRepo        { return (*memCategories)(m) }
func (m *memManager) Transactions() repository.TransactionRepo   { return (*memTransactions)(m) }
func (m *memManager) Budgets() repository.BudgetRepo             { return (*memBudgets)(m) }
func (m *memManager) Rules() repository.RuleRepo                 { return (*memRules)(m) }
func (m *memManager) AuditLogs() repository.AuditLogRepo         { return (*memAuditLogs)(m) }
func (m *memManager) Notifications() repository.NotificationRepo { return (*memNotifications)(m) }

func (m *memManager) InTx(ctx context.Context, fn func(repository.Manager) error) error {
	return fn(m)
}

// seed helpers

func (m *memManager) addTeam(banks ...string) *models.Team {
	team := &models.Team{ID: m.id(), Name: "test team", InviteCode: "inv", Banks: banks}
	m.teams[team.ID] = team
	return team
}

func (m *memManager) addCategory(teamID uint, name string, active bool) *models.Category {
	c := &models.Category{ID: m.id(), TeamID: teamID, Name: name, Active: active}
	m.categories[c.ID] = c
	return c
}

func (m *memManager) addRule(teamID uint, field models.RuleField, matchText string, categoryID uint) *models.Rule {
	r := &models.Rule{ID: m.id(), TeamID: teamID, Field: field, MatchText: matchText, CategoryID: categoryID, Active: true}
	m.rules[r.ID] = r
	return r
}

func (m *memManager) addBudget(teamID, categoryID uint, amount float64, period models.BudgetPeriod) *models.Budget {
	b := &models.Budget{ID: m.id(), TeamID: teamID, CategoryID: categoryID, Amount: amount, Period: period, Active: true,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	m.budgets[b.ID] = b
	return b
}

// --- teams ---

type memTeams memManager

func (r *memTeams) Create(ctx context.Context, team *models.Team) error {
	m := (*memManager)(r)
	team.ID = m.id()
	m.teams[team.ID] = team
	return nil
}

func (r *memTeams) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	if t, ok := r.teams[id]; ok {
		return t, nil
	}
	return nil, apperrors.NewNotFound("team", id)
}

func (r *memTeams) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.InviteCode == code {
			return t, nil
		}
	}
	return nil, apperrors.NewNotFound("team", 0)
}

func (r *memTeams) Save(ctx context.Context, team *models.Team) error {
	r.teams[team.ID] = team
	return nil
}

// --- users ---

type memUsers memManager

func (r *memUsers) Create(ctx context.Context, user *models.User) error {
	m := (*memManager)(r)
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (r *memUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFound("user", id)
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.NewNotFound("user", 0)
}

// --- categories ---

type memCategories memManager

func (r *memCategories) Create(ctx context.Context, c *models.Category) error {
	m := (*memManager)(r)
	c.ID = m.id()
	m.categories[c.ID] = c
	return nil
}

func (r *memCategories) Save(ctx context.Context, c *models.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *memCategories) GetByID(ctx context.Context, teamID, id uint) (*models.Category, error) {
	if c, ok := r.categories[id]; ok && c.TeamID == teamID {
		return c, nil
	}
	return nil, apperrors.NewNotFound("category", id)
}

func (r *memCategories) GetActiveByID(ctx context.Context, teamID, id uint) (*models.Category, error) {
	if c, ok := r.categories[id]; ok && c.TeamID == teamID && c.Active {
		return c, nil
	}
	return nil, apperrors.NewNotFound("category", id)
}

func (r *memCategories) FindActive(ctx context.Context, teamID uint) ([]models.Category, error) {
	return r.find(teamID, true), nil
}

func (r *memCategories) FindAll(ctx context.Context, teamID uint) ([]models.Category, error) {
	return r.find(teamID, false), nil
}

func (r *memCategories) find(teamID uint, activeOnly bool) []models.Category {
	var out []models.Category
	for id := uint(1); id <= r.nextID; id++ {
		c, ok := r.categories[id]
		if !ok || c.TeamID != teamID {
			continue
		}
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	return out
}

// --- transactions ---

type memTransactions memManager

func (r *memTransactions) Create(ctx context.Context, t *models.Transaction) error {
	m := (*memManager)(r)
	t.ID = m.id()
	copied := *t
	m.transactions[t.ID] = &copied
	return nil
}

func (r *memTransactions) Save(ctx context.Context, t *models.Transaction) error {
	copied := *t
	r.transactions[t.ID] = &copied
	return nil
}

func (r *memTransactions) GetByID(ctx context.Context, teamID, id uint) (*models.Transaction, error) {
	if t, ok := r.transactions[id]; ok && t.TeamID == teamID {
		copied := *t
		return &copied, nil
	}
	return nil, apperrors.NewNotFound("transaction", id)
}

func (r *memTransactions) GetByIDForUpdate(ctx context.Context, teamID, id uint) (*models.Transaction, error) {
	return r.GetByID(ctx, teamID, id)
}

func (r *memTransactions) List(ctx context.Context, teamID uint, f repository.TransactionFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	for id := uint(1); id <= r.nextID; id++ {
		t, ok := r.transactions[id]
		if !ok || t.TeamID != teamID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.Date.After(f.To) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTransactions) FindActiveInRange(ctx context.Context, teamID uint, categoryID *uint, from, to time.Time) ([]models.Transaction, error) {
	return r.List(ctx, teamID, repository.TransactionFilter{
		Status:     models.TransactionActive,
		CategoryID: categoryID,
		From:       from,
		To:         to,
	})
}

func (r *memTransactions) FindUncategorizedActive(ctx context.Context, teamID uint) ([]models.Transaction, error) {
	var out []models.Transaction
	for id := uint(1); id <= r.nextID; id++ {
		t, ok := r.transactions[id]
		if !ok || t.TeamID != teamID || t.Status != models.TransactionActive || t.CategoryID != nil {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

// --- budgets ---

type memBudgets memManager

func (r *memBudgets) Create(ctx context.Context, b *models.Budget) error {
	m := (*memManager)(r)
	b.ID = m.id()
	m.budgets[b.ID] = b
	return nil
}

func (r *memBudgets) Save(ctx context.Context, b *models.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *memBudgets) GetByID(ctx context.Context, teamID, id uint) (*models.Budget, error) {
	if b, ok := r.budgets[id]; ok && b.TeamID == teamID {
		return b, nil
	}
	return nil, apperrors.NewNotFound("budget", id)
}

func (r *memBudgets) FindActive(ctx context.Context, teamID uint) ([]models.Budget, error) {
	var out []models.Budget
	for id := uint(1); id <= r.nextID; id++ {
		b, ok := r.budgets[id]
		if ok && b.TeamID == teamID && b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBudgets) FindActiveByCategory(ctx context.Context, teamID, categoryID uint) ([]models.Budget, error) {
	var out []models.Budget
	for id := uint(1); id <= r.nextID; id++ {
		b, ok := r.budgets[id]
		if ok && b.TeamID == teamID && b.CategoryID == categoryID && b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

// --- rules ---

type memRules memManager

func (r *memRules) Create(ctx context.Context, rule *models.Rule) error {
	m := (*memManager)(r)
	rule.ID = m.id()
	m.rules[rule.ID] = rule
	return nil
}

func (r *memRules) Save(ctx context.Context, rule *models.Rule) error {
	r.rules[rule.ID] = rule
	return nil
}

func (r *memRules) GetByID(ctx context.Context, teamID, id uint) (*models.Rule, error) {
	if rule, ok := r.rules[id]; ok && rule.TeamID == teamID {
		return rule, nil
	}
	return nil, apperrors.NewNotFound("rule", id)
}

func (r *memRules) FindActiveOrdered(ctx context.Context, teamID uint) ([]models.Rule, error) {
	var out []models.Rule
	for id := uint(1); id <= r.nextID; id++ {
		rule, ok := r.rules[id]
		if ok && rule.TeamID == teamID && rule.Active {
			out = append(out, *rule)
		}
	}
	return out, nil
}

func (r *memRules) FindAll(ctx context.Context, teamID uint) ([]models.Rule, error) {
	var out []models.Rule
	for id := uint(1); id <= r.nextID; id++ {
		rule, ok := r.rules[id]
		if ok && rule.TeamID == teamID {
			out = append(out, *rule)
		}
	}
	return out, nil
}

// --- audit logs ---

type memAuditLogs memManager

func (r *memAuditLogs) Append(ctx context.Context, entry *models.TransactionAuditLog) error {
	m := (*memManager)(r)
	entry.ID = m.id()
	entry.CreatedAt = time.Now()
	m.auditLogs = append(m.auditLogs, *entry)
	return nil
}

func (r *memAuditLogs) ListByTransaction(ctx context.Context, transactionID uint) ([]models.TransactionAuditLog, error) {
	var out []models.TransactionAuditLog
	for _, e := range r.auditLogs {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditLogs) ListInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.TransactionAuditLog, error) {
	var out []models.TransactionAuditLog
	for _, e := range r.auditLogs {
		t, ok := r.transactions[e.TransactionID]
		if !ok || t.TeamID != teamID {
			continue
		}
		if e.CreatedAt.Before(from) || e.CreatedAt.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// --- notifications ---

type memNotifications memManager

func (r *memNotifications) Create(ctx context.Context, n *models.Notification) error {
	m := (*memManager)(r)
	n.ID = m.id()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (r *memNotifications) ListByTeam(ctx context.Context, teamID uint, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.TeamID != teamID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *memNotifications) MarkRead(ctx context.Context, teamID, id uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].TeamID == teamID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return apperrors.NewNotFound("notification", id)
}

// recordingNotifier captures budget alerts for assertions.
type recordingNotifier struct {
	alerts []notify.BudgetAlert
}

func (n *recordingNotifier) BudgetExceeded(ctx context.Context, alert notify.BudgetAlert) error {
	n.alerts = append(n.alerts, alert)
	return nil
}
