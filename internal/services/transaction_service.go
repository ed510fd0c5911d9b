package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"family-budget-go/internal/analytics"
	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
	"family-budget-go/internal/notify"
	"family-budget-go/internal/repository"
	"family-budget-go/internal/rules"
)

// TransactionService is the only path by which transactions are created,
// updated or soft-deleted. Every successful mutation writes exactly one
// audit row inside the same database transaction as the change itself.
type TransactionService struct {
	repos    repository.Manager
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewTransactionService(repos repository.Manager, notifier notify.Notifier, logger *slog.Logger) *TransactionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionService{repos: repos, notifier: notifier, logger: logger}
}

// CreateInput carries the caller-supplied fields for a new transaction.
type CreateInput struct {
	Amount       float64
	Description  string
	CategoryID   *uint
	Date         time.Time
	Bank         string
	Source       models.TransactionSource
	AISuggested  bool
	AIConfidence float64
}

// UpdatePatch is an explicit partial update: nil fields are untouched.
type UpdatePatch struct {
	Amount      *float64
	Description *string
	CategoryID  *uint
	Date        *time.Time
	Bank        *string
}

// BatchItemError reports a failed item of a batch create by position.
type BatchItemError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type BatchResult struct {
	Created []models.Transaction `json:"created"`
	Errors  []BatchItemError     `json:"errors"`
}

// Create validates, categorizes and stores a transaction. When no category
// is supplied the team's active rules are applied; the first matching rule
// decides. The amount is stored as its absolute value regardless of sign.
func (s *TransactionService) Create(ctx context.Context, teamID, userID uint, in CreateInput) (*models.Transaction, error) {
	var created *models.Transaction

	err := s.repos.InTx(ctx, func(m repository.Manager) error {
		team, err := m.Teams().GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := validateBank(in.Bank, team.Banks); err != nil {
			return err
		}
		if in.Date.IsZero() {
			return apperrors.NewValidation("date", "date is required")
		}

		categoryID := in.CategoryID
		ruleApplied := false
		if categoryID != nil {
			if _, err := m.Categories().GetActiveByID(ctx, teamID, *categoryID); err != nil {
				return err
			}
		} else {
			teamRules, err := m.Rules().FindActiveOrdered(ctx, teamID)
			if err != nil {
				return err
			}
			categoryID = rules.Match(rules.Candidate{
				Description: in.Description,
				Amount:      math.Abs(in.Amount),
				Date:        in.Date,
			}, teamRules)
			ruleApplied = categoryID != nil
		}

		source := in.Source
		if source == "" {
			source = models.SourceManual
		}

		t := &models.Transaction{
			TeamID:       teamID,
			UserID:       userID,
			CategoryID:   categoryID,
			Amount:       math.Abs(in.Amount),
			Description:  in.Description,
			Date:         normalizeDate(in.Date),
			Bank:         in.Bank,
			Source:       source,
			Status:       models.TransactionActive,
			AISuggested:  in.AISuggested,
			AIConfidence: in.AIConfidence,
		}
		if err := m.Transactions().Create(ctx, t); err != nil {
			return err
		}

		if err := m.AuditLogs().Append(ctx, &models.TransactionAuditLog{
			TransactionID: t.ID,
			UserID:        userID,
			ChangeType:    models.ChangeCreated,
			NewValue:      snapshot(t),
		}); err != nil {
			return err
		}

		if ruleApplied {
			s.logger.InfoContext(ctx, "rule categorized transaction",
				"team_id", teamID, "transaction_id", t.ID, "category_id", *categoryID)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitBudgetAlert(ctx, teamID, userID, created)
	return created, nil
}

// Update applies a partial patch under a row lock so concurrent updates
// serialize and each audit snapshot reflects its true predecessor.
func (s *TransactionService) Update(ctx context.Context, teamID, userID, id uint, patch UpdatePatch) (*models.Transaction, error) {
	var updated *models.Transaction

	err := s.repos.InTx(ctx, func(m repository.Manager) error {
		t, err := m.Transactions().GetByIDForUpdate(ctx, teamID, id)
		if err != nil {
			return err
		}
		if t.Status == models.TransactionDeleted {
			return apperrors.NewConflict("transaction %d is deleted", id)
		}

		oldValue := snapshot(t)
		categoryChanged := false

		if patch.Amount != nil {
			t.Amount = math.Abs(*patch.Amount)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Date != nil {
			if patch.Date.IsZero() {
				return apperrors.NewValidation("date", "date must not be empty")
			}
			t.Date = normalizeDate(*patch.Date)
		}
		if patch.Bank != nil {
			team, err := m.Teams().GetByID(ctx, teamID)
			if err != nil {
				return err
			}
			if err := validateBank(*patch.Bank, team.Banks); err != nil {
				return err
			}
			t.Bank = *patch.Bank
		}
		if patch.CategoryID != nil {
			if _, err := m.Categories().GetActiveByID(ctx, teamID, *patch.CategoryID); err != nil {
				return err
			}
			if t.CategoryID == nil || *t.CategoryID != *patch.CategoryID {
				categoryChanged = true
			}
			categoryID := *patch.CategoryID
			t.CategoryID = &categoryID
		}

		if err := m.Transactions().Save(ctx, t); err != nil {
			return err
		}

		changeType := models.ChangeUpdated
		if categoryChanged {
			changeType = models.ChangeCategoryChanged
		}
		if err := m.AuditLogs().Append(ctx, &models.TransactionAuditLog{
			TransactionID: t.ID,
			UserID:        userID,
			ChangeType:    changeType,
			OldValue:      oldValue,
			NewValue:      snapshot(t),
		}); err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitBudgetAlert(ctx, teamID, userID, updated)
	return updated, nil
}

// Delete soft-deletes: the row stays for audit and historical analytics.
func (s *TransactionService) Delete(ctx context.Context, teamID, userID, id uint) error {
	return s.repos.InTx(ctx, func(m repository.Manager) error {
		t, err := m.Transactions().GetByIDForUpdate(ctx, teamID, id)
		if err != nil {
			return err
		}
		if t.Status == models.TransactionDeleted {
			return apperrors.NewNotFound("transaction", id)
		}

		oldValue := snapshot(t)
		t.Status = models.TransactionDeleted
		if err := m.Transactions().Save(ctx, t); err != nil {
			return err
		}

		return m.AuditLogs().Append(ctx, &models.TransactionAuditLog{
			TransactionID: t.ID,
			UserID:        userID,
			ChangeType:    models.ChangeDeleted,
			OldValue:      oldValue,
		})
	})
}

// BatchCreate processes each item independently: one bad item never aborts
// the batch. The result enumerates created rows and per-item failures.
func (s *TransactionService) BatchCreate(ctx context.Context, teamID, userID uint, items []CreateInput) BatchResult {
	result := BatchResult{
		Created: make([]models.Transaction, 0, len(items)),
		Errors:  make([]BatchItemError, 0),
	}
	for i, item := range items {
		t, err := s.Create(ctx, teamID, userID, item)
		if err != nil {
			result.Errors = append(result.Errors, BatchItemError{Index: i, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, *t)
	}
	return result
}

// ApplyRules runs the matcher over the team's uncategorized active
// transactions and persists each suggestion through the audited update
// path. Returns the number of transactions categorized.
func (s *TransactionService) ApplyRules(ctx context.Context, teamID, userID uint) (int, error) {
	uncategorized, err := s.repos.Transactions().FindUncategorizedActive(ctx, teamID)
	if err != nil {
		return 0, err
	}
	teamRules, err := s.repos.Rules().FindActiveOrdered(ctx, teamID)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, t := range uncategorized {
		categoryID := rules.Match(rules.Candidate{
			Description: t.Description,
			Amount:      t.Amount,
			Date:        t.Date,
		}, teamRules)
		if categoryID == nil {
			continue
		}
		if _, err := s.Update(ctx, teamID, userID, t.ID, UpdatePatch{CategoryID: categoryID}); err != nil {
			s.logger.WarnContext(ctx, "apply rules: update failed",
				"transaction_id", t.ID, "error", err)
			continue
		}
		applied++
	}
	return applied, nil
}

// Get returns a transaction by id regardless of status; deleted rows stay
// reachable this way.
func (s *TransactionService) Get(ctx context.Context, teamID, id uint) (*models.Transaction, error) {
	return s.repos.Transactions().GetByID(ctx, teamID, id)
}

func (s *TransactionService) List(ctx context.Context, teamID uint, f repository.TransactionFilter) ([]models.Transaction, error) {
	return s.repos.Transactions().List(ctx, teamID, f)
}

// AuditTrail returns the append-only history of one transaction after
// confirming it belongs to the requesting team.
func (s *TransactionService) AuditTrail(ctx context.Context, teamID, transactionID uint) ([]models.TransactionAuditLog, error) {
	if _, err := s.repos.Transactions().GetByID(ctx, teamID, transactionID); err != nil {
		return nil, err
	}
	return s.repos.AuditLogs().ListByTransaction(ctx, transactionID)
}

func (s *TransactionService) AuditInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.TransactionAuditLog, error) {
	return s.repos.AuditLogs().ListInRange(ctx, teamID, from, to)
}

// emitBudgetAlert notifies when the mutated transaction's category sits
// over its budget for the transaction's month. Best-effort: failures are
// logged, never returned.
func (s *TransactionService) emitBudgetAlert(ctx context.Context, teamID, userID uint, t *models.Transaction) {
	if s.notifier == nil || t == nil || t.CategoryID == nil {
		return
	}

	budgets, err := s.repos.Budgets().FindActiveByCategory(ctx, teamID, *t.CategoryID)
	if err != nil {
		s.logger.WarnContext(ctx, "budget alert: load budgets failed", "error", err)
		return
	}
	if len(budgets) == 0 {
		return
	}

	for _, b := range budgets {
		from, to := analytics.PeriodWindow(b, t.Date.Year(), t.Date.Month())
		txs, err := s.repos.Transactions().FindActiveInRange(ctx, teamID, t.CategoryID, from, to)
		if err != nil {
			s.logger.WarnContext(ctx, "budget alert: load transactions failed", "error", err)
			return
		}
		var spent float64
		for _, tx := range txs {
			spent += tx.Amount
		}
		if spent <= b.Amount {
			continue
		}

		categoryName := analytics.UnknownCategory
		if c, err := s.repos.Categories().GetByID(ctx, teamID, *t.CategoryID); err == nil {
			categoryName = c.Name
		}
		alert := notify.BudgetAlert{
			TeamID:        teamID,
			UserID:        userID,
			CategoryID:    *t.CategoryID,
			CategoryName:  categoryName,
			TransactionID: t.ID,
			BudgetAmount:  b.Amount,
			SpentAmount:   spent,
		}
		if err := s.notifier.BudgetExceeded(ctx, alert); err != nil {
			s.logger.WarnContext(ctx, "budget alert: notify failed",
				"team_id", teamID, "category_id", *t.CategoryID, "error", err)
		}
	}
}

func validateBank(bank string, allowed []string) error {
	for _, b := range allowed {
		if b == bank {
			return nil
		}
	}
	return apperrors.InvalidBank(bank, allowed)
}

func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func snapshot(t *models.Transaction) models.Snapshot {
	s := models.Snapshot{
		"id":          t.ID,
		"team_id":     t.TeamID,
		"user_id":     t.UserID,
		"amount":      t.Amount,
		"description": t.Description,
		"date":        t.Date.Format("2006-01-02"),
		"bank":        t.Bank,
		"source":      string(t.Source),
		"status":      string(t.Status),
	}
	if t.CategoryID != nil {
		s["category_id"] = *t.CategoryID
	}
	if t.AISuggested {
		s["ai_suggested"] = true
		s["ai_confidence"] = t.AIConfidence
	}
	return s
}
