package services

import (
	"context"
	"time"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
)

type BudgetService struct {
	repos repository.Manager
}

func NewBudgetService(repos repository.Manager) *BudgetService {
	return &BudgetService{repos: repos}
}

type BudgetInput struct {
	CategoryID uint
	Amount     float64
	Period     models.BudgetPeriod
	StartDate  time.Time
	EndDate    *time.Time
}

// Create rejects a second active budget for the same category: duplicates
// double-count analytics, so the service enforces what the schema does not.
func (s *BudgetService) Create(ctx context.Context, teamID uint, in BudgetInput) (*models.Budget, error) {
	if err := validateBudgetInput(in); err != nil {
		return nil, err
	}

	var created *models.Budget
	err := s.repos.InTx(ctx, func(m repository.Manager) error {
		if _, err := m.Categories().GetActiveByID(ctx, teamID, in.CategoryID); err != nil {
			return err
		}

		existing, err := m.Budgets().FindActiveByCategory(ctx, teamID, in.CategoryID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperrors.NewConflict("an active budget already exists for category %d", in.CategoryID)
		}

		b := &models.Budget{
			TeamID:     teamID,
			CategoryID: in.CategoryID,
			Amount:     in.Amount,
			Period:     in.Period,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Active:     true,
		}
		if err := m.Budgets().Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type BudgetPatch struct {
	Amount  *float64
	Period  *models.BudgetPeriod
	EndDate *time.Time
}

func (s *BudgetService) Update(ctx context.Context, teamID, id uint, patch BudgetPatch) (*models.Budget, error) {
	b, err := s.repos.Budgets().GetByID(ctx, teamID, id)
	if err != nil {
		return nil, err
	}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, apperrors.NewValidation("amount", "amount must not be negative")
		}
		b.Amount = *patch.Amount
	}
	if patch.Period != nil {
		if !validPeriod(*patch.Period) {
			return nil, apperrors.NewValidation("period", "unknown period %q", *patch.Period)
		}
		b.Period = *patch.Period
	}
	if patch.EndDate != nil {
		b.EndDate = patch.EndDate
	}
	if b.Period == models.BudgetCustom && b.EndDate == nil {
		return nil, apperrors.NewValidation("end_date", "custom period requires an end date")
	}
	if err := s.repos.Budgets().Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Deactivate(ctx context.Context, teamID, id uint) error {
	b, err := s.repos.Budgets().GetByID(ctx, teamID, id)
	if err != nil {
		return err
	}
	b.Active = false
	return s.repos.Budgets().Save(ctx, b)
}

func (s *BudgetService) List(ctx context.Context, teamID uint) ([]models.Budget, error) {
	return s.repos.Budgets().FindActive(ctx, teamID)
}

func validateBudgetInput(in BudgetInput) error {
	if in.Amount < 0 {
		return apperrors.NewValidation("amount", "amount must not be negative")
	}
	if !validPeriod(in.Period) {
		return apperrors.NewValidation("period", "unknown period %q", in.Period)
	}
	if in.StartDate.IsZero() {
		return apperrors.NewValidation("start_date", "start date is required")
	}
	if in.Period == models.BudgetCustom {
		if in.EndDate == nil {
			return apperrors.NewValidation("end_date", "custom period requires an end date")
		}
		if in.EndDate.Before(in.StartDate) {
			return apperrors.NewValidation("end_date", "end date must not precede start date")
		}
	}
	return nil
}

func validPeriod(p models.BudgetPeriod) bool {
	switch p {
	case models.BudgetWeekly, models.BudgetBiweekly, models.BudgetMonthly, models.BudgetCustom:
		return true
	}
	return false
}
