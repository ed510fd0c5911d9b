package services

import (
	"context"
	"time"

	"family-budget-go/internal/analytics"
	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
)

// AnalyticsService fetches the rows the pure aggregator needs and hands the
// arithmetic to internal/analytics. It is read-only: computed lazily on
// every call, never materialized.
type AnalyticsService struct {
	repos repository.Manager
}

func NewAnalyticsService(repos repository.Manager) *AnalyticsService {
	return &AnalyticsService{repos: repos}
}

type BudgetReport struct {
	Budgets []analytics.BudgetFigures `json:"budgets"`
	Summary analytics.Summary         `json:"summary"`
}

type Dashboard struct {
	Budgets         []analytics.BudgetFigures `json:"budgets"`
	Summary         analytics.Summary         `json:"summary"`
	SpendByCategory []analytics.CategorySpend `json:"spend_by_category"`
}

// ComputeBudgetAnalytics derives per-budget figures and the team summary
// for one reporting month.
func (s *AnalyticsService) ComputeBudgetAnalytics(ctx context.Context, teamID uint, year int, month time.Month) (*BudgetReport, error) {
	budgets, categories, transactions, err := s.load(ctx, teamID, year, month)
	if err != nil {
		return nil, err
	}
	figures, summary := analytics.Compute(budgets, categories, transactions, year, month)
	return &BudgetReport{Budgets: figures, Summary: summary}, nil
}

// ComputeDashboard adds the spend-by-category breakdown for the month,
// including categories that have transactions but no budget.
func (s *AnalyticsService) ComputeDashboard(ctx context.Context, teamID uint, year int, month time.Month) (*Dashboard, error) {
	budgets, categories, transactions, err := s.load(ctx, teamID, year, month)
	if err != nil {
		return nil, err
	}
	figures, summary := analytics.Compute(budgets, categories, transactions, year, month)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	monthTxs, err := s.repos.Transactions().FindActiveInRange(ctx, teamID, nil, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Budgets:         figures,
		Summary:         summary,
		SpendByCategory: analytics.SpendByCategory(categories, monthTxs),
	}, nil
}

// load fetches active budgets, the category map (inactive included, for
// fallback labels) and all active transactions spanning the widest budget
// window of the month.
func (s *AnalyticsService) load(ctx context.Context, teamID uint, year int, month time.Month) ([]models.Budget, map[uint]models.Category, []models.Transaction, error) {
	budgets, err := s.repos.Budgets().FindActive(ctx, teamID)
	if err != nil {
		return nil, nil, nil, err
	}

	cats, err := s.repos.Categories().FindAll(ctx, teamID)
	if err != nil {
		return nil, nil, nil, err
	}
	categories := make(map[uint]models.Category, len(cats))
	for _, c := range cats {
		categories[c.ID] = c
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	for _, b := range budgets {
		bFrom, bTo := analytics.PeriodWindow(b, year, month)
		if bFrom.Before(from) {
			from = bFrom
		}
		if bTo.After(to) {
			to = bTo
		}
	}

	transactions, err := s.repos.Transactions().FindActiveInRange(ctx, teamID, nil, from, to)
	if err != nil {
		return nil, nil, nil, err
	}
	return budgets, categories, transactions, nil
}
