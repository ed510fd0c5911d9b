package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-budget-go/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(categoryID uint, amount float64, date time.Time) models.Transaction {
	id := categoryID
	return models.Transaction{
		CategoryID: &id,
		Amount:     amount,
		Date:       date,
		Status:     models.TransactionActive,
	}
}

func foodSetup() ([]models.Budget, map[uint]models.Category, []models.Transaction) {
	budgets := []models.Budget{{
		ID: 1, CategoryID: 10, Amount: 500, Period: models.BudgetMonthly, Active: true,
		StartDate: day(2025, 1, 1),
	}}
	categories := map[uint]models.Category{
		10: {ID: 10, Name: "Food", Active: true},
	}
	transactions := []models.Transaction{
		tx(10, 150, day(2025, 3, 5)),
		tx(10, 200, day(2025, 3, 12)),
		tx(10, 100, day(2025, 3, 25)),
	}
	return budgets, categories, transactions
}

func TestComputeWarningScenario(t *testing.T) {
	budgets, categories, transactions := foodSetup()

	figures, summary := Compute(budgets, categories, transactions, 2025, time.March)
	require.Len(t, figures, 1)

	f := figures[0]
	assert.Equal(t, "Food", f.CategoryName)
	assert.Equal(t, 450.0, f.SpentAmount)
	assert.Equal(t, 90.0, f.Percentage)
	assert.Equal(t, 50.0, f.Remaining)
	assert.Equal(t, StatusWarning, f.Status)

	assert.Equal(t, 500.0, summary.TotalAllocated)
	assert.Equal(t, 450.0, summary.TotalSpent)
	assert.Equal(t, 0, summary.OverBudget)
	assert.Equal(t, 1, summary.UnderBudget)
}

func TestComputeOverScenario(t *testing.T) {
	budgets, categories, transactions := foodSetup()
	transactions = append(transactions, tx(10, 100, day(2025, 3, 28)))

	figures, summary := Compute(budgets, categories, transactions, 2025, time.March)
	require.Len(t, figures, 1)

	f := figures[0]
	assert.Equal(t, 550.0, f.SpentAmount)
	assert.Equal(t, -50.0, f.Remaining)
	assert.Equal(t, StatusOver, f.Status)
	assert.Equal(t, 1, summary.OverBudget)
}

func TestExactlyOnBudgetIsNotOver(t *testing.T) {
	budgets, categories, _ := foodSetup()
	transactions := []models.Transaction{tx(10, 500, day(2025, 3, 5))}

	figures, _ := Compute(budgets, categories, transactions, 2025, time.March)
	require.Len(t, figures, 1)
	assert.Equal(t, 100.0, figures[0].Percentage)
	assert.NotEqual(t, StatusOver, figures[0].Status)
	assert.Equal(t, StatusWarning, figures[0].Status)
}

func TestZeroBudgetNeverNaN(t *testing.T) {
	budgets := []models.Budget{{ID: 1, CategoryID: 10, Amount: 0, Period: models.BudgetMonthly, Active: true}}
	categories := map[uint]models.Category{10: {ID: 10, Name: "Food", Active: true}}
	transactions := []models.Transaction{tx(10, 25, day(2025, 3, 1))}

	figures, _ := Compute(budgets, categories, transactions, 2025, time.March)
	require.Len(t, figures, 1)
	assert.Equal(t, 0.0, figures[0].Percentage)
	assert.Equal(t, StatusOver, figures[0].Status)
	assert.Equal(t, -25.0, figures[0].Remaining)
}

func TestComputeIsIdempotent(t *testing.T) {
	budgets, categories, transactions := foodSetup()

	figures1, summary1 := Compute(budgets, categories, transactions, 2025, time.March)
	figures2, summary2 := Compute(budgets, categories, transactions, 2025, time.March)

	assert.Equal(t, figures1, figures2)
	assert.Equal(t, summary1, summary2)
}

func TestDeletedTransactionsExcluded(t *testing.T) {
	budgets, categories, transactions := foodSetup()
	deleted := tx(10, 999, day(2025, 3, 15))
	deleted.Status = models.TransactionDeleted
	transactions = append(transactions, deleted)

	figures, _ := Compute(budgets, categories, transactions, 2025, time.March)
	assert.Equal(t, 450.0, figures[0].SpentAmount)
}

func TestMissingCategoryFallsBack(t *testing.T) {
	budgets := []models.Budget{
		{ID: 1, CategoryID: 10, Amount: 100, Period: models.BudgetMonthly, Active: true},
		{ID: 2, CategoryID: 99, Amount: 200, Period: models.BudgetMonthly, Active: true},
	}
	categories := map[uint]models.Category{
		10: {ID: 10, Name: "Food", Active: true},
		// 99 missing entirely; 11 present but inactive
	}
	transactions := []models.Transaction{tx(99, 50, day(2025, 3, 1))}

	figures, summary := Compute(budgets, categories, transactions, 2025, time.March)
	require.Len(t, figures, 2)
	assert.Equal(t, UnknownCategory, figures[1].CategoryName)
	assert.Equal(t, 50.0, figures[1].SpentAmount)
	// Still contributes to totals.
	assert.Equal(t, 300.0, summary.TotalAllocated)
	assert.Equal(t, 50.0, summary.TotalSpent)
}

func TestInactiveCategoryFallsBack(t *testing.T) {
	budgets := []models.Budget{{ID: 1, CategoryID: 10, Amount: 100, Period: models.BudgetMonthly, Active: true}}
	categories := map[uint]models.Category{10: {ID: 10, Name: "Old Food", Active: false}}

	figures, _ := Compute(budgets, categories, nil, 2025, time.March)
	require.Len(t, figures, 1)
	assert.Equal(t, UnknownCategory, figures[0].CategoryName)
}

func TestPeriodWindow(t *testing.T) {
	end := day(2025, 6, 15)
	tests := []struct {
		name     string
		budget   models.Budget
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			"monthly re-windows to requested month",
			models.Budget{Period: models.BudgetMonthly, StartDate: day(2024, 1, 1)},
			day(2025, 3, 1), day(2025, 3, 31),
		},
		{
			"weekly re-windows to requested month",
			models.Budget{Period: models.BudgetWeekly, StartDate: day(2024, 1, 1)},
			day(2025, 3, 1), day(2025, 3, 31),
		},
		{
			"custom keeps its own window",
			models.Budget{Period: models.BudgetCustom, StartDate: day(2025, 6, 1), EndDate: &end},
			day(2025, 6, 1), day(2025, 6, 15),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := PeriodWindow(tt.budget, 2025, time.March)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestCustomBudgetUsesOwnWindow(t *testing.T) {
	end := day(2025, 3, 10)
	budgets := []models.Budget{{
		ID: 1, CategoryID: 10, Amount: 100, Period: models.BudgetCustom, Active: true,
		StartDate: day(2025, 3, 1), EndDate: &end,
	}}
	categories := map[uint]models.Category{10: {ID: 10, Name: "Trip", Active: true}}
	transactions := []models.Transaction{
		tx(10, 40, day(2025, 3, 5)),
		tx(10, 40, day(2025, 3, 20)), // outside the custom window
	}

	figures, _ := Compute(budgets, categories, transactions, 2025, time.March)
	assert.Equal(t, 40.0, figures[0].SpentAmount)
}

func TestSpendByCategoryIncludesUnbudgeted(t *testing.T) {
	categories := map[uint]models.Category{
		10: {ID: 10, Name: "Food", Active: true},
		20: {ID: 20, Name: "Transport", Active: true},
	}
	uncategorized := models.Transaction{Amount: 5, Date: day(2025, 3, 3), Status: models.TransactionActive}
	transactions := []models.Transaction{
		tx(10, 100, day(2025, 3, 1)),
		tx(20, 300, day(2025, 3, 2)),
		tx(10, 50, day(2025, 3, 4)),
		uncategorized,
	}

	spend := SpendByCategory(categories, transactions)
	require.Len(t, spend, 3)

	assert.Equal(t, "Transport", spend[0].CategoryName)
	assert.Equal(t, 300.0, spend[0].SpentAmount)
	assert.Equal(t, "Food", spend[1].CategoryName)
	assert.Equal(t, 150.0, spend[1].SpentAmount)
	assert.Equal(t, 2, spend[1].Count)
	assert.Equal(t, "uncategorized", spend[2].CategoryName)
	assert.Nil(t, spend[2].CategoryID)
}
