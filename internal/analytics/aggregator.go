// Package analytics computes budget figures from transaction and budget
// rows. Everything here is a pure function over already-loaded data: the
// package never touches storage, so identical inputs always produce
// identical output.
package analytics

import (
	"sort"
	"time"

	"family-budget-go/internal/models"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// warningThreshold is the percentage at which a budget flips to "warning".
const warningThreshold = 80.0

// UnknownCategory labels budgets whose category is missing or inactive.
// Aggregation proceeds with this fallback instead of failing.
const UnknownCategory = "unknown category"

type BudgetFigures struct {
	BudgetID     uint      `json:"budget_id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	BudgetAmount float64   `json:"budget_amount"`
	SpentAmount  float64   `json:"spent_amount"`
	Percentage   float64   `json:"percentage"`
	Remaining    float64   `json:"remaining"`
	Status       Status    `json:"status"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
}

type Summary struct {
	TotalAllocated float64 `json:"total_allocated"`
	TotalSpent     float64 `json:"total_spent"`
	TotalRemaining float64 `json:"total_remaining"`
	OverBudget     int     `json:"over_budget"`
	UnderBudget    int     `json:"under_budget"`
}

type CategorySpend struct {
	CategoryID   *uint   `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name"`
	SpentAmount  float64 `json:"spent_amount"`
	Count        int     `json:"count"`
}

// PeriodWindow resolves the effective date range of a budget when viewed for
// a given calendar month. Custom budgets keep their own start/end; period
// budgets are re-windowed to the requested month regardless of their
// original start date.
func PeriodWindow(b models.Budget, year int, month time.Month) (time.Time, time.Time) {
	if b.Period == models.BudgetCustom {
		end := b.StartDate
		if b.EndDate != nil {
			end = *b.EndDate
		}
		return b.StartDate, end
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Compute derives per-budget figures and the team summary for one reporting
// month. categories maps category id to row (inactive ones included, for the
// fallback label); transactions must be the team's active rows, any range —
// each budget filters to its own window.
func Compute(budgets []models.Budget, categories map[uint]models.Category, transactions []models.Transaction, year int, month time.Month) ([]BudgetFigures, Summary) {
	figures := make([]BudgetFigures, 0, len(budgets))
	var summary Summary

	for _, b := range budgets {
		from, to := PeriodWindow(b, year, month)
		spent := sumInWindow(transactions, b.CategoryID, from, to)

		name := UnknownCategory
		if c, ok := categories[b.CategoryID]; ok && c.Active {
			name = c.Name
		}

		f := BudgetFigures{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: name,
			BudgetAmount: b.Amount,
			SpentAmount:  spent,
			Percentage:   percentage(spent, b.Amount),
			Remaining:    b.Amount - spent,
			PeriodStart:  from,
			PeriodEnd:    to,
		}
		f.Status = classify(spent, b.Amount, f.Percentage)
		figures = append(figures, f)

		summary.TotalAllocated += b.Amount
		summary.TotalSpent += spent
		summary.TotalRemaining += f.Remaining
		if f.Status == StatusOver {
			summary.OverBudget++
		} else {
			summary.UnderBudget++
		}
	}

	return figures, summary
}

// SpendByCategory buckets active transactions by category whether or not a
// budget exists, sorted descending by amount. Uncategorized transactions
// form their own bucket.
func SpendByCategory(categories map[uint]models.Category, transactions []models.Transaction) []CategorySpend {
	type key struct {
		id  uint
		set bool
	}
	buckets := make(map[key]*CategorySpend)
	order := make([]key, 0)

	for _, t := range transactions {
		if t.Status != models.TransactionActive {
			continue
		}
		k := key{}
		if t.CategoryID != nil {
			k = key{id: *t.CategoryID, set: true}
		}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &CategorySpend{}
			if k.set {
				id := k.id
				bucket.CategoryID = &id
				bucket.CategoryName = UnknownCategory
				if c, found := categories[k.id]; found {
					bucket.CategoryName = c.Name
				}
			} else {
				bucket.CategoryName = "uncategorized"
			}
			buckets[k] = bucket
			order = append(order, k)
		}
		bucket.SpentAmount += t.Amount
		bucket.Count++
	}

	out := make([]CategorySpend, 0, len(buckets))
	for _, k := range order {
		out = append(out, *buckets[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpentAmount > out[j].SpentAmount
	})
	return out
}

func sumInWindow(transactions []models.Transaction, categoryID uint, from, to time.Time) float64 {
	var sum float64
	for _, t := range transactions {
		if t.Status != models.TransactionActive {
			continue
		}
		if t.CategoryID == nil || *t.CategoryID != categoryID {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		sum += t.Amount
	}
	return sum
}

// percentage guards the zero-amount budget: it reports 0 instead of
// surfacing NaN or Inf.
func percentage(spent, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return spent / budget * 100
}

func classify(spent, budget, pct float64) Status {
	if spent > budget {
		return StatusOver
	}
	if pct >= warningThreshold {
		return StatusWarning
	}
	return StatusOK
}
