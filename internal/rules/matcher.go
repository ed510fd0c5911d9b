// Package rules implements deterministic rule-based transaction
// categorization. No ML, no scoring: rules are evaluated in creation order
// and the first match wins, so every suggestion is reproducible.
package rules

import (
	"math"
	"strconv"
	"strings"
	"time"

	"family-budget-go/internal/models"
)

// amountTolerance treats amounts equal to the cent as matching, so a rule
// written "12.5" matches a 12.50 transaction.
const amountTolerance = 0.005

const dateLayout = "2006-01-02"

// Candidate carries the transaction fields a rule can match against.
type Candidate struct {
	Description string
	Amount      float64
	Date        time.Time
}

// Match evaluates the team's active rules against a candidate and returns
// the target category id of the first matching rule, or nil when no rule
// matches. Rules must already be in evaluation order (ascending id).
// Malformed matchText never matches; it is rejected at rule creation.
func Match(c Candidate, teamRules []models.Rule) *uint {
	for _, r := range teamRules {
		if !r.Active {
			continue
		}
		if matches(c, r) {
			id := r.CategoryID
			return &id
		}
	}
	return nil
}

func matches(c Candidate, r models.Rule) bool {
	switch r.Field {
	case models.RuleFieldDescription:
		return matchDescription(c.Description, r.MatchText)
	case models.RuleFieldAmount:
		return matchAmount(c.Amount, r.MatchText)
	case models.RuleFieldDate:
		return matchDate(c.Date, r.MatchText)
	}
	return false
}

func matchDescription(description, matchText string) bool {
	matchText = strings.TrimSpace(matchText)
	if matchText == "" {
		return false
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(matchText))
}

func matchAmount(amount float64, matchText string) bool {
	want, err := strconv.ParseFloat(strings.TrimSpace(matchText), 64)
	if err != nil {
		return false
	}
	return math.Abs(amount-want) <= amountTolerance
}

// matchDate accepts a full YYYY-MM-DD date (matches that calendar day) or a
// two-digit DD day of month (matches any transaction on that day).
func matchDate(date time.Time, matchText string) bool {
	matchText = strings.TrimSpace(matchText)
	if d, err := time.Parse(dateLayout, matchText); err == nil {
		return date.Year() == d.Year() && date.Month() == d.Month() && date.Day() == d.Day()
	}
	if day, err := strconv.Atoi(matchText); err == nil && day >= 1 && day <= 31 {
		return date.Day() == day
	}
	return false
}
