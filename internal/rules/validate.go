package rules

import (
	"strconv"
	"strings"
	"time"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
)

// ValidateMatchText checks that matchText is well formed for the rule's
// field type. This runs at rule creation so match time never has to fail.
func ValidateMatchText(field models.RuleField, matchText string) error {
	matchText = strings.TrimSpace(matchText)
	if matchText == "" {
		return apperrors.NewValidation("match_text", "must not be empty")
	}

	switch field {
	case models.RuleFieldDescription:
		return nil
	case models.RuleFieldAmount:
		v, err := strconv.ParseFloat(matchText, 64)
		if err != nil {
			return apperrors.NewValidation("match_text", "%q is not a valid amount", matchText)
		}
		if v < 0 {
			return apperrors.NewValidation("match_text", "amount must not be negative")
		}
		return nil
	case models.RuleFieldDate:
		if _, err := time.Parse(dateLayout, matchText); err == nil {
			return nil
		}
		if day, err := strconv.Atoi(matchText); err == nil && day >= 1 && day <= 31 {
			return nil
		}
		return apperrors.NewValidation("match_text",
			"%q must be a YYYY-MM-DD date or a day of month (1-31)", matchText)
	default:
		return apperrors.NewValidation("field", "%q is not a matchable field", field)
	}
}
