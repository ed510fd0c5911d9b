package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
)

func TestRuleCreateValidatesMatchText(t *testing.T) {
	m := newMemManager()
	team := m.addTeam("BBVA")
	food := m.addCategory(team.ID, "Food", true)
	svc := NewRuleService(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, team.ID, RuleInput{
		Field: models.RuleFieldAmount, MatchText: "twelve", CategoryID: food.ID,
	})
	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "match_text", validation.Field)

	r, err := svc.Create(ctx, team.ID, RuleInput{
		Name: "lunch", Field: models.RuleFieldAmount, MatchText: "12.50", CategoryID: food.ID,
	})
	require.NoError(t, err)
	assert.True(t, r.Active)
}

func TestRuleCreateRejectsInactiveCategory(t *testing.T) {
	m := newMemManager()
	team := m.addTeam("BBVA")
	old := m.addCategory(team.ID, "Old", false)
	svc := NewRuleService(m)

	_, err := svc.Create(context.Background(), team.ID, RuleInput{
		Field: models.RuleFieldDescription, MatchText: "uber", CategoryID: old.ID,
	})
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRuleUpdateRevalidatesOnFieldChange(t *testing.T) {
	m := newMemManager()
	team := m.addTeam("BBVA")
	food := m.addCategory(team.ID, "Food", true)
	svc := NewRuleService(m)
	ctx := context.Background()

	r, err := svc.Create(ctx, team.ID, RuleInput{
		Field: models.RuleFieldDescription, MatchText: "uber", CategoryID: food.ID,
	})
	require.NoError(t, err)

	// "uber" is fine as a description pattern but not as an amount.
	amount := models.RuleFieldAmount
	_, err = svc.Update(ctx, team.ID, r.ID, RulePatch{Field: &amount})
	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	m := newMemManager()
	team := m.addTeam("BBVA")
	m.addCategory(team.ID, "Food", true)
	svc := NewCategoryService(m)

	_, err := svc.Create(context.Background(), team.ID, CategoryInput{Name: "food"})
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
}
