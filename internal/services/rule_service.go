package services

import (
	"context"
	"strings"

	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
	"family-budget-go/internal/rules"
)

type RuleService struct {
	repos repository.Manager
}

func NewRuleService(repos repository.Manager) *RuleService {
	return &RuleService{repos: repos}
}

type RuleInput struct {
	Name       string
	Field      models.RuleField
	MatchText  string
	CategoryID uint
}

// Create validates matchText for the rule's field type up front; the
// matcher itself never fails on malformed patterns.
func (s *RuleService) Create(ctx context.Context, teamID uint, in RuleInput) (*models.Rule, error) {
	if err := rules.ValidateMatchText(in.Field, in.MatchText); err != nil {
		return nil, err
	}
	if _, err := s.repos.Categories().GetActiveByID(ctx, teamID, in.CategoryID); err != nil {
		return nil, err
	}

	r := &models.Rule{
		TeamID:     teamID,
		Name:       strings.TrimSpace(in.Name),
		Field:      in.Field,
		MatchText:  strings.TrimSpace(in.MatchText),
		CategoryID: in.CategoryID,
		Active:     true,
	}
	if err := s.repos.Rules().Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

type RulePatch struct {
	Name       *string
	Field      *models.RuleField
	MatchText  *string
	CategoryID *uint
}

func (s *RuleService) Update(ctx context.Context, teamID, id uint, patch RulePatch) (*models.Rule, error) {
	r, err := s.repos.Rules().GetByID(ctx, teamID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		r.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Field != nil {
		r.Field = *patch.Field
	}
	if patch.MatchText != nil {
		r.MatchText = strings.TrimSpace(*patch.MatchText)
	}
	// Field and matchText validate together: changing either re-checks both.
	if patch.Field != nil || patch.MatchText != nil {
		if err := rules.ValidateMatchText(r.Field, r.MatchText); err != nil {
			return nil, err
		}
	}
	if patch.CategoryID != nil {
		if _, err := s.repos.Categories().GetActiveByID(ctx, teamID, *patch.CategoryID); err != nil {
			return nil, err
		}
		r.CategoryID = *patch.CategoryID
	}
	if err := s.repos.Rules().Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RuleService) Deactivate(ctx context.Context, teamID, id uint) error {
	r, err := s.repos.Rules().GetByID(ctx, teamID, id)
	if err != nil {
		return err
	}
	r.Active = false
	return s.repos.Rules().Save(ctx, r)
}

func (s *RuleService) List(ctx context.Context, teamID uint) ([]models.Rule, error) {
	return s.repos.Rules().FindAll(ctx, teamID)
}
