package services

import (
	"context"
	"strings"

	"family-budget-go/internal/apperrors"
	"family-budget-go/internal/models"
	"family-budget-go/internal/repository"
)

type CategoryService struct {
	repos repository.Manager
}

func NewCategoryService(repos repository.Manager) *CategoryService {
	return &CategoryService{repos: repos}
}

type CategoryInput struct {
	Name  string
	Icon  string
	Color string
}

func (s *CategoryService) Create(ctx context.Context, teamID uint, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name", "name is required")
	}

	// Per-team name uniqueness is a convention, not a constraint; reject the
	// obvious duplicate among active categories.
	existing, err := s.repos.Categories().FindActive(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, apperrors.NewConflict("category %q already exists", name)
		}
	}

	c := &models.Category{
		TeamID: teamID,
		Name:   name,
		Icon:   in.Icon,
		Color:  in.Color,
		Active: true,
	}
	if err := s.repos.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, teamID, id uint, in CategoryInput) (*models.Category, error) {
	c, err := s.repos.Categories().GetByID(ctx, teamID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if in.Icon != "" {
		c.Icon = in.Icon
	}
	if in.Color != "" {
		c.Color = in.Color
	}
	if err := s.repos.Categories().Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Deactivate soft-deletes. The row stays so past analytics still resolve it.
func (s *CategoryService) Deactivate(ctx context.Context, teamID, id uint) error {
	c, err := s.repos.Categories().GetByID(ctx, teamID, id)
	if err != nil {
		return err
	}
	c.Active = false
	return s.repos.Categories().Save(ctx, c)
}

func (s *CategoryService) List(ctx context.Context, teamID uint, includeInactive bool) ([]models.Category, error) {
	if includeInactive {
		return s.repos.Categories().FindAll(ctx, teamID)
	}
	return s.repos.Categories().FindActive(ctx, teamID)
}
