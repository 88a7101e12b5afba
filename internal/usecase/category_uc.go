package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

type CategoryUC struct {
	Categories domain.CategoryRepo
}

func (uc *CategoryUC) Create(ctx context.Context, c *domain.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	existing, err := uc.Categories.FindByName(ctx, c.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateName
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		c.Slug = domain.Slugify(c.Name)
	}
	c.IsActive = true
	return uc.Categories.Save(ctx, c)
}

func (uc *CategoryUC) Update(ctx context.Context, c *domain.Category) error {
	if c.ID == uuid.Nil {
		return &domain.ValidationError{Field: "id", Reason: "required"}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	existing, err := uc.Categories.FindByName(ctx, c.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != c.ID {
		return domain.ErrDuplicateName
	}
	return uc.Categories.Save(ctx, c)
}

// SetActive soft-disables or re-enables; categories are never deleted.
func (uc *CategoryUC) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	c, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = active
	return uc.Categories.Save(ctx, c)
}

func (uc *CategoryUC) ListActive(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.ListActive(ctx)
}

func (uc *CategoryUC) ListAll(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.ListAll(ctx)
}
