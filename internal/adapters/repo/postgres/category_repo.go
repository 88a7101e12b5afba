package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Save(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, domain.ErrNotFound
	}
	if err := r.db.WithContext(ctx).First(&c, "LOWER(name) = LOWER(?)", n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListActive is the public listing, ordered for display.
func (r *CategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	var list []domain.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll includes soft-disabled categories for admin views.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	var list []domain.Category
	if err := r.db.WithContext(ctx).Order("display_order asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
