package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Save(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

func (r *ReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var rev domain.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) FindByCustomerProduct(ctx context.Context, customerID, productID uuid.UUID) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.WithContext(ctx).
		First(&rev, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	var list []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, "id = ?", id).Error
}
