package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

type ReviewUC struct {
	Reviews  domain.ReviewRepo
	Products domain.ProductRepo
}

func (uc *ReviewUC) Add(ctx context.Context, r *domain.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := uc.Products.FindByID(ctx, r.ProductID); err != nil {
		return err
	}
	existing, err := uc.Reviews.FindByCustomerProduct(ctx, r.CustomerID, r.ProductID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateReview
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if err := uc.Reviews.Save(ctx, r); err != nil {
		return err
	}
	return uc.recompute(ctx, r.ProductID)
}

func (uc *ReviewUC) Update(ctx context.Context, id, customerID uuid.UUID, rating int, comment string) (*domain.Review, error) {
	r, err := uc.Reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	r.Rating = rating
	r.Comment = comment
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := uc.Reviews.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, uc.recompute(ctx, r.ProductID)
}

func (uc *ReviewUC) Delete(ctx context.Context, id, customerID uuid.UUID) error {
	r, err := uc.Reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.CustomerID != customerID {
		return domain.ErrNotFound
	}
	if err := uc.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recompute(ctx, r.ProductID)
}

func (uc *ReviewUC) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	return uc.Reviews.ListByProduct(ctx, productID)
}

// recompute refetches every review for the product and rewrites the
// aggregate fields.
func (uc *ReviewUC) recompute(ctx context.Context, productID uuid.UUID) error {
	reviews, err := uc.Reviews.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}
	avg, total := domain.RatingSummary(reviews)
	return uc.Products.UpdateRating(ctx, productID, avg, total)
}
