package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).Preload("Images", imageOrder).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Product, error) {
	q := r.db.WithContext(ctx).Preload("Images", imageOrder)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var p domain.Product
	if err := q.First(&p, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	q = foldClauses(q, f.Clauses())

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := f.Sort()
	order := sort.Column + " asc"
	if sort.Desc {
		order = sort.Column + " desc"
	}
	offset := (f.Page - 1) * f.PageSize

	var list []domain.Product
	if err := q.Order(order).Offset(offset).Limit(f.PageSize).Preload("Images", imageOrder).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) Featured(ctx context.Context) ([]domain.Product, error) {
	var list []domain.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ? AND is_deleted = ?", true, false).
		Order("updated_at desc").
		Preload("Images", imageOrder).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductRepo) ReplaceImages(ctx context.Context, productID uuid.UUID, imgs []domain.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Create(&imgs).Error
	})
}

func (r *ProductRepo) UpdateRating(ctx context.Context, productID uuid.UUID, avg float64, total int) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", productID).
		Updates(map[string]any{"average_rating": avg, "total_reviews": total}).Error
}

func imageOrder(db *gorm.DB) *gorm.DB { return db.Order("position asc") }
