package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
)

// ListCache is the cache-aside seam for catalog listings. Nil means cache
// disabled.
type ListCache interface {
	Key(f domain.ProductFilter) string
	GetList(ctx context.Context, key string) ([]domain.Product, int64, bool)
	SetList(ctx context.Context, key string, items []domain.Product, total int64)
	Invalidate(ctx context.Context)
}

type ProductUC struct {
	Products domain.ProductRepo
	Cache    ListCache
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	var key string
	if uc.Cache != nil && !f.IncludeDeleted {
		key = uc.Cache.Key(f)
		if items, total, ok := uc.Cache.GetList(ctx, key); ok {
			return items, total, nil
		}
	}
	items, total, err := uc.Products.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if key != "" {
		uc.Cache.SetList(ctx, key, items, total)
	}
	return items, total, nil
}

func (uc *ProductUC) GetBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Product, error) {
	if slug == "" {
		return nil, &domain.ValidationError{Field: "slug", Reason: "required"}
	}
	return uc.Products.FindBySlug(ctx, slug, includeDeleted)
}

func (uc *ProductUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) Featured(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.Featured(ctx)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.RecomputeDiscount()
	if err := p.Validate(); err != nil {
		return err
	}
	slug, err := domain.NextSlug(domain.Slugify(p.Name), func(s string) (bool, error) {
		return uc.Products.SlugTaken(ctx, s)
	})
	if err != nil {
		return err
	}
	p.Slug = slug
	if p.Category.Main != "" && p.Category.Slug == "" {
		p.Category.Slug = domain.Slugify(strings.ReplaceAll(p.Category.Main, "_", " "))
	}
	for i := range p.Images {
		if p.Images[i].ID == uuid.Nil {
			p.Images[i].ID = uuid.New()
		}
		p.Images[i].ProductID = p.ID
		p.Images[i].Position = i
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		return &domain.ValidationError{Field: "id", Reason: "required"}
	}
	p.RecomputeDiscount()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUC) ReplaceImages(ctx context.Context, productID uuid.UUID, imgs []domain.ProductImage) error {
	if len(imgs) < 1 || len(imgs) > 5 {
		return &domain.ValidationError{Field: "images", Reason: "between 1 and 5 images required"}
	}
	for i := range imgs {
		if imgs[i].ID == uuid.Nil {
			imgs[i].ID = uuid.New()
		}
		imgs[i].ProductID = productID
		imgs[i].Position = i
		if imgs[i].CreatedAt.IsZero() {
			imgs[i].CreatedAt = time.Now()
		}
	}
	if err := uc.Products.ReplaceImages(ctx, productID, imgs); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// SoftDelete flips the flag; rows are never removed.
func (uc *ProductUC) SoftDelete(ctx context.Context, slug string) error {
	return uc.setDeleted(ctx, slug, true)
}

func (uc *ProductUC) Restore(ctx context.Context, slug string) error {
	return uc.setDeleted(ctx, slug, false)
}

func (uc *ProductUC) setDeleted(ctx context.Context, slug string, deleted bool) error {
	p, err := uc.Products.FindBySlug(ctx, slug, true)
	if err != nil {
		return err
	}
	p.IsDeleted = deleted
	if err := uc.Products.Save(ctx, p); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUC) SetFeatured(ctx context.Context, slug string, featured bool) error {
	p, err := uc.Products.FindBySlug(ctx, slug, true)
	if err != nil {
		return err
	}
	p.IsFeatured = featured
	if err := uc.Products.Save(ctx, p); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ProductUC) invalidate(ctx context.Context) {
	if uc.Cache == nil {
		return
	}
	uc.Cache.Invalidate(ctx)
	log.Debug().Msg("product list cache invalidated")
}
