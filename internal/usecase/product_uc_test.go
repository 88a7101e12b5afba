package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkkart/storefront/internal/domain"
)

type cachedPage struct {
	items []domain.Product
	total int64
}

type fakeCache struct {
	store       map[string]cachedPage
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]cachedPage{}}
}

func (c *fakeCache) Key(f domain.ProductFilter) string {
	return fmt.Sprintf("%+v", f)
}

func (c *fakeCache) GetList(ctx context.Context, key string) ([]domain.Product, int64, bool) {
	v, ok := c.store[key]
	return v.items, v.total, ok
}

func (c *fakeCache) SetList(ctx context.Context, key string, items []domain.Product, total int64) {
	c.store[key] = cachedPage{items, total}
}

func (c *fakeCache) Invalidate(ctx context.Context) {
	c.store = map[string]cachedPage{}
	c.invalidated++
}

func catalogProduct(name string) *domain.Product {
	return &domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Slug:     domain.Slugify(name),
		Category: domain.CategoryRef{Main: "sparklers"},
		Pricing:  domain.Pricing{MRP: 100, SellingPrice: 90},
		Images:   []domain.ProductImage{{URL: "/a.jpg"}},
		Stock:    5,
	}
}

func TestProductCreateSlugCollision(t *testing.T) {
	existing := catalogProduct("Golden Sparkler")
	products := newFakeProductRepo(existing)
	uc := &ProductUC{Products: products}

	p := catalogProduct("Golden Sparkler")
	p.ID = uuid.Nil
	p.Slug = ""
	require.NoError(t, uc.Create(context.Background(), p))
	assert.Equal(t, "golden-sparkler-2", p.Slug)
	assert.NotEqual(t, uuid.Nil, p.ID)

	next := catalogProduct("Golden Sparkler")
	next.ID = uuid.Nil
	next.Slug = ""
	require.NoError(t, uc.Create(context.Background(), next))
	assert.Equal(t, "golden-sparkler-3", next.Slug)
}

func TestProductCreateDerivesFields(t *testing.T) {
	uc := &ProductUC{Products: newFakeProductRepo()}

	p := catalogProduct("Ground Spinner Deluxe")
	p.ID = uuid.Nil
	p.Slug = ""
	p.Category = domain.CategoryRef{Main: "ground_spinners"}
	require.NoError(t, uc.Create(context.Background(), p))

	assert.Equal(t, "ground-spinners", p.Category.Slug)
	assert.InDelta(t, 10.0, p.Pricing.DiscountPercentage, 0.001)
	for i, img := range p.Images {
		assert.NotEqual(t, uuid.Nil, img.ID)
		assert.Equal(t, i, img.Position)
		assert.Equal(t, p.ID, img.ProductID)
	}
}

func TestProductCreateValidation(t *testing.T) {
	uc := &ProductUC{Products: newFakeProductRepo()}

	p := catalogProduct("Bad Pricing")
	p.Pricing.SellingPrice = 200
	var verr *domain.ValidationError
	require.ErrorAs(t, uc.Create(context.Background(), p), &verr)
	assert.Equal(t, "pricing.selling_price", verr.Field)
}

func TestProductListCacheAside(t *testing.T) {
	p := catalogProduct("Cached Rocket")
	products := newFakeProductRepo(p)
	c := newFakeCache()
	uc := &ProductUC{Products: products, Cache: c}

	f := domain.ProductFilter{Category: "sparklers"}

	items, total, err := uc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	// second read is served from cache even after the repo changes
	delete(products.products, p.ID)
	items, total, err = uc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Cached Rocket", items[0].Name)
}

func TestProductListSkipsCacheForAdminView(t *testing.T) {
	p := catalogProduct("Hidden Fountain")
	p.IsDeleted = true
	products := newFakeProductRepo(p)
	c := newFakeCache()
	uc := &ProductUC{Products: products, Cache: c}

	_, total, err := uc.List(context.Background(), domain.ProductFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, c.store, "admin listings never cached")
}

func TestProductMutationsInvalidateCache(t *testing.T) {
	p := catalogProduct("Novelty Pack")
	products := newFakeProductRepo(p)
	c := newFakeCache()
	uc := &ProductUC{Products: products, Cache: c}

	require.NoError(t, uc.SoftDelete(context.Background(), p.Slug))
	assert.Equal(t, 1, c.invalidated)

	stored, err := products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)

	require.NoError(t, uc.Restore(context.Background(), p.Slug))
	stored, _ = products.FindByID(context.Background(), p.ID)
	assert.False(t, stored.IsDeleted)
	assert.Equal(t, 2, c.invalidated)

	require.NoError(t, uc.SetFeatured(context.Background(), p.Slug, true))
	stored, _ = products.FindByID(context.Background(), p.ID)
	assert.True(t, stored.IsFeatured)
}

func TestReplaceImagesBounds(t *testing.T) {
	p := catalogProduct("Aerial Barrage")
	uc := &ProductUC{Products: newFakeProductRepo(p)}

	err := uc.ReplaceImages(context.Background(), p.ID, nil)
	assert.Error(t, err)

	imgs := make([]domain.ProductImage, 6)
	for i := range imgs {
		imgs[i] = domain.ProductImage{URL: "/x.jpg"}
	}
	err = uc.ReplaceImages(context.Background(), p.ID, imgs)
	assert.Error(t, err)

	err = uc.ReplaceImages(context.Background(), p.ID, imgs[:3])
	require.NoError(t, err)
}
