package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*domain.Product
	saveErr  error
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uuid.UUID]*domain.Product{}}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Save(ctx context.Context, p *domain.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug && (includeDeleted || !p.IsDeleted) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		if !f.IncludeDeleted && p.IsDeleted {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Featured(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		if p.IsFeatured && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SlugTaken(ctx context.Context, slug string) (bool, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) ReplaceImages(ctx context.Context, productID uuid.UUID, imgs []domain.ProductImage) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Images = imgs
	return nil
}

func (r *fakeProductRepo) UpdateRating(ctx context.Context, productID uuid.UUID, avg float64, total int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.AverageRating = avg
	p.TotalReviews = total
	return nil
}

type fakeCartRepo struct {
	carts   map[uuid.UUID]*domain.Cart // keyed by customer
	cleared []uuid.UUID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uuid.UUID]*domain.Cart{}}
}

func (r *fakeCartRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Cart, error) {
	c, ok := r.carts[customerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, c *domain.Cart) error {
	cp := *c
	r.carts[c.CustomerID] = &cp
	return nil
}

func (r *fakeCartRepo) SaveItem(ctx context.Context, item *domain.CartItem) error {
	for _, c := range r.carts {
		if c.ID != item.CartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i] = *item
				return nil
			}
		}
		c.Items = append(c.Items, *item)
		return nil
	}
	return domain.ErrNotFound
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeCartRepo) Clear(ctx context.Context, cartID uuid.UUID) error {
	r.cleared = append(r.cleared, cartID)
	for _, c := range r.carts {
		if c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

func (r *fakeCartRepo) seed(customerID uuid.UUID, items ...domain.CartItem) *domain.Cart {
	c := &domain.Cart{ID: uuid.New(), CustomerID: customerID}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].CartID = c.ID
		items[i].AddedAt = time.Now()
	}
	c.Items = items
	r.carts[customerID] = c
	return c
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) ListInRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uuid.UUID]*domain.Review{}}
}

func (r *fakeReviewRepo) Save(ctx context.Context, rv *domain.Review) error {
	cp := *rv
	r.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *fakeReviewRepo) FindByCustomerProduct(ctx context.Context, customerID, productID uuid.UUID) (*domain.Review, error) {
	for _, rv := range r.reviews {
		if rv.CustomerID == customerID && rv.ProductID == productID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeReviewRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}
