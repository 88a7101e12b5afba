package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	Featured(ctx context.Context) ([]Product, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	ReplaceImages(ctx context.Context, productID uuid.UUID, imgs []ProductImage) error
	UpdateRating(ctx context.Context, productID uuid.UUID, avg float64, total int) error
}

type CartRepo interface {
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	SaveItem(ctx context.Context, item *CartItem) error
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	Clear(ctx context.Context, cartID uuid.UUID) error
}

type OrderFilter struct {
	Status   OrderStatus
	Page     int
	PageSize int
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]Order, error)
}

type ReviewRepo interface {
	Save(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByCustomerProduct(ctx context.Context, customerID, productID uuid.UUID) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepo interface {
	Save(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)
}

type NotificationRepo interface {
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type TicketFilter struct {
	Status   TicketStatus
	Category string
	Page     int
	PageSize int
}

type SupportRepo interface {
	Save(ctx context.Context, t *SupportTicket) error
	FindByID(ctx context.Context, id uuid.UUID) (*SupportTicket, error)
	List(ctx context.Context, f TicketFilter) ([]SupportTicket, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]SupportTicket, error)
}

type CustomerRepo interface {
	Save(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}
