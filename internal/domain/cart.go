package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a singleton per customer, created lazily on the first add.
type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"customer_id"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;index" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Line returns the item for a product, if present.
func (c *Cart) Line(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }
