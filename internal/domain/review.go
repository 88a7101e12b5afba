package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is unique per (customer, product) pair.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index:idx_reviews_customer_product,unique" json:"product_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index:idx_reviews_customer_product,unique" json:"customer_id"`
	Rating     int       `gorm:"type:int;not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if r.ProductID == uuid.Nil {
		return &ValidationError{Field: "product_id", Reason: "required"}
	}
	return nil
}

// RatingSummary recomputes the product aggregate by averaging every rating.
// O(n) per mutation; fine at current review volumes.
func RatingSummary(reviews []Review) (avg float64, total int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}
