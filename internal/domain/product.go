package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var productCategories = map[string]struct{}{
	"sparklers":       {},
	"ground_spinners": {},
	"aerial":          {},
	"rockets":         {},
	"fountains":       {},
	"gift_box":        {},
	"novelty":         {},
}

type CategoryRef struct {
	Main string `gorm:"size:60;index" json:"main"`
	Slug string `gorm:"size:100" json:"slug"`
	Sub  string `gorm:"size:100" json:"sub"`
}

type Pricing struct {
	MRP                float64 `gorm:"type:decimal(12,2)" json:"mrp"`
	SellingPrice       float64 `gorm:"type:decimal(12,2)" json:"selling_price"`
	DiscountPercentage float64 `gorm:"type:decimal(6,2);default:0" json:"discount_percentage"`
}

// StockControl is the structured stock schema; older rows only carry the
// flat Stock column on Product. Both shapes stay readable.
type StockControl struct {
	TrackInventory bool `json:"track_inventory"`
	AvailableStock int  `json:"available_stock"`
}

type SpecPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Product struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug           string         `gorm:"uniqueIndex;size:140" json:"slug"`
	Name           string         `gorm:"size:180" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Brand          string         `gorm:"size:100;index" json:"brand"`
	Category       CategoryRef    `gorm:"embedded;embeddedPrefix:category_" json:"category"`
	Pricing        Pricing        `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	Images         []ProductImage `json:"images"`
	Stock          int            `gorm:"type:int;default:0" json:"stock"`
	StockControl   *StockControl  `gorm:"type:jsonb;serializer:json" json:"stock_control,omitempty"`
	Specifications []SpecPair     `gorm:"type:jsonb;serializer:json" json:"specifications"`
	Tags           []string       `gorm:"type:jsonb;serializer:json" json:"tags"`
	AgeCategories  []string       `gorm:"type:jsonb;serializer:json" json:"age_categories"`
	IsEcoFriendly  bool           `gorm:"default:false;index" json:"is_eco_friendly"`
	IsGreenCracker bool           `gorm:"default:false;index" json:"is_green_cracker"`
	IsDeleted      bool           `gorm:"default:false;index" json:"is_deleted"`
	IsFeatured     bool           `gorm:"default:false;index" json:"is_featured"`
	AverageRating  float64        `gorm:"type:decimal(3,2);default:0" json:"average_rating"`
	TotalReviews   int            `gorm:"type:int;default:0" json:"total_reviews"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	URL       string    `gorm:"size:255" json:"url"`
	Alt       string    `gorm:"size:140" json:"alt"`
	Position  int       `gorm:"type:int;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// AvailableStock prefers the structured schema when present and tracking,
// falling back to the flat column.
func (p *Product) AvailableStock() int {
	if p.StockControl != nil && p.StockControl.TrackInventory {
		return p.StockControl.AvailableStock
	}
	return p.Stock
}

// DecrementStock mutates whichever stock schema the row carries.
func (p *Product) DecrementStock(qty int) {
	if p.StockControl != nil && p.StockControl.TrackInventory {
		p.StockControl.AvailableStock -= qty
		return
	}
	p.Stock -= qty
}

// UnitPrice is the snapshot price for order items: selling price, falling
// back to MRP for legacy rows that never had one.
func (p *Product) UnitPrice() float64 {
	if p.Pricing.SellingPrice > 0 {
		return p.Pricing.SellingPrice
	}
	return p.Pricing.MRP
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.Pricing.MRP <= 0 {
		return &ValidationError{Field: "pricing.mrp", Reason: "must be positive"}
	}
	if p.Pricing.SellingPrice <= 0 {
		return &ValidationError{Field: "pricing.selling_price", Reason: "must be positive"}
	}
	if p.Pricing.SellingPrice > p.Pricing.MRP {
		return &ValidationError{Field: "pricing.selling_price", Reason: "cannot exceed mrp"}
	}
	if len(p.Images) < 1 || len(p.Images) > 5 {
		return &ValidationError{Field: "images", Reason: "between 1 and 5 images required"}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "cannot be negative"}
	}
	if p.StockControl != nil && p.StockControl.AvailableStock < 0 {
		return &ValidationError{Field: "stock_control.available_stock", Reason: "cannot be negative"}
	}
	if p.Category.Main != "" {
		if _, ok := productCategories[p.Category.Main]; !ok {
			return &ValidationError{Field: "category.main", Reason: "unknown category"}
		}
	}
	return nil
}

// RecomputeDiscount derives the discount percentage from the price pair.
func (p *Product) RecomputeDiscount() {
	if p.Pricing.MRP <= 0 || p.Pricing.SellingPrice >= p.Pricing.MRP {
		p.Pricing.DiscountPercentage = 0
		return
	}
	p.Pricing.DiscountPercentage = (p.Pricing.MRP - p.Pricing.SellingPrice) / p.Pricing.MRP * 100
}

// Slugify lowercases and strips a name down to a URL-safe slug.
func Slugify(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash && b.Len() > 0:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// NextSlug appends a numeric suffix until taken reports the slug free.
func NextSlug(base string, taken func(slug string) (bool, error)) (string, error) {
	if base == "" {
		base = uuid.NewString()[:8]
	}
	slug := base
	for i := 2; ; i++ {
		used, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !used {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
