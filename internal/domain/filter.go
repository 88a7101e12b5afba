package domain

// ClauseKind tags the members of the filter expression union. Folding the
// typed clauses into one predicate happens in the repository; building them
// here keeps operator nesting out of handler code entirely.
type ClauseKind int

const (
	// ClauseEq matches a column against a single value.
	ClauseEq ClauseKind = iota
	// ClauseRange bounds a numeric column; either end may be open.
	ClauseRange
	// ClauseContains matches a jsonb array column containing a value.
	ClauseContains
	// ClauseAnyOf groups members with OR.
	ClauseAnyOf
	// ClauseAllOf groups members with AND.
	ClauseAllOf
)

type Clause struct {
	Kind   ClauseKind
	Column string
	Value  any
	Min    *float64
	Max    *float64
	Group  []Clause
}

func Eq(column string, value any) Clause { return Clause{Kind: ClauseEq, Column: column, Value: value} }

func Range(column string, min, max *float64) Clause {
	return Clause{Kind: ClauseRange, Column: column, Min: min, Max: max}
}

func Contains(column, value string) Clause {
	return Clause{Kind: ClauseContains, Column: column, Value: value}
}

func AnyOf(group ...Clause) Clause { return Clause{Kind: ClauseAnyOf, Group: group} }

func AllOf(group ...Clause) Clause { return Clause{Kind: ClauseAllOf, Group: group} }

type ProductFilter struct {
	Category       string
	MinPrice       *float64
	MaxPrice       *float64
	Brands         []string
	AgeCategories  []string
	Tags           []string
	EcoFriendly    *bool
	GreenCrackers  *bool
	MinRating      *float64
	IncludeDeleted bool
	SortBy         string
	Page           int
	PageSize       int
}

// Clauses folds the filter parameters into the typed expression list. Each
// parameter contributes at most one top-level clause, so independent OR and
// AND groups can never collide on an operator key.
func (f ProductFilter) Clauses() []Clause {
	cs := []Clause{}
	if !f.IncludeDeleted {
		cs = append(cs, Eq("is_deleted", false))
	}
	if f.Category != "" {
		cs = append(cs, Eq("category_slug", f.Category))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		cs = append(cs, Range("pricing_selling_price", f.MinPrice, f.MaxPrice))
	}
	if len(f.Brands) > 0 {
		group := make([]Clause, 0, len(f.Brands))
		for _, b := range f.Brands {
			group = append(group, Eq("brand", b))
		}
		cs = append(cs, AnyOf(group...))
	}
	if len(f.AgeCategories) > 0 {
		group := make([]Clause, 0, len(f.AgeCategories))
		for _, a := range f.AgeCategories {
			group = append(group, Contains("age_categories", a))
		}
		cs = append(cs, AnyOf(group...))
	}
	if len(f.Tags) > 0 {
		group := make([]Clause, 0, len(f.Tags))
		for _, t := range f.Tags {
			group = append(group, Contains("tags", t))
		}
		cs = append(cs, AllOf(group...))
	}
	if f.EcoFriendly != nil {
		cs = append(cs, Eq("is_eco_friendly", *f.EcoFriendly))
	}
	if f.GreenCrackers != nil {
		cs = append(cs, Eq("is_green_cracker", *f.GreenCrackers))
	}
	if f.MinRating != nil {
		cs = append(cs, Range("average_rating", f.MinRating, nil))
	}
	return cs
}

type SortSpec struct {
	Column string
	Desc   bool
}

var sortSpecs = map[string]SortSpec{
	"price_asc":  {Column: "pricing_selling_price"},
	"price_desc": {Column: "pricing_selling_price", Desc: true},
	"newest":     {Column: "created_at", Desc: true},
	"rating":     {Column: "average_rating", Desc: true},
	"discount":   {Column: "pricing_discount_percentage", Desc: true},
	"name":       {Column: "name"},
}

// Sort resolves the sortBy enum; unknown values fall back to name order.
func (f ProductFilter) Sort() SortSpec {
	if s, ok := sortSpecs[f.SortBy]; ok {
		return s
	}
	return SortSpec{Column: "name"}
}
