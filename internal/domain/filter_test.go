package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestProductFilterClauses(t *testing.T) {
	t.Run("empty filter still hides deleted rows", func(t *testing.T) {
		cs := ProductFilter{}.Clauses()
		require.Len(t, cs, 1)
		assert.Equal(t, ClauseEq, cs[0].Kind)
		assert.Equal(t, "is_deleted", cs[0].Column)
		assert.Equal(t, false, cs[0].Value)
	})

	t.Run("include deleted drops the flag clause", func(t *testing.T) {
		cs := ProductFilter{IncludeDeleted: true}.Clauses()
		assert.Empty(t, cs)
	})

	t.Run("brands fold to one or group", func(t *testing.T) {
		cs := ProductFilter{IncludeDeleted: true, Brands: []string{"cock", "standard"}}.Clauses()
		require.Len(t, cs, 1)
		assert.Equal(t, ClauseAnyOf, cs[0].Kind)
		require.Len(t, cs[0].Group, 2)
		assert.Equal(t, "brand", cs[0].Group[0].Column)
	})

	t.Run("tags fold to one and group", func(t *testing.T) {
		cs := ProductFilter{IncludeDeleted: true, Tags: []string{"diwali", "kids"}}.Clauses()
		require.Len(t, cs, 1)
		assert.Equal(t, ClauseAllOf, cs[0].Kind)
		for _, c := range cs[0].Group {
			assert.Equal(t, ClauseContains, c.Kind)
			assert.Equal(t, "tags", c.Column)
		}
	})

	t.Run("each parameter contributes its own top-level clause", func(t *testing.T) {
		f := ProductFilter{
			Category:      "sparklers",
			MinPrice:      floatPtr(10),
			MaxPrice:      floatPtr(500),
			Brands:        []string{"cock"},
			AgeCategories: []string{"kids", "adults"},
			Tags:          []string{"diwali"},
			EcoFriendly:   boolPtr(true),
			GreenCrackers: boolPtr(false),
			MinRating:     floatPtr(4),
		}
		cs := f.Clauses()
		assert.Len(t, cs, 10)
	})

	t.Run("min rating becomes an open range", func(t *testing.T) {
		cs := ProductFilter{IncludeDeleted: true, MinRating: floatPtr(3.5)}.Clauses()
		require.Len(t, cs, 1)
		assert.Equal(t, ClauseRange, cs[0].Kind)
		assert.Equal(t, "average_rating", cs[0].Column)
		require.NotNil(t, cs[0].Min)
		assert.Nil(t, cs[0].Max)
	})
}

func TestProductFilterSort(t *testing.T) {
	assert.Equal(t, SortSpec{Column: "pricing_selling_price"}, ProductFilter{SortBy: "price_asc"}.Sort())
	assert.Equal(t, SortSpec{Column: "created_at", Desc: true}, ProductFilter{SortBy: "newest"}.Sort())
	assert.Equal(t, SortSpec{Column: "name"}, ProductFilter{SortBy: "bogus"}.Sort())
	assert.Equal(t, SortSpec{Column: "name"}, ProductFilter{}.Sort())
}
