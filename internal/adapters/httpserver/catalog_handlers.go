package httpserver

import (
	"net/http"
	"strings"

	"github.com/sparkkart/storefront/internal/domain"
)

const publicPageSize = 20

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	f := domain.ProductFilter{
		Category:      r.URL.Query().Get("category"),
		MinPrice:      queryFloat(r, "minPrice"),
		MaxPrice:      queryFloat(r, "maxPrice"),
		Brands:        queryCSV(r, "brands"),
		AgeCategories: queryCSV(r, "ageCategories"),
		Tags:          queryCSV(r, "tags"),
		EcoFriendly:   queryBool(r, "isEcoFriendly"),
		GreenCrackers: queryBool(r, "isGreenCrackers"),
		MinRating:     queryFloat(r, "minRating"),
		SortBy:        r.URL.Query().Get("sortBy"),
		Page:          queryInt(r, "page", 1),
		PageSize:      publicPageSize,
	}
	items, total, err := s.products.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  f.Page,
	})
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	items, err := s.products.Featured(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleProductBySlug serves /api/products/{slug} and
// /api/products/{slug}/reviews.
func (s *Server) handleProductBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if slug, ok := strings.CutSuffix(rest, "/reviews"); ok {
		s.handleProductReviews(w, r, slug)
		return
	}
	p, err := s.products.GetBySlug(r.Context(), rest, false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductReviews(w http.ResponseWriter, r *http.Request, slug string) {
	p, err := s.products.GetBySlug(r.Context(), slug, false)
	if err != nil {
		writeError(w, err)
		return
	}
	reviews, err := s.reviews.ListByProduct(r.Context(), p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":          reviews,
		"average_rating": p.AverageRating,
		"total_reviews":  p.TotalReviews,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	items, err := s.categories.ListActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
