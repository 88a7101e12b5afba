package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

func (s *Server) handleReviewAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	review := &domain.Review{
		ProductID:  req.ProductID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviews.Add(r.Context(), review); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleReviewUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/reviews/update/"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid review id"})
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	review, err := s.reviews.Update(r.Context(), id, customerID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleReviewDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/reviews/delete/"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid review id"})
		return
	}
	if err := s.reviews.Delete(r.Context(), id, customerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
