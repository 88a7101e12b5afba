package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	cart, lines, err := s.carts.Get(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": cart, "lines": lines})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
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
		Quantity  int       `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	cart, err := s.carts.AddItem(r.Context(), customerID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  int       `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	cart, err := s.carts.UpdateItem(r.Context(), customerID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/cart/remove/")
	productID, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	cart, err := s.carts.RemoveItem(r.Context(), customerID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
