package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/adapters/payments"
	"github.com/sparkkart/storefront/internal/domain"
)

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCheckout(w, r)
	case http.MethodGet:
		s.handleMyOrders(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	var req struct {
		ShippingAddress domain.ShippingAddress `json:"shipping_address"`
		PaymentMethod   domain.PaymentMethod   `json:"payment_method"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	order, err := s.orders.Checkout(r.Context(), customerID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{"order": order}
	if order.PaymentMethod == domain.PaymentMethodOnline {
		// handed to the gateway at redirect time, echoed back by the webhook
		resp["payment_reference"] = payments.SignReference(s.authSecret, order.ID.String())
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	orders, err := s.orders.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": orders})
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	orderID, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	order, err := s.orders.Get(r.Context(), orderID, customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// handlePaymentWebhook accepts the gateway callback. The reference must
// verify against our signing secret; the gateway itself is never called.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rawID, ok := payments.VerifyReference(s.authSecret, req.Reference)
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	success := strings.EqualFold(req.Status, "approved") || strings.EqualFold(req.Status, "success")
	order, err := s.orders.SettlePayment(r.Context(), orderID, success, req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order_id": order.ID, "payment_status": order.PaymentStatus})
}
