package httpserver

import (
	"net/http"

	"github.com/sparkkart/storefront/internal/domain"
)

// handleSupportCreate is public; a bearer token, when present, links the
// ticket to the customer so replies can notify them.
func (s *Server) handleSupportCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Name     string                `json:"name"`
		Email    string                `json:"email"`
		Phone    string                `json:"phone"`
		Subject  string                `json:"subject"`
		Message  string                `json:"message"`
		Category string                `json:"category"`
		Priority domain.TicketPriority `json:"priority"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ticket := &domain.SupportTicket{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Priority: req.Priority,
	}
	if tok := bearerToken(r); tok != "" {
		if claims, err := s.verifyToken(tok); err == nil && claims.Role == roleCustomer {
			id := claims.Subject
			ticket.CustomerID = &id
		}
	}
	if err := s.support.Create(r.Context(), ticket); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleSupportMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	customerID, ok := s.requireCustomer(w, r)
	if !ok {
		return
	}
	items, err := s.support.Mine(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
