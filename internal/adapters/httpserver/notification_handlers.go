package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	unread := false
	if v := queryBool(r, "unread"); v != nil {
		unread = *v
	}
	items, err := s.notifications.ListByUser(r.Context(), claims.Subject, unread)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// PUT /api/notifications/{id}/read
func (s *Server) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	claims, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	raw, found := strings.CutSuffix(rest, "/read")
	if !found {
		http.NotFound(w, r)
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid notification id"})
		return
	}
	if err := s.notifications.MarkRead(r.Context(), id, claims.Subject); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
