package httpserver

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
)

const (
	roleCustomer = "customer"
	roleAdmin    = "admin"
)

type tokenClaims struct {
	Subject uuid.UUID
	Email   string
	Role    string
}

func (s *Server) issueToken(subject uuid.UUID, email, role string, dur time.Duration) (string, time.Time, error) {
	head := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	exp := time.Now().Add(dur)
	claims := map[string]any{"sub": subject.String(), "email": email, "role": role, "exp": exp.Unix(), "iat": time.Now().Unix(), "iss": "storefront"}
	b, _ := json.Marshal(claims)
	pay := base64.RawURLEncoding.EncodeToString(b)
	unsigned := head + "." + pay
	h := hmac.New(sha256.New, s.authSecret)
	h.Write([]byte(unsigned))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, exp, nil
}

func (s *Server) verifyToken(tok string) (*tokenClaims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token format")
	}
	unsigned := parts[0] + "." + parts[1]
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("token signature encoding")
	}
	h := hmac.New(sha256.New, s.authSecret)
	h.Write([]byte(unsigned))
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil, fmt.Errorf("token signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("token payload")
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("token json")
	}
	role, _ := m["role"].(string)
	email, _ := m["email"].(string)
	subRaw, _ := m["sub"].(string)
	expF, _ := m["exp"].(float64)
	sub, err := uuid.Parse(subRaw)
	if err != nil || role == "" {
		return nil, fmt.Errorf("token claims")
	}
	if time.Now().Unix() > int64(expF) {
		return nil, fmt.Errorf("token expired")
	}
	return &tokenClaims{Subject: sub, Email: email, Role: role}, nil
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// requireRole gates a handler; the zero UUID return means the response was
// already written.
func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, role string) (tokenClaims, bool) {
	tok := bearerToken(r)
	if tok == "" {
		writeError(w, domain.ErrUnauthorized)
		return tokenClaims{}, false
	}
	claims, err := s.verifyToken(tok)
	if err != nil || claims.Role != role {
		writeError(w, domain.ErrUnauthorized)
		return tokenClaims{}, false
	}
	return *claims, true
}

// requireAuth accepts any valid token regardless of role.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (tokenClaims, bool) {
	tok := bearerToken(r)
	if tok == "" {
		writeError(w, domain.ErrUnauthorized)
		return tokenClaims{}, false
	}
	claims, err := s.verifyToken(tok)
	if err != nil {
		writeError(w, domain.ErrUnauthorized)
		return tokenClaims{}, false
	}
	return *claims, true
}

func (s *Server) requireCustomer(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := s.requireRole(w, r, roleCustomer)
	return claims.Subject, ok
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	_, ok := s.requireRole(w, r, roleAdmin)
	return ok
}

// handleAdminLogin exchanges configured credentials for an admin token.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req struct {
		User string `json:"user"`
		Pass string `json:"pass"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !secureCompare(req.User, s.adminUser) || !secureCompare(req.Pass, s.adminPass) {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	tok, exp, err := s.issueToken(s.sellerID, req.User+"@local", roleAdmin, s.tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "expires_at": exp})
}

// handleGoogleLogin redirects to the Google consent screen.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if s.oauthCfg == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google login not configured"})
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state), http.StatusFound)
}

// handleGoogleCallback exchanges the code, upserts the customer and returns
// a bearer token.
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if s.oauthCfg == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "google login not configured"})
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), code)
	if err != nil {
		log.Warn().Err(err).Msg("google code exchange")
		writeError(w, domain.ErrUnauthorized)
		return
	}
	email, name, err := fetchGoogleProfile(r.Context(), tok.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("google userinfo")
		writeError(w, domain.ErrUnauthorized)
		return
	}

	customer, err := s.customers.FindByEmail(r.Context(), email)
	if err != nil {
		customer = &domain.Customer{ID: uuid.New(), Email: email, Name: name}
		if err := s.customers.Save(r.Context(), customer); err != nil {
			writeError(w, err)
			return
		}
	}
	bearer, exp, err := s.issueToken(customer.ID, customer.Email, roleCustomer, s.tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": bearer, "expires_at": exp, "customer": customer})
}

func fetchGoogleProfile(ctx context.Context, accessToken string) (email, name string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return "", "", fmt.Errorf("userinfo status %d: %s", res.StatusCode, string(b))
	}
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return "", "", err
	}
	if info.Email == "" {
		return "", "", fmt.Errorf("userinfo missing email")
	}
	return strings.ToLower(info.Email), info.Name, nil
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
