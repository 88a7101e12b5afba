package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/usecase"
)

type Server struct {
	mux           *http.ServeMux
	products      *usecase.ProductUC
	carts         *usecase.CartUC
	orders        *usecase.OrderUC
	reviews       *usecase.ReviewUC
	categories    *usecase.CategoryUC
	support       *usecase.SupportUC
	notifications *usecase.NotificationUC
	customers     domain.CustomerRepo
	oauthCfg      *oauth2.Config

	authSecret []byte
	tokenTTL   time.Duration
	adminUser  string
	adminPass  string
	sellerID   uuid.UUID
}

type Deps struct {
	Products      *usecase.ProductUC
	Carts         *usecase.CartUC
	Orders        *usecase.OrderUC
	Reviews       *usecase.ReviewUC
	Categories    *usecase.CategoryUC
	Support       *usecase.SupportUC
	Notifications *usecase.NotificationUC
	Customers     domain.CustomerRepo
	OAuthConfig   *oauth2.Config

	AuthSecret []byte
	TokenTTL   time.Duration
	AdminUser  string
	AdminPass  string
	SellerID   uuid.UUID
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:           http.NewServeMux(),
		products:      d.Products,
		carts:         d.Carts,
		orders:        d.Orders,
		reviews:       d.Reviews,
		categories:    d.Categories,
		support:       d.Support,
		notifications: d.Notifications,
		customers:     d.Customers,
		oauthCfg:      d.OAuthConfig,
		authSecret:    d.AuthSecret,
		tokenTTL:      d.TokenTTL,
		adminUser:     d.AdminUser,
		adminPass:     d.AdminPass,
		sellerID:      d.SellerID,
	}
	if s.tokenTTL == 0 {
		s.tokenTTL = 72 * time.Hour
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	// catalog
	s.mux.HandleFunc("/api/products", s.handleProducts)
	s.mux.HandleFunc("/api/products/featured", s.handleFeatured)
	s.mux.HandleFunc("/api/products/", s.handleProductBySlug)
	s.mux.HandleFunc("/api/categories", s.handleCategories)

	// cart
	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/remove/", s.handleCartRemove)

	// orders
	s.mux.HandleFunc("/api/orders", s.handleOrders)
	s.mux.HandleFunc("/api/orders/", s.handleOrderByID)
	s.mux.HandleFunc("/webhooks/payment", s.handlePaymentWebhook)

	// reviews
	s.mux.HandleFunc("/api/reviews/add", s.handleReviewAdd)
	s.mux.HandleFunc("/api/reviews/update/", s.handleReviewUpdate)
	s.mux.HandleFunc("/api/reviews/delete/", s.handleReviewDelete)

	// notifications
	s.mux.HandleFunc("/api/notifications", s.handleNotifications)
	s.mux.HandleFunc("/api/notifications/", s.handleNotificationRead)

	// support
	s.mux.HandleFunc("/api/support", s.handleSupportCreate)
	s.mux.HandleFunc("/api/support/mine", s.handleSupportMine)

	// auth
	s.mux.HandleFunc("/api/auth/google", s.handleGoogleLogin)
	s.mux.HandleFunc("/api/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/api/auth/admin", s.handleAdminLogin)

	// admin
	s.mux.HandleFunc("/api/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/api/admin/products/", s.handleAdminProductBySlug)
	s.mux.HandleFunc("/api/admin/categories", s.handleAdminCategories)
	s.mux.HandleFunc("/api/admin/categories/", s.handleAdminCategoryByID)
	s.mux.HandleFunc("/api/admin/orders", s.handleAdminOrders)
	s.mux.HandleFunc("/api/admin/orders/export", s.handleAdminOrdersExport)
	s.mux.HandleFunc("/api/admin/orders/", s.handleAdminOrderByID)
	s.mux.HandleFunc("/api/admin/support", s.handleAdminSupport)
	s.mux.HandleFunc("/api/admin/support/", s.handleAdminSupportByID)
	s.mux.HandleFunc("/api/admin/dashboard", s.handleAdminDashboard)
}
