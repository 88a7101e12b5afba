package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/adapters/cache"
	"github.com/sparkkart/storefront/internal/adapters/httpserver"
	"github.com/sparkkart/storefront/internal/adapters/repo/postgres"
	"github.com/sparkkart/storefront/internal/config"
	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/messaging/kafka"
	"github.com/sparkkart/storefront/internal/notifier"
	"github.com/sparkkart/storefront/internal/usecase"
)

type App struct {
	DB       *gorm.DB
	Handler  http.Handler
	Notifier *notifier.Worker

	ProductUC      *usecase.ProductUC
	CartUC         *usecase.CartUC
	OrderUC        *usecase.OrderUC
	ReviewUC       *usecase.ReviewUC
	CategoryUC     *usecase.CategoryUC
	SupportUC      *usecase.SupportUC
	NotificationUC *usecase.NotificationUC
	Customers      domain.CustomerRepo
}

func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	cartRepo := postgres.NewCartRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)
	supportRepo := postgres.NewSupportRepo(db)
	custRepo := postgres.NewCustomerRepo(db)

	publisher, subscriber := kafka.NewBroker(cfg.Kafka.Brokers)

	app := &App{DB: db, Customers: custRepo}
	app.ProductUC = &usecase.ProductUC{Products: prodRepo}
	if !cfg.Redis.Disabled {
		client, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			ttl := time.Duration(cfg.Redis.CacheTTLSec) * time.Second
			app.ProductUC.Cache = cache.NewProductCache(client, ttl)
		}
	}
	app.CartUC = &usecase.CartUC{Carts: cartRepo, Products: prodRepo}
	app.OrderUC = &usecase.OrderUC{
		Orders:    orderRepo,
		Carts:     cartRepo,
		Products:  prodRepo,
		Publisher: publisher,
		SellerID:  cfg.SellerID(),
	}
	app.ReviewUC = &usecase.ReviewUC{Reviews: reviewRepo, Products: prodRepo}
	app.CategoryUC = &usecase.CategoryUC{Categories: categoryRepo}
	app.SupportUC = &usecase.SupportUC{Tickets: supportRepo, Publisher: publisher}
	app.NotificationUC = &usecase.NotificationUC{Notifications: notifRepo}

	app.Notifier = &notifier.Worker{
		Notifications: notifRepo,
		Subscriber:    subscriber,
		GroupID:       cfg.Kafka.GroupID,
	}

	var oauthCfg *oauth2.Config
	if cfg.Auth.GoogleClientID != "" && cfg.Auth.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Auth.BaseURL + "/api/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app.Handler = httpserver.New(httpserver.Deps{
		Products:      app.ProductUC,
		Carts:         app.CartUC,
		Orders:        app.OrderUC,
		Reviews:       app.ReviewUC,
		Categories:    app.CategoryUC,
		Support:       app.SupportUC,
		Notifications: app.NotificationUC,
		Customers:     custRepo,
		OAuthConfig:   oauthCfg,
		AuthSecret:    []byte(cfg.Auth.Secret),
		TokenTTL:      time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		AdminUser:     cfg.Auth.AdminUser,
		AdminPass:     cfg.Auth.AdminPass,
		SellerID:      cfg.SellerID(),
	})

	return app, nil
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.ProductImage{},
		&domain.Cart{}, &domain.CartItem{},
		&domain.Order{}, &domain.OrderItem{},
		&domain.Review{}, &domain.Category{},
		&domain.Notification{}, &domain.SupportTicket{},
		&domain.Customer{},
	); err != nil {
		return err
	}

	// columns added after the first release; AutoMigrate never drops or
	// rewrites, so these stay as idempotent statements
	_ = a.DB.Exec("ALTER TABLE products ADD COLUMN IF NOT EXISTS stock_control JSONB").Error
	_ = a.DB.Exec("ALTER TABLE products ADD COLUMN IF NOT EXISTS is_featured BOOLEAN DEFAULT false").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_is_featured ON products(is_featured)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_tags_gin ON products USING gin (tags)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_age_categories_gin ON products USING gin (age_categories)").Error

	_ = a.DB.Exec("ALTER TABLE orders ADD COLUMN IF NOT EXISTS payment_ref VARCHAR(140)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)").Error

	_ = a.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_customer_product ON reviews (customer_id, product_id)").Error

	if err := a.backfillSlugs(); err != nil {
		return err
	}
	return nil
}

// SeedDev inserts a starter catalog into an empty database. Never used in
// production.
func (a *App) SeedDev() error {
	var n int64
	if err := a.DB.Model(&domain.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	categories := []domain.Category{
		{ID: uuid.New(), Name: "Sparklers", Slug: "sparklers", IsActive: true, DisplayOrder: 1},
		{ID: uuid.New(), Name: "Rockets", Slug: "rockets", IsActive: true, DisplayOrder: 2},
		{ID: uuid.New(), Name: "Fountains", Slug: "fountains", IsActive: true, DisplayOrder: 3},
	}
	for i := range categories {
		if err := a.DB.Create(&categories[i]).Error; err != nil {
			return err
		}
	}
	products := []domain.Product{
		{
			ID:       uuid.New(),
			Name:     "Golden Sparkler 30cm",
			Slug:     "golden-sparkler-30cm",
			Category: domain.CategoryRef{Main: "sparklers", Slug: "sparklers"},
			Pricing:  domain.Pricing{MRP: 120, SellingPrice: 99, DiscountPercentage: 17.5},
			Images:   []domain.ProductImage{{ID: uuid.New(), URL: "/img/golden-sparkler.jpg"}},
			Stock:    200,
			Tags:     []string{"diwali", "kids"},
		},
		{
			ID:         uuid.New(),
			Name:       "Whistling Rocket",
			Slug:       "whistling-rocket",
			Category:   domain.CategoryRef{Main: "rockets", Slug: "rockets"},
			Pricing:    domain.Pricing{MRP: 350, SellingPrice: 350},
			Images:     []domain.ProductImage{{ID: uuid.New(), URL: "/img/whistling-rocket.jpg"}},
			Stock:      60,
			IsFeatured: true,
		},
	}
	for i := range products {
		products[i].Images[0].ProductID = products[i].ID
		if err := a.DB.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Info().Msg("seeded dev catalog")
	return nil
}

// backfillSlugs fills slugs for rows created before slugs existed.
func (a *App) backfillSlugs() error {
	var products []domain.Product
	if err := a.DB.Where("slug IS NULL OR slug = ''").Find(&products).Error; err != nil {
		return err
	}
	for _, p := range products {
		base := domain.Slugify(p.Name)
		if base == "" {
			base = p.ID.String()[:8]
		}
		slug, err := domain.NextSlug(base, func(s string) (bool, error) {
			var n int64
			err := a.DB.Model(&domain.Product{}).Where("slug = ?", s).Count(&n).Error
			return n > 0, err
		})
		if err != nil {
			return err
		}
		if err := a.DB.Model(&domain.Product{}).Where("id = ?", p.ID).Update("slug", slug).Error; err != nil {
			return err
		}
	}
	return nil
}
