// Package router wires middleware and handlers onto the gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/application/catalog"
	"github.com/evasence/holoo-admin/internal/application/identity"
	"github.com/evasence/holoo-admin/internal/application/invoicing"
	"github.com/evasence/holoo-admin/internal/application/partner"
	"github.com/evasence/holoo-admin/internal/infrastructure/logger"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
	"github.com/evasence/holoo-admin/internal/interfaces/http/handler"
	"github.com/evasence/holoo-admin/internal/interfaces/http/middleware"
)

// Config carries everything the router needs to assemble the API.
type Config struct {
	Logger         *zap.Logger
	Sessions       *session.Manager
	Vault          session.TokenVault
	Identity       *identity.Service
	Catalog        *catalog.Service
	Partners       *partner.Service
	Invoicing      *invoicing.Service
	Prober         handler.UpstreamProber
	CORS           middleware.CORSConfig
	BodyLimitBytes int64
	RateLimit      int
	RateWindow     time.Duration
	SearchLimit    int
	SearchWindow   time.Duration
	TracingEnabled bool
	ServiceName    string
}

// Setup builds the gin engine with all routes under /api/v1.
func Setup(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.TracingEnabled {
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if cfg.BodyLimitBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.BodyLimitBytes))
	}

	authHandler := handler.NewAuthHandler(cfg.Identity, cfg.Sessions, cfg.Catalog.Guard())
	productHandler := handler.NewProductHandler(cfg.Catalog)
	customerHandler := handler.NewCustomerHandler(cfg.Partners)
	sellerHandler := handler.NewSellerHandler(cfg.Partners)
	draftHandler := handler.NewDraftHandler(cfg.Invoicing)
	preInvoiceHandler := handler.NewPreInvoiceHandler(cfg.Invoicing)
	invoiceHandler := handler.NewInvoiceHandler(cfg.Invoicing)
	healthHandler := handler.NewHealthHandler(cfg.Prober)

	engine.GET("/health", healthHandler.Live)
	engine.GET("/ready", healthHandler.Ready)

	api := engine.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.SessionAuth(cfg.Sessions, cfg.Vault))
	if cfg.RateLimit > 0 {
		authed.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))
	}
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	searchLimiter := middleware.NewRateLimiter(cfg.SearchLimit, cfg.SearchWindow)
	authed.GET("/products/search", middleware.RateLimit(searchLimiter), productHandler.Search)
	authed.GET("/products", productHandler.List)

	authed.GET("/customers", customerHandler.List)
	authed.GET("/customers/search", middleware.RateLimit(searchLimiter), customerHandler.Search)
	authed.GET("/customers/:erpCode/addresses", customerHandler.Addresses)

	authed.GET("/sellers", sellerHandler.List)
	authed.GET("/sellers/search", sellerHandler.Search)

	authed.GET("/draft", draftHandler.Get)
	authed.PUT("/draft", draftHandler.Save)
	authed.DELETE("/draft", draftHandler.Clear)
	authed.POST("/draft/submit", draftHandler.Submit)

	authed.GET("/pre-invoices", preInvoiceHandler.List)
	authed.GET("/pre-invoices/:id", preInvoiceHandler.Get)
	authed.DELETE("/pre-invoices/:id", preInvoiceHandler.Delete)
	authed.POST("/pre-invoices/:id/convert", preInvoiceHandler.Convert)
	authed.GET("/pre-invoices/:id/pdf", preInvoiceHandler.ExportPDF)

	authed.GET("/invoices", invoiceHandler.List)
	authed.GET("/invoices/:id", invoiceHandler.Get)
	authed.GET("/invoices/:id/pdf", invoiceHandler.ExportPDF)

	return engine
}
