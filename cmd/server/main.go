// Command server runs the Holoo admin backend: the HTTP API the retail
// dashboard talks to, backed by the Holoo accounting system.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/evasence/holoo-admin/internal/application/catalog"
	"github.com/evasence/holoo-admin/internal/application/identity"
	"github.com/evasence/holoo-admin/internal/application/invoicing"
	"github.com/evasence/holoo-admin/internal/application/partner"
	"github.com/evasence/holoo-admin/internal/infrastructure/config"
	"github.com/evasence/holoo-admin/internal/infrastructure/draft"
	"github.com/evasence/holoo-admin/internal/infrastructure/erp"
	"github.com/evasence/holoo-admin/internal/infrastructure/logger"
	"github.com/evasence/holoo-admin/internal/infrastructure/printing"
	"github.com/evasence/holoo-admin/internal/infrastructure/session"
	"github.com/evasence/holoo-admin/internal/infrastructure/storage"
	"github.com/evasence/holoo-admin/internal/infrastructure/telemetry"
	"github.com/evasence/holoo-admin/internal/interfaces/http/middleware"
	"github.com/evasence/holoo-admin/internal/interfaces/http/router"
)

func globalRateLimit(cfg *config.HTTPConfig) int {
	if !cfg.RateLimitEnabled {
		return 0
	}
	return cfg.RateLimitRequests
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	// Redis backs the token vault and the draft store. Development falls
	// back to in-memory stores when it is unreachable; production does not.
	var (
		vault  session.TokenVault
		drafts draft.Store
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	redisErr := redisClient.Ping(pingCtx).Err()
	cancel()
	if redisErr != nil {
		if cfg.App.Env == "production" {
			return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr(), redisErr)
		}
		log.Warn("redis unreachable, using in-memory session and draft stores",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(redisErr))
		vault = session.NewMemoryVault()
		drafts = draft.NewMemoryStore()
	} else {
		vault = session.NewRedisVaultWithClient(redisClient, "")
		drafts = draft.NewRedisStore(redisClient, cfg.Session.TTL)
		defer redisClient.Close()
	}

	erpClient, err := erp.NewClient(&erp.Config{
		BaseURL: cfg.Holoo.BaseURL,
		APIKey:  cfg.Holoo.APIKey,
		Timeout: cfg.Holoo.Timeout,
	}, log.Named("erp"))
	if err != nil {
		return fmt.Errorf("init holoo client: %w", err)
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.PDF.Timeout,
		RemoteURL:      cfg.PDF.RemoteURL,
		NoSandbox:      cfg.PDF.NoSandbox,
		Logger:         log.Named("pdf"),
	})
	if err != nil {
		return fmt.Errorf("init pdf renderer: %w", err)
	}
	defer renderer.Close()

	var archive storage.PDFArchive
	if cfg.Archive.Enabled {
		s3Archive, err := storage.NewS3Archive(&cfg.Archive, log.Named("archive"))
		if err != nil {
			return fmt.Errorf("init pdf archive: %w", err)
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("prepare archive bucket: %w", err)
		}
		archive = s3Archive
	}

	sessions := session.NewManager(cfg.Session, cfg.Cookie)
	guard := catalog.NewSearchGuard()

	identitySvc := identity.NewService(erpClient, sessions, vault, log.Named("identity"))
	catalogSvc := catalog.NewService(erpClient, guard, log.Named("catalog"))
	partnerSvc := partner.NewService(erpClient, log.Named("partner"))
	invoicingSvc := invoicing.NewService(erpClient, drafts, renderer, archive, log.Named("invoicing"))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine := router.Setup(router.Config{
		Logger:         log,
		Sessions:       sessions,
		Vault:          vault,
		Identity:       identitySvc,
		Catalog:        catalogSvc,
		Partners:       partnerSvc,
		Invoicing:      invoicingSvc,
		Prober:         erpClient,
		CORS:           corsCfg,
		BodyLimitBytes: cfg.HTTP.MaxBodySize,
		RateLimit:      globalRateLimit(&cfg.HTTP),
		RateWindow:     cfg.HTTP.RateLimitWindow,
		SearchLimit:    cfg.HTTP.SearchRateLimitRequests,
		SearchWindow:   cfg.HTTP.SearchRateLimitWindow,
		TracingEnabled: tracer.IsEnabled(),
		ServiceName:    cfg.Telemetry.ServiceName,
	})
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown failed", zap.Error(err))
	}

	log.Info("stopped")
	return nil
}
