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

	"rentwear/internal/auth"
	"rentwear/internal/catalog"
	"rentwear/internal/config"
	"rentwear/internal/db"
	"rentwear/internal/feedback"
	"rentwear/internal/insights"
	"rentwear/internal/logger"
	"rentwear/internal/notification"
	"rentwear/internal/orders"
	"rentwear/internal/report"
	"rentwear/internal/router"
	"rentwear/internal/selection"
	"rentwear/internal/storage"
	"rentwear/internal/stylist"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		// the zap global is already flushed and restored here
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flush, err := logger.Init(cfg.Env)
	if err != nil {
		return err
	}
	defer flush()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, db.Options{
		DSN:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return err
	}
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	var images catalog.Storage
	if cfg.R2.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.R2.Endpoint,
			AccessKey:     cfg.R2.AccessKey,
			SecretKey:     cfg.R2.SecretKey,
			Bucket:        cfg.R2.Bucket,
			PublicBaseURL: cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return err
		}
		images = r2Client
	} else {
		zap.L().Warn("R2 not configured, image upload disabled")
	}

	// ───────────────────────── STYLIST ─────────────────────────
	var generator stylist.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := stylist.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer gemini.Close()
		generator = gemini
	} else {
		zap.L().Warn("GEMINI_API_KEY not set, stylist disabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	notifications := notification.NewService(notification.NewPostgresRepository(pgDB))

	authService := auth.NewService(auth.NewPostgresUserRepository(pgDB))
	if cfg.AdminEmail != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	catalogRepo := catalog.NewPostgresRepository(pgDB)
	catalogService := catalog.NewService(catalogRepo, images, notifications)
	insightsService := insights.NewService(insights.NewPostgresRepository(pgDB), catalogRepo, catalogService)

	carts := selection.NewRegistry(cfg.CartIdleTTL)
	cartService := selection.NewService(carts, catalogService)

	orderService := orders.NewService(orders.NewPostgresRepository(pgDB), cartService, notifications)
	feedbackService := feedback.NewService(feedback.NewPostgresRepository(pgDB))
	reportService := report.NewService(report.NewPostgresRepository(pgDB), catalogService, notifications)
	stylistService := stylist.NewService(generator, cartService)

	// ───────────────────────── HTTP ─────────────────────────
	engine := router.NewRouter(router.Options{
		Tokens:      tokens,
		Logger:      zap.L(),
		CORSOrigins: cfg.CORSOrigins,
	}, router.Handlers{
		Auth:          auth.NewHandler(authService, tokens, !cfg.IsProduction()),
		Catalog:       catalog.NewHandler(catalogService),
		Insights:      insights.NewHandler(insightsService),
		Cart:          selection.NewHandler(cartService),
		Orders:        orders.NewHandler(orderService),
		Feedback:      feedback.NewHandler(feedbackService),
		Reports:       report.NewHandler(reportService),
		Notifications: notification.NewHandler(notifications),
		Stylist:       stylist.NewHandler(stylistService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.S().Infof("API running at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.CartIdleTTL > 0 {
		g.Go(func() error {
			return carts.RunSweeper(gctx, cfg.CartSweepInterval)
		})
	}

	if cfg.InsightsRefreshInterval > 0 {
		g.Go(func() error {
			return insightsService.RunRefresher(gctx, cfg.InsightsRefreshInterval)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
