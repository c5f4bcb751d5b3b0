package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humyn-ai/humyn/go/internal/analytics"
	"github.com/humyn-ai/humyn/go/internal/api"
	"github.com/humyn-ai/humyn/go/internal/audit"
	"github.com/humyn-ai/humyn/go/internal/auth"
	"github.com/humyn-ai/humyn/go/internal/billing"
	"github.com/humyn-ai/humyn/go/internal/config"
	"github.com/humyn-ai/humyn/go/internal/db"
	"github.com/humyn-ai/humyn/go/internal/entitlement"
	"github.com/humyn-ai/humyn/go/internal/humanize"
	"github.com/humyn-ai/humyn/go/internal/logger"
	"github.com/humyn-ai/humyn/go/internal/reports"
	"github.com/humyn-ai/humyn/go/internal/user"
)

func main() {
	cfg := config.Load()

	bunDB := db.NewBunPostgresClient(cfg.DatabaseURL)
	defer bunDB.Close()

	accountRepo := user.NewAccountRepository(bunDB)
	reportRepo := reports.NewReportRepository(bunDB)

	accountService := user.NewAccountService(accountRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(tokens)

	googleVerifier, err := auth.NewGoogleVerifier(cfg.GoogleClientID)
	if err != nil {
		log.Fatalf("Failed to create Google verifier: %v", err)
	}
	defer googleVerifier.Close()

	stripeBilling := billing.NewBilling(cfg)
	reconciler := billing.NewReconciler(accountRepo, stripeBilling)

	gemini, err := humanize.NewGeminiClient()
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	ledger := entitlement.NewLedger(accountRepo)
	humanizeService := humanize.NewService(gemini, ledger)
	auditLog := audit.NewLogger(logger.Log)

	analyticsService := analytics.NewService(accountRepo)

	router := api.SetupRoutes(api.RouterDeps{
		Auth:     api.NewAuthHandler(accountService, tokens, googleVerifier),
		Humanize: api.NewHumanizeHandler(humanizeService, auditLog),
		Billing:  api.NewBillingHandler(stripeBilling, reconciler, cfg.StripeSuccessURL, cfg.StripeCancelURL),
		Admin:    api.NewAdminHandler(analyticsService, reportRepo),

		AuthMiddleware: authMiddleware,
		Accounts:       accountRepo,

		AllowedOrigin:     cfg.FE_BASE_URL,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   time.Duration(cfg.RateLimitWindowMin) * time.Minute,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}
