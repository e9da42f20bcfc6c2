package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homebook/internal/config"
	"homebook/internal/form"
	"homebook/internal/handler"
	"homebook/internal/household"
	"homebook/internal/infra/api"
	"homebook/internal/infra/observability"
	"homebook/internal/monthtab"
	"homebook/internal/session"
	"homebook/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.String("session_file", cfg.SessionFile),
		zap.Int("month_window", cfg.MonthWindow),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "homebook")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Session ---
	sess := session.NewStore(cfg.SessionFile)

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	apiClient := api.NewClient(httpClient, cfg.APIBaseURL, sess, metrics, logger)
	apiClient.OnSessionInvalidated(func() {
		logger.Warn("session invalidated by upstream, login required")
	})

	authClient := api.NewAuthClient(apiClient, sess, logger)
	householdClient := api.NewHouseholdClient(apiClient)
	expenseClient := api.NewExpenseClient(apiClient)
	categoryClient := api.NewCategoryClient(apiClient)
	personClient := api.NewPersonClient(apiClient)

	// --- Household aggregate ---
	hh := household.NewProvider(householdClient, metrics, logger)
	if sess.IsAuthenticated() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := hh.Load(ctx); err != nil {
				logger.Warn("initial household load failed", zap.Error(err))
			}
		}()
	}

	// --- Controllers ---
	months := monthtab.NewController(time.Now(), cfg.MonthWindow)
	expenses := form.NewExpenseController(expenseClient, hh, months, form.AlwaysConfirm, logger)
	categories := form.NewCategoryController(categoryClient, householdClient, form.AlwaysConfirm, logger)
	members := form.NewMemberController(personClient, logger)

	// --- Templates ---
	templates, err := web.Templates()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Session:    sess,
		Auth:       authClient,
		Household:  hh,
		Months:     months,
		Expenses:   expenses,
		Categories: categories,
		Members:    members,
		Metrics:    metrics,
		Templates:  templates,
		Logger:     logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
