package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/bistro/internal/auth"
	"github.com/mmynk/bistro/internal/catalog"
	"github.com/mmynk/bistro/internal/config"
	"github.com/mmynk/bistro/internal/events"
	"github.com/mmynk/bistro/internal/ledger"
	"github.com/mmynk/bistro/internal/metrics"
	"github.com/mmynk/bistro/internal/middleware"
	"github.com/mmynk/bistro/internal/service"
	"github.com/mmynk/bistro/internal/storage"
	"github.com/mmynk/bistro/internal/storage/redisstore"
	"github.com/mmynk/bistro/internal/storage/sqlite"
	"github.com/mmynk/bistro/internal/suggest"
	"github.com/mmynk/bistro/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log.Level)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSecret() {
		logger.Warn("Using the development JWT secret; set BISTRO_AUTH_JWT_SECRET in production")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher := openPublisher(cfg, logger)
	defer publisher.Close()

	m := metrics.New()

	menu := catalog.New(ctx, store, catalog.WithLogger(logger), catalog.WithRecorder(m))
	if cfg.Menu.SeedFile != "" {
		if _, err := menu.Seed(ctx, cfg.Menu.SeedFile); err != nil {
			logger.Warn("Failed to seed menu", "path", cfg.Menu.SeedFile, "error", err)
		}
	}

	bills := ledger.New(ctx, menu, store,
		ledger.WithTaxRate(cfg.Billing.TaxRate),
		ledger.WithPublisher(publisher),
		ledger.WithRecorder(m),
		ledger.WithLogger(logger),
	)

	suggester := suggest.New(openGenerator(ctx, cfg, logger),
		suggest.WithTimeout(cfg.Suggest.Timeout),
		suggest.WithRatePerMinute(cfg.Suggest.RatePerMinute),
		suggest.WithRecorder(m),
		suggest.WithLogger(logger),
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Auth.SupervisorPINHash == "" {
		logger.Warn("No supervisor PIN configured; closed bills cannot be reopened")
	}

	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(m),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/healthz", healthHandler(store))
	r.Handle("/metrics", m.Handler())

	for _, register := range []func(...connect.HandlerOption) (string, http.Handler){
		service.NewBillingService(bills, cfg.Billing.CurrencySymbol, logger).Handler,
		service.NewMenuService(menu, logger).Handler,
		service.NewSuggestService(suggester).Handler,
		service.NewAuthService(auth.NewPINAuthenticator(cfg.Auth.SupervisorPINHash), jwtManager, logger).Handler,
	} {
		path, handler := register(interceptors)
		r.Mount(path, handler)
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr, "storage", cfg.Storage.Backend, "tax_rate", cfg.Billing.TaxRate.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		store, err := redisstore.New(ctx, cfg.Storage.RedisURL, "bistro:")
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "redis")
		return store, nil
	default:
		store, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.Storage.SQLitePath)
		return store, nil
	}
}

// openPublisher falls back to Noop when NATS is unset or unreachable.
func openPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.Events.NATSURL == "" {
		return events.Noop{}
	}
	publisher, err := events.NewNATSPublisher(cfg.Events.NATSURL)
	if err != nil {
		logger.Warn("Bill events disabled", "error", err)
		return events.Noop{}
	}
	logger.Info("Publishing bill events", "subject", events.BillsSubject)
	return publisher
}

// openGenerator returns nil when suggestions are not configured.
func openGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) suggest.Generator {
	if cfg.Suggest.APIKey == "" {
		logger.Info("AI suggestions disabled: no API key")
		return nil
	}
	gen, err := suggest.NewGeminiGenerator(ctx, cfg.Suggest.APIKey, cfg.Suggest.Model)
	if err != nil {
		logger.Warn("AI suggestions disabled", "error", err)
		return nil
	}
	return gen
}

func healthHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
