package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kent242/moneychat/internal/ai"
	"github.com/kent242/moneychat/internal/analytics"
	"github.com/kent242/moneychat/internal/api/handlers"
	"github.com/kent242/moneychat/internal/api/middleware"
	"github.com/kent242/moneychat/internal/chat"
	"github.com/kent242/moneychat/internal/config"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/logger"
	"github.com/kent242/moneychat/internal/store"
	storebq "github.com/kent242/moneychat/internal/store/bigquery"
	"github.com/kent242/moneychat/internal/store/inmemory"
	"github.com/kent242/moneychat/internal/transactions"
)

func main() {
	cfg := config.Load()

	var (
		addr     = flag.String("addr", cfg.ListenAddr, "HTTP listen address")
		backend  = flag.String("store", cfg.StoreBackend, "store backend: memory or bigquery")
		logLevel = flag.String("log-level", "info", "minimum log level")
	)
	flag.Parse()
	cfg.ListenAddr = *addr
	cfg.StoreBackend = *backend

	log := logger.WithLevel(logger.New("moneychat-api"), *logLevel)

	ctx := context.Background()

	txStore, catStore, closeStore, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer closeStore()

	gemini, err := ai.NewGemini(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI client")
	}

	txService := transactions.NewService(txStore, catStore, gemini, log)
	chatService := chat.NewService(gemini, txStore, catStore,
		chat.NewFormatter(cfg.CurrencyLocale, cfg.CurrencyCode), log)
	engine := analytics.NewEngine(cfg.RecentLimit)

	analyticsHandler := handlers.NewAnalyticsHandler(txStore, engine, cfg.BreakdownTopN, log)
	transactionsHandler := handlers.NewTransactionsHandler(txService, log)
	categoriesHandler := handlers.NewCategoriesHandler(catStore, log)
	chatHandler := handlers.NewChatHandler(chatService, log)

	api := http.NewServeMux()

	api.HandleFunc("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Post(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/transactions/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.Categories(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if id == "" || strings.Contains(id, "/") {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		switch r.Method {
		case http.MethodPatch:
			transactionsHandler.Update(w, r, id)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			categoriesHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	root := http.NewServeMux()
	root.Handle("/api/", middleware.Auth(api))
	root.HandleFunc("/health", handlers.Health)

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("store", cfg.StoreBackend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// buildStores selects the configured backend. The in-memory backend
// comes pre-seeded with the default categories so chat parsing has a
// taxonomy to offer.
func buildStores(ctx context.Context, cfg *config.Config) (store.TransactionStore, store.CategoryStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		mem := inmemory.NewStore()
		now := time.Now()
		for _, c := range domain.DefaultCategories() {
			c.ID = uuid.NewString()
			c.CreatedAt = now
			if err := mem.InsertCategory(ctx, c); err != nil {
				return nil, nil, nil, err
			}
		}
		return mem, mem.Categories(), func() {}, nil
	default:
		bq, err := storebq.NewStore(ctx, cfg.BigQuery)
		if err != nil {
			return nil, nil, nil, err
		}
		return bq, bq.Categories(), func() { _ = bq.Close() }, nil
	}
}
