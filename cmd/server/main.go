package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/dealflow/dealflow-backend/internal/adapter/http"
	"github.com/dealflow/dealflow-backend/internal/adapter/repository/postgres"
	"github.com/dealflow/dealflow-backend/internal/store"
	"github.com/dealflow/dealflow-backend/internal/usecase/analysis"
	"github.com/dealflow/dealflow-backend/internal/usecase/comps"
	"github.com/dealflow/dealflow-backend/internal/usecase/portfolio"
	"github.com/dealflow/dealflow-backend/internal/usecase/property"
	"github.com/dealflow/dealflow-backend/internal/usecase/scenario"
)

const (
	defaultAPIToken = "dev-token"
	defaultHTTPAddr = ":8080"

	shutdownTimeout = 10 * time.Second
)

func main() {
	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "dealflow")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	propertyRepo := postgres.NewPropertyRepository(db)
	compRepo := postgres.NewCompRepository(db)
	scenarioRepo := postgres.NewScenarioRepository(db)

	// 3. Initialize the property state container and the change feed
	window := store.DefaultCoalesceWindow
	if raw := os.Getenv("COALESCE_WINDOW"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid COALESCE_WINDOW %q: %v", raw, err)
		}
		window = parsed
	}
	propertyStore := store.New(propertyRepo, window)

	hub := httpadapter.NewHub()
	propertyStore.Subscribe(hub)
	go hub.Run()

	// 4. Initialize Services (Use Cases)
	propertyService := property.NewService(propertyStore)
	compsService := comps.NewService(propertyRepo, compRepo)
	scenarioService := scenario.NewService(propertyRepo, scenarioRepo)
	analysisService := analysis.NewService(propertyRepo, compRepo)
	portfolioService := portfolio.NewService(propertyRepo)

	// 5. Start HTTP Server
	apiToken := envOr("API_TOKEN", defaultAPIToken)
	addr := envOr("HTTP_ADDR", defaultHTTPAddr)

	handler := httpadapter.NewHandler(
		propertyService,
		compsService,
		scenarioService,
		analysisService,
		portfolioService,
	)
	router := httpadapter.NewRouter(handler, hub, apiToken)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(srv, propertyStore, hub, db)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT, then drains the server, the
// store's queued writes, and the change feed
func waitForShutdown(srv *http.Server, propertyStore *store.Store, hub *httpadapter.Hub, db *postgres.DB) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}

	hub.Stop()

	if err := propertyStore.Close(); err != nil {
		log.Printf("Store flush on shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Database close: %v", err)
	}

	log.Println("Server stopped")
}
