package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/grpc"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/grpc/leaseholdv1"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/httpapi"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/repository/memory"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/adapter/repository/postgres"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/config"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/domain"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/premium"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/quote"
	"github.com/filippodiodati1-oss/leasehold-backend/internal/usecase/relativity"
)

func main() {
	// 1. Load configuration (defaults, YAML file, .env, environment)
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), ".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Repository
	var quoteRepo domain.QuoteRepository
	switch cfg.QuoteStore {
	case config.QuoteStoreMemory:
		quoteRepo = memory.NewQuoteRepository()
		log.Println("Using in-memory quote store")
	default:
		// Add 2-second delay to ensure Postgres is up (Simple retry)
		time.Sleep(2 * time.Second)

		db, err := postgres.NewDB(cfg.Database.ConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		quoteRepo = postgres.NewQuoteRepository(db)
		log.Println("Using PostgreSQL quote store")
	}

	// 3. Initialize Services (Use Cases)
	table, err := premium.NewTableInterpolated(cfg.Valuation.TableFallbackRatePct)
	if err != nil {
		log.Fatalf("Failed to build reference table: %v", err)
	}

	quoteService := quote.NewQuoteService(
		quoteRepo,
		relativity.DefaultCurve(),
		quote.Settings{
			StandardDefermentRatePct: cfg.Valuation.StandardDefermentRatePct,
			MinLeaseYears:            cfg.Valuation.MinLeaseYears,
			MaxLeaseYears:            cfg.Valuation.MaxLeaseYears,
			WaitingUpliftPct:         cfg.Valuation.WaitingUpliftPct,
		},
		premium.NewFormulaBased(),
		table,
	)

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	leaseholdv1.RegisterPremiumServiceServer(grpcServer, grpcadapter.NewServer(quoteService, cfg.Valuation.WaitingPeriods))

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCPort, err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 5. Start HTTP Server
	router := mux.NewRouter()
	httpapi.NewHandler(quoteService, cfg.Valuation.WaitingPeriods, cfg.APIToken).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:         cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(grpcServer *grpclib.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
