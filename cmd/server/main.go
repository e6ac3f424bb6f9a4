// Package main runs the token risk analysis service: HTTP API, WebSocket
// chat endpoint, and Prometheus metrics, backed by PostgreSQL (audit trail)
// and ClickHouse (analytics events).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tokenbrain/internal/analyzer"
	"tokenbrain/internal/explain"
	"tokenbrain/internal/risk"
	"tokenbrain/internal/server"
	"tokenbrain/internal/storage"
	chstore "tokenbrain/internal/storage/clickhouse"
	"tokenbrain/internal/storage/memory"
	"tokenbrain/internal/storage/migrations"
	pgstore "tokenbrain/internal/storage/postgres"
	"tokenbrain/internal/tokendata"
)

func main() {
	// Load .env file if present; system env vars take precedence.
	_ = godotenv.Load()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	heliusKey := flag.String("helius-api-key", os.Getenv("HELIUS_API_KEY"), "Helius API key")
	openrouterKey := flag.String("openrouter-api-key", os.Getenv("OPENROUTER_API_KEY"), "OpenRouter API key (empty = template narration)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	useStub := flag.Bool("use-stub", false, "Use deterministic stub token data instead of Helius")
	providerTimeout := flag.Duration("provider-timeout", tokendata.DefaultAggregatorTimeout, "Token data fetch timeout")

	flag.Parse()

	logger := log.New(os.Stdout, "[main] ", log.LstdFlags|log.Lshortfile)

	if !*useStub && *heliusKey == "" {
		logger.Fatal("--helius-api-key is required (use --use-stub for deterministic test data)")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stores
	recordStore, eventStore, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Token data provider
	var provider tokendata.Provider
	if *useStub {
		logger.Println("Using stub token data provider")
		provider = tokendata.NewStubProvider()
	} else {
		provider = tokendata.NewHeliusProvider(*heliusKey)
	}
	provider = tokendata.NewAggregator(provider, *providerTimeout)

	// Narrator
	var narrator explain.Narrator
	if *openrouterKey != "" {
		narrator = explain.NewOpenRouterNarrator(*openrouterKey)
	} else {
		logger.Println("No OpenRouter key, using template narration")
		narrator = explain.NewFallbackNarrator()
	}

	svc := analyzer.New(analyzer.Options{
		Provider:    provider,
		Engine:      risk.NewDefaultEngine(),
		Narrator:    narrator,
		RecordStore: recordStore,
		EventStore:  eventStore,
	})

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.New(svc).Handler(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Graceful shutdown failed: %v", err)
		}

		// Second signal forces immediate exit
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		default:
		}
	}()

	logger.Printf("Starting HTTP server on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the record and event stores, running migrations in
// database-backed mode.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (storage.AnalysisRecordStore, storage.EvaluationEventStore, func(), error) {
	if useMemory {
		return memory.NewAnalysisRecordStore(), memory.NewEvaluationEventStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}
	return pgstore.NewAnalysisRecordStore(pool), chstore.NewEvaluationEventStore(chConn), cleanup, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
