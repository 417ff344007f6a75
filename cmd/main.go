package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/workshop/internal/httpapi"
	"github.com/tinoosan/workshop/internal/repair"
	"github.com/tinoosan/workshop/internal/storage/memory"
	pgstore "github.com/tinoosan/workshop/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	var srvMux http.Handler
	var closeFn func()

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		// Use Postgres store when DATABASE_URL is provided
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		srvMux = httpapi.New(pg, pg, logger).Handler()
		logger.Info("storage backend: postgres")
	} else {
		// Default to in-memory store, optionally with a small dev document
		store := memory.New()
		if dev := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); dev == "1" || dev == "true" || dev == "yes" {
			docID := seedDevDocument(store)
			logger.Info("DEV seed (memory)", "document_id", docID.String())
			printDevSeedBanner(docID)
		}
		srvMux = httpapi.New(store, store, logger).Handler()
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           srvMux,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("workshop service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// seedDevDocument loads a tiny repair document so the API has something to
// serve out of the box.
func seedDevDocument(store *memory.Store) uuid.UUID {
	docID := uuid.New()
	mk := func(key int, label, group, name string, kind repair.TxKind, price string, qty int) repair.LineItem {
		return repair.LineItem{
			ID:         uuid.New(),
			DocumentID: docID,
			OrderKey:   key,
			OrderLabel: label,
			WorkGroup:  group,
			RawName:    name,
			Kind:       kind,
			UnitPrice:  decimal.MustParse(price),
			Quantity:   qty,
		}
	}
	store.SeedItems(docID, []repair.LineItem{
		mk(1, "Ремонт двигателя", "Разборка", "Анализ", repair.TxIncome, "500", 1),
		mk(1, "Ремонт двигателя", "Замена запчастей", "Подшипник_ID_1", repair.TxIncome, "350.50", 2),
		mk(1, "Ремонт двигателя", "Замена запчастей", "Подшипник_ID_1", repair.TxExpense, "210", 2),
		mk(1, "Ремонт двигателя", "Сборка", "Балансировка", repair.TxIncome, "1200", 1),
	})
	return docID
}

// printDevSeedBanner prints the seeded document id for easy copy/paste
func printDevSeedBanner(docID uuid.UUID) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("document_id: %s\n", docID.String())
	fmt.Println("==================================================")
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
