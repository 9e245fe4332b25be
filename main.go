package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/classpoll/cliparse"
	"github.com/danielhkuo/classpoll/db"
	"github.com/danielhkuo/classpoll/middleware"
	"github.com/danielhkuo/classpoll/poller"
	"github.com/danielhkuo/classpoll/router"
	"github.com/danielhkuo/classpoll/session"
	"github.com/danielhkuo/classpoll/sheet"
	"github.com/danielhkuo/classpoll/store"
)

const (
	sweepInterval   = time.Minute
	minJobTimeout   = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	var err error

	logger := newLogger()
	slog.SetDefault(logger)

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to the spreadsheet
	spreadsheet, closeSheet, err := openSpreadsheet(ctx, cfg)
	if err != nil {
		slog.Error("spreadsheet connection failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closeSheet()

	st := store.New(spreadsheet)
	if cfg.StoreType == cliparse.StoreMemory {
		// nothing persists, so start from the sample questions
		if _, err := st.Seed(ctx); err != nil {
			slog.Error("seeding memory store failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Spreadsheet ready", "store", cfg.StoreType, "app", cfg.App)

	var mux *http.ServeMux
	var scheduler *poller.Scheduler
	switch cfg.App {
	case cliparse.AppAdmin:
		mux = router.NewAdminRouter(st, cfg)
	case cliparse.AppVote:
		feed := poller.NewFeed(st)
		sessions := session.NewRegistry()

		scheduler = poller.NewScheduler(logger, max(cfg.RefreshInterval, minJobTimeout))
		scheduler.Every("refresh-questions", cfg.RefreshInterval, feed.Refresh)
		scheduler.Every("sweep-sessions", sweepInterval, func(context.Context) error {
			if n := sessions.Sweep(cfg.SessionTTL); n > 0 {
				slog.Info("idle sessions removed", "count", n, "remaining", sessions.Len())
			}
			return nil
		})

		// first read before serving; failures show as banners until the next tick
		feed.Refresh(ctx)
		scheduler.Start()

		mux = router.NewVoteRouter(st, feed, sessions)
	}

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if scheduler != nil {
			if err := scheduler.Stop(shutdownCtx); err != nil {
				slog.Warn("scheduler did not stop cleanly", "error", err)
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "app", cfg.App)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newLogger writes text logs to a terminal and JSON everywhere else
func newLogger() *slog.Logger {
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// openSpreadsheet connects the configured backend. The returned func releases
// it.
func openSpreadsheet(ctx context.Context, cfg cliparse.Config) (sheet.Spreadsheet, func(), error) {
	noop := func() {}

	switch cfg.StoreType {
	case cliparse.StoreGoogle:
		credentials := []byte(cfg.CredentialsJSON)
		if len(credentials) == 0 {
			var err error
			credentials, err = os.ReadFile(cfg.CredentialsFile)
			if err != nil {
				return nil, noop, fmt.Errorf("failed to read credentials: %w", err)
			}
		}
		g, err := sheet.NewGoogle(ctx, cfg.SheetID, credentials)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil

	case cliparse.StoreSQLite, cliparse.StorePostgres:
		dbConn, err := sql.Open(cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database: %w", err)
		}
		if cfg.StoreType == cliparse.StoreSQLite {
			// one writer at a time keeps row numbering consistent
			dbConn.SetMaxOpenConns(1)
		}
		if err := dbConn.PingContext(ctx); err != nil {
			dbConn.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := db.CreateSchema(dbConn); err != nil {
			dbConn.Close()
			return nil, noop, fmt.Errorf("failed to create schema: %w", err)
		}
		return sheet.NewSQL(dbConn), func() { dbConn.Close() }, nil

	default:
		return sheet.NewMemory(), noop, nil
	}
}
