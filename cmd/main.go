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
	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/httpapi"
	"fintrack/internal/session"
	"fintrack/internal/storage/memory"
	pgstore "fintrack/internal/storage/postgres"
)

func main() {
	// .env is a dev convenience; absence is fine
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store   session.Store
		ready   httpapi.ReadyChecker
		closeFn func()
	)

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		if cfg.SeedDev {
			if userID, err := pg.SeedDev(ctx); err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logger.Info("DEV seed (postgres)", "user_id", userID.String())
				printDevSeedBanner(userID)
			}
		}
		store, ready = pg, pg
		logger.Info("storage backend: postgres")
	} else {
		mem := memory.New()
		if cfg.SeedDev {
			if userID, err := mem.SeedDev(ctx); err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logger.Info("DEV seed (memory)", "user_id", userID.String())
				printDevSeedBanner(userID)
			}
		}
		store, ready = mem, mem
		logger.Info("storage backend: memory")
	}

	sessions := session.NewManager(store)
	sessions.SetResolveTimeout(cfg.ResolveTimeout)
	api := httpapi.New(sessions, ready, httpapi.AuthConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}, cfg.Currency, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("finance tracker listening", "addr", srv.Addr)
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

// printDevSeedBanner prints the seeded user id to stdout for easy
// copy/paste into X-User-ID.
func printDevSeedBanner(userID uuid.UUID) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("user_id: %s\n", userID.String())
	fmt.Println("==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if strings.ToLower(cfg.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
