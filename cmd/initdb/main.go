// Package main is a one-shot database bootstrap tool.
//
// Run it once against a fresh database to create the schema and seed the
// admin account, categories, and badges:
//
//	DATABASE_URL=data/devquest.db go run ./cmd/initdb
//
// Running it again is harmless: the bootstrap probes for an existing
// schema and exits without touching anything. The API server runs the
// same bootstrap at startup; this tool exists for deployments that
// prepare the database before the server ever starts (e.g. a release
// hook on the hosting platform).
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/muaz-405/DevQuest/internal/auth"
	sqliteRepo "github.com/muaz-405/DevQuest/internal/repository/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Unlike the server, there is no default here. A bootstrap tool that
	// silently creates a database in the working directory would mask a
	// misconfigured deployment, which is exactly when this tool runs.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	if dir := filepath.Dir(databaseURL); databaseURL != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	db, err := sqliteRepo.New(databaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Bootstrap(ctx, auth.NewPasswordService()); err != nil {
		logger.Error("bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("database ready", slog.String("database", databaseURL))
}
