package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"fmgimport/internal/config"
	"fmgimport/internal/logger"
	"fmgimport/internal/repository/sqlstore"
)

const usage = "Usage: migrate [up|down|steps N|version]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	// Closing the migrator closes db as well.
	m, err := sqlstore.NewMigrator(db)
	if err != nil {
		zl.Fatal("failed to create migrate instance", zap.Error(err))
	}
	defer m.Close()

	cmd := os.Args[1]
	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration up failed", zap.Error(err))
		}
		zl.Info("migrations applied successfully", zap.String("driver", cfg.DB.Driver))

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration down failed", zap.Error(err))
		}
		zl.Info("migrations reverted successfully", zap.String("driver", cfg.DB.Driver))

	case "steps":
		if len(os.Args) < 3 {
			zl.Fatal("steps requires a number argument")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			zl.Fatal("invalid steps argument", zap.Error(err))
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			zl.Fatal("migration steps failed", zap.Error(err))
		}
		zl.Info("applied migration steps", zap.Int("steps", n))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			zl.Fatal("failed to get version", zap.Error(err))
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n", cmd)
		fmt.Println(usage)
		os.Exit(1)
	}
}
