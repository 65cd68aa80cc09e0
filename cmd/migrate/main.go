package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/logger"
)

const usage = `Usage: migrate <command>

Commands:
  up        apply all pending migrations
  down      roll back the latest migration
  status    print the state of every migration
  reset     roll back all migrations
  version   print the current schema version`

func main() {
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	db, err := sql.Open("postgres", database.DSN(cfg))
	if err != nil {
		appLogger.Error("❌ [Migrate] Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		appLogger.Error("❌ [Migrate] Database is not reachable", "error", err)
		os.Exit(1)
	}

	goose.SetBaseFS(database.MigrationsFS())
	if err := goose.SetDialect("postgres"); err != nil {
		appLogger.Error("❌ [Migrate] Failed to set dialect", "error", err)
		os.Exit(1)
	}

	command := flag.Arg(0)
	appLogger.Info("🔄 [Migrate] Running command", "command", command, "database", cfg.PostgreSQLDatabase)

	switch command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	case "reset":
		err = goose.Reset(db, "migrations")
	case "version":
		err = goose.Version(db, "migrations")
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		appLogger.Error("❌ [Migrate] Command failed", "command", command, "error", err)
		os.Exit(1)
	}
	appLogger.Info("✅ [Migrate] Done", "command", command)
}
