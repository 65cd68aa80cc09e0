package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/logger"
	"github.com/capstone-archive/backend-go/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Students, "students", opts.Students, "number of student accounts")
	flag.IntVar(&opts.Projects, "projects", opts.Projects, "number of projects")
	flag.IntVar(&opts.BookmarksPerStudent, "bookmarks", opts.BookmarksPerStudent, "bookmarks per student")
	flag.IntVar(&opts.TrashedProjects, "trashed", opts.TrashedProjects, "projects moved to the trash")
	flag.StringVar(&opts.AdminEmail, "admin-email", opts.AdminEmail, "email of the demo admin")
	flag.Int64Var(&opts.RandSeed, "seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	cfg := config.LoadConfig()
	appLogger := logger.New(cfg)

	if cfg.IsProduction() {
		appLogger.Error("❌ [Seed] Refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ [Seed] Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	factory := seed.NewFactory(
		repository.NewUserRepository(db),
		repository.NewProjectRepository(db),
		repository.NewSavedProjectRepository(db),
		cfg.BcryptCost,
		appLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := factory.Run(ctx, opts); err != nil {
		appLogger.Error("❌ [Seed] Seeding failed", "error", err)
		os.Exit(1)
	}
}
