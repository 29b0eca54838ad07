// Command storectl runs maintenance tasks against the store database.
//
//	storectl migrate up|down
//	storectl create-admin -email admin@shop.example -password secret123
//	storectl seed -file deploy/seed.example.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/db"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/seed"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

const usage = `usage: storectl <command> [flags]

commands:
  migrate up|down      apply or roll back schema migrations
  create-admin         add an admin account
  seed                 load options, slides and products from a YAML file

DATABASE_URL must point at the store database. When REDIS_URL is set, seed
drops the cached settings of running servers.`

func main() {
	_ = godotenv.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:], log); err != nil {
		log.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, log *slog.Logger) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	switch cmd {
	case "migrate":
		return migrate(databaseURL, args, log)
	case "create-admin":
		return createAdmin(ctx, databaseURL, args, log)
	case "seed":
		return seedStore(ctx, databaseURL, args, log)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func migrate(databaseURL string, args []string, log *slog.Logger) error {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}
	switch direction {
	case "up":
		if err := db.Migrate(databaseURL); err != nil {
			return err
		}
	case "down":
		if err := db.MigrateDown(databaseURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
	log.Info("migrations applied", "direction", direction)
	return nil
}

func createAdmin(ctx context.Context, databaseURL string, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	email := fs.String("email", "", "admin e-mail address")
	password := fs.String("password", "", "admin password, at least 8 characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repos, closeFn, err := openRepositories(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeFn()

	// signing is never used here, so the manager only needs to exist
	svc := auth.NewService(repos.Admins, auth.NewJWTManager(auth.JWTConfig{}), false, log)
	admin, err := svc.CreateAdmin(ctx, *email, *password)
	if err != nil {
		return err
	}
	log.Info("admin created", "admin_id", admin.ID, "email", admin.Email)
	return nil
}

func seedStore(ctx context.Context, databaseURL string, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	path := fs.String("file", "deploy/seed.example.yaml", "seed document")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := seed.Load(f)
	if err != nil {
		return err
	}

	repos, closeFn, err := openRepositories(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeFn()

	var store cache.Store = cache.NewMemoryStore()
	if url := os.Getenv("REDIS_URL"); url != "" {
		rs, err := cache.NewRedisStoreFromURL(ctx, url)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs
	}
	settings := service.NewSettingsService(repos.Settings, store, time.Minute, log)

	_, err = seed.Apply(ctx, repos, settings, doc, log)
	return err
}

func openRepositories(ctx context.Context, databaseURL string) (*repository.Repositories, func(), error) {
	pool, err := db.NewPostgres(ctx, db.PoolConfig{URL: databaseURL, MaxConns: 2, MinConns: 1})
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPostgres(pool), pool.Close, nil
}
