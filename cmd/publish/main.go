// Command publish uploads the catalog dataset files into the PostgreSQL
// dataset store, where servers with source kind "postgres" read them.
//
// The files are first loaded and joined locally so a dataset that cannot
// build a catalog is never published. All files are replaced in one
// transaction.
//
// Flags:
//
//	--dir           directory holding the dataset files (default: source.dir)
//	--migrate-only  apply migrations and exit
//	--skip-verify   publish without building the catalog first
//	--quiet         no progress bar
//
// Requires DATABASE_DSN (or database.dsn in the config file).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres"
	"github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres/dataset"
	"github.com/heartmarshall/cherokee-verbs/internal/adapter/source"
	"github.com/heartmarshall/cherokee-verbs/internal/app"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/migrations"
)

type options struct {
	dir         string
	migrateOnly bool
	skipVerify  bool
	quiet       bool
}

func main() {
	dirFlag := flag.String("dir", "", "directory holding the dataset files (default: source.dir)")
	migrateOnlyFlag := flag.Bool("migrate-only", false, "apply migrations and exit")
	skipVerifyFlag := flag.Bool("skip-verify", false, "publish without building the catalog first")
	quietFlag := flag.Bool("quiet", false, "no progress bar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("DATABASE_DSN (database.dsn) is required")
	}

	logger := app.NewLogger(cfg.Log)

	opts := options{
		dir:         cfg.Source.Dir,
		migrateOnly: *migrateOnlyFlag,
		skipVerify:  *skipVerifyFlag,
		quiet:       *quietFlag,
	}
	if *dirFlag != "" {
		opts.dir = *dirFlag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 10*time.Minute)
	defer cancelTimeout()

	if err := run(ctx, logger, cfg, opts); err != nil {
		logger.Error("publish failed", slog.String("error", err.Error()))
		cancelTimeout()
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts options) error {
	pool, err := postgres.NewPool(ctx, cfg.Database, postgres.WithApplicationName("cherokee-verbs-publish"))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(ctx, logger, db); err != nil {
		return err
	}
	if opts.migrateOnly {
		return nil
	}

	files := app.FilesFromConfig(cfg.Source)
	if !opts.skipVerify {
		if err := verify(ctx, logger, opts.dir, files, cfg.Source.LoadTimeout); err != nil {
			return err
		}
	}

	sources, err := readSources(opts.dir, files)
	if err != nil {
		return err
	}

	var publishOpts []dataset.PublisherOption
	if !opts.quiet {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar := uiprogress.AddBar(len(sources))
		bar.AppendCompleted()
		bar.PrependElapsed()
		publishOpts = append(publishOpts, dataset.WithProgress(func(dataset.Source) { bar.Incr() }))
	}

	publisher := dataset.NewPublisher(logger, dataset.New(pool), postgres.NewTxManager(pool), publishOpts...)
	return publisher.Publish(ctx, sources)
}

func migrate(ctx context.Context, logger *slog.Logger, db *sql.DB) error {
	results, err := migrations.Up(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// verify builds a catalog from the local files with the same loader the
// server uses.
func verify(ctx context.Context, logger *slog.Logger, dir string, files loader.Files, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cat, err := loader.New(logger, source.NewDir(dir), files).Load(ctx)
	if err != nil {
		return fmt.Errorf("verify dataset in %s: %w", dir, err)
	}
	if cat.Len() == 0 {
		return errors.New("verify dataset: no verb rows, refusing to publish an empty catalog")
	}
	return nil
}

func readSources(dir string, files loader.Files) ([]dataset.Source, error) {
	names := []string{files.Dictionary, files.Morphology, files.Sentences, files.Links, files.Classes}

	sources := make([]dataset.Source, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sources = append(sources, dataset.NewSource(name, content))
	}
	return sources, nil
}
