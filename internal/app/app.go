package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres"
	"github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres/dataset"
	"github.com/heartmarshall/cherokee-verbs/internal/adapter/source"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
	"github.com/heartmarshall/cherokee-verbs/internal/transport/middleware"
	"github.com/heartmarshall/cherokee-verbs/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// first catalog, serves HTTP until ctx is canceled and reloads the catalog
// on SIGHUP or on the configured interval.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("source", cfg.Source.Kind),
	)

	fetcher, closeFetcher, err := NewFetcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFetcher()

	svc := browse.NewService(logger, loader.New(logger, fetcher, FilesFromConfig(cfg.Source)), cfg.Search)

	// A failed first load keeps the server up: /ready reports 503 and
	// queries return "not loaded" until a reload succeeds.
	if err := reloadWithTimeout(ctx, svc, cfg.Source.LoadTimeout); err != nil {
		logger.Error("initial catalog load failed", slog.String("error", err.Error()))
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, logger, svc, rl),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		WatchReloads(gctx, logger, svc, cfg.Source, hup)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// NewHandler builds the HTTP handler: catalog and health routes behind the
// middleware chain.
func NewHandler(cfg *config.Config, logger *slog.Logger, svc *browse.Service, rl *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()
	rest.NewCatalogHandler(svc, logger).Register(mux)
	rest.NewHealthHandler(svc, Version).Register(mux)

	var limit middleware.Middleware
	if cfg.RateLimit.Enabled && rl != nil {
		limit = rl.Limit(cfg.RateLimit.PerMinute)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)(mux)
}

// NewFetcher selects the dataset source for cfg.Source.Kind. The returned
// close func releases whatever the source holds open.
func NewFetcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (loader.Fetcher, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceDir:
		return source.NewDir(cfg.Source.Dir), func() {}, nil
	case config.SourceHTTP:
		return source.NewHTTP(cfg.Source.BaseURL, logger,
			source.WithTimeout(cfg.Source.Timeout),
			source.WithRetry(cfg.Source.RetryInitial, cfg.Source.RetryMaxElapsed),
		), func() {}, nil
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, postgres.WithApplicationName("cherokee-verbs"), postgres.ReadOnly())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return dataset.New(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// FilesFromConfig maps the configured file names onto loader.Files.
func FilesFromConfig(cfg config.SourceConfig) loader.Files {
	return loader.Files{
		Dictionary: cfg.DictionaryFile,
		Morphology: cfg.MorphologyFile,
		Sentences:  cfg.SentencesFile,
		Links:      cfg.LinksFile,
		Classes:    cfg.ClassesFile,
	}
}

type reloader interface {
	Reload(ctx context.Context) error
}

// WatchReloads reloads the catalog whenever trigger fires and, if
// cfg.ReloadInterval is set, on every tick. It returns when ctx ends.
// A failed reload is logged; the previous snapshot keeps serving.
func WatchReloads(ctx context.Context, logger *slog.Logger, svc reloader, cfg config.SourceConfig, trigger <-chan os.Signal) {
	log := logger.With("service", "reload")

	var tick <-chan time.Time
	if cfg.ReloadInterval > 0 {
		ticker := time.NewTicker(cfg.ReloadInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		var reason string
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			reason = "signal"
		case <-tick:
			reason = "interval"
		}

		log.InfoContext(ctx, "reloading catalog", slog.String("reason", reason))
		if err := reloadWithTimeout(ctx, svc, cfg.LoadTimeout); err != nil {
			log.ErrorContext(ctx, "catalog reload failed",
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
		}
	}
}

func reloadWithTimeout(ctx context.Context, svc reloader, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return svc.Reload(ctx)
}
