package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqpadapter "certsale/internal/adapter/amqp"
	"certsale/internal/adapter/bolt"
	httpadapter "certsale/internal/adapter/http"
	"certsale/internal/adapter/ledger"
	"certsale/internal/adapter/metrics"
	"certsale/internal/adapter/payment"
	"certsale/internal/adapter/postgres"
	"certsale/internal/adapter/usecase"
	"certsale/internal/config"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
	"certsale/internal/db"
)

// app holds the wired service and everything that must be closed with it.
type app struct {
	svc     *usecase.CampaignUseCase
	book    *ledger.Book
	metrics *metrics.Recorder
	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close(logger)
		}
	}()

	repo, err := a.openRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := cfg.Ledger.TokenAddresses()
	if err != nil {
		return nil, err
	}
	a.book = ledger.NewBook(cfg.Ledger.FaucetEnabled, tokens...)
	gateway, err := payment.FromBook(a.book)
	if err != nil {
		return nil, err
	}

	var events port.EventPublisher = amqpadapter.NewLogPublisher(logger)
	if cfg.AMQP.Enabled {
		pub, err := amqpadapter.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		events = pub
		logger.Info("publishing events to amqp", slog.String("exchange", cfg.AMQP.Exchange))
	}

	opts := []usecase.Option{usecase.WithEvents(events), usecase.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.NewRecorder(cfg.Metrics.Namespace)
		opts = append(opts, usecase.WithMetrics(a.metrics))
	}
	a.svc = usecase.NewCampaignUseCase(repo, gateway, opts...)
	return a, nil
}

func (a *app) openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.CampaignRepository, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
			} else {
				logger.Info("migrations applied successfully")
			}
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		return postgres.NewCampaignRepository(pool), nil
	default:
		repo, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		logger.Info("using bolt storage", slog.String("path", cfg.Storage.BoltPath))
		return repo, nil
	}
}

func (a *app) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error("close error", slog.Any("error", err))
		}
	}
}

// runServe starts the HTTP server and shuts it down gracefully on SIGINT
// or SIGTERM.
func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger, seed bool) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	if seed {
		if err := seedCampaigns(ctx, a, cfg, logger); err != nil {
			return err
		}
	}

	var opts []httpadapter.Option
	if a.metrics != nil {
		opts = append(opts,
			httpadapter.WithMiddleware(a.metrics.Middleware),
			httpadapter.WithMetricsHandler(cfg.Metrics.Path, a.metrics.Handler()),
		)
	}
	handler := httpadapter.NewHandler(a.svc, a.book, logger, opts...)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var exit error
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		exit = signalExit(sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	return exit
}

func runMigrate(cfg config.Config, logger *slog.Logger) error {
	if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrations applied successfully")
	return nil
}

func runSeed(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)
	return seedCampaigns(ctx, a, cfg, logger)
}

func seedCampaigns(ctx context.Context, a *app, cfg config.Config, logger *slog.Logger) error {
	owner, err := domain.ParseIdentity(cfg.Ledger.SeedOwner)
	if err != nil {
		return err
	}
	tokens, err := cfg.Ledger.TokenAddresses()
	if err != nil {
		return err
	}
	ids, err := db.Seed(ctx, a.svc, owner, tokens)
	if err != nil {
		return err
	}
	for _, id := range ids {
		logger.Info("seeded campaign", slog.String("campaign", id.String()))
	}
	return nil
}
