package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/eventstore/postgres"
	"github.com/api-sage/bank-ledger/internal/adapter/eventstore/sqlite"
	"github.com/api-sage/bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/router"
	"github.com/api-sage/bank-ledger/internal/config"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("open event store: %v", err)
	}
	defer cleanup()

	ledgerService := services.NewLedgerService(store, nil)
	statementService := services.NewStatementService(store)

	mux := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash),
		controller.NewLedgerController(ledgerService),
		controller.NewStatementController(statementService),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("bank-ledger listening on %s (store driver %s)", cfg.HTTPAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (eventstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}

		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := postgres.RunMigrations(migrateCtx, db, cfg.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return postgres.NewStore(db), func() { _ = db.Close() }, nil
	}
}
