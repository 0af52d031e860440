package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/visali231996/banking-agent/internal/agent"
	"github.com/visali231996/banking-agent/internal/audit"
	"github.com/visali231996/banking-agent/internal/config"
	"github.com/visali231996/banking-agent/internal/handler"
	"github.com/visali231996/banking-agent/internal/model/account"
	"github.com/visali231996/banking-agent/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	auditLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize audit logger: %v", err)
	}
	defer auditLogger.Sync()

	accounts, ledger, closeStore, err := buildStores(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to initialize account store: %v", err)
	}
	defer closeStore()

	engine := agent.New(accounts, ledger, audit.NewZapSink(auditLogger),
		agent.WithMaxSteps(cfg.Agent.MaxSteps))
	sessions := session.NewService(engine)

	router := handler.NewRouter(sessions, accounts, cfg.Server.AllowedOrigins)

	startServer(ctx, cfg.Server, router)
}

// buildStores assembles the account store and ledger for the configured
// driver, seeding from ACCOUNTS_FILE when provided and from the built-in demo
// data otherwise.
func buildStores(ctx context.Context, cfg config.StoreConfig) (account.Store, account.Ledger, func(), error) {
	seedAccounts, seedTxs := account.Seed()
	if cfg.AccountsFile != "" {
		var err error
		seedAccounts, seedTxs, err = account.LoadSeed(cfg.AccountsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("loaded %d accounts and %d transactions from %s",
			len(seedAccounts), len(seedTxs), cfg.AccountsFile)
	}

	if cfg.Driver == config.DriverSQLite {
		store, err := account.NewSQLite(cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := store.SeedIfEmpty(ctx, seedAccounts, seedTxs); err != nil {
			store.Close()
			return nil, nil, nil, err
		}
		log.Printf("using sqlite account store at %s", cfg.Path)
		return store, store, func() { store.Close() }, nil
	}

	log.Println("using in-memory account store")
	return account.NewMemoryStore(seedAccounts), account.NewMemoryLedger(seedTxs), func() {}, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("banking agent listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
