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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/bankledger/internal/config"
	httpapi "github.com/tinoosan/bankledger/internal/httpapi/v1"
	"github.com/tinoosan/bankledger/internal/ledger"
	"github.com/tinoosan/bankledger/internal/service/banking"
	"github.com/tinoosan/bankledger/internal/storage/memory"
)

const purgeInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	l, err := ledger.New(ledger.Config{Currency: cfg.Currency, CredentialCost: cfg.CredentialCost})
	if err != nil {
		logger.Error("failed to build ledger", "err", err)
		os.Exit(1)
	}
	store := memory.New()
	svc := banking.New(l, store, cfg.SessionTTL, logger)

	if cfg.DevSeed {
		accs, err := seedDev(ctx, svc)
		if err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logDevSeed(logger, accs)
			printDevSeedBanner(accs)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.New(svc, store, logger).Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("bank ledger listening", "addr", srv.Addr, "currency", l.Currency())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		t := time.NewTicker(purgeInterval)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-t.C:
				if n := store.PurgeExpired(gctx, now); n > 0 {
					logger.Debug("expired sessions purged", "count", n)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

// seedDev opens two demo accounts through the service so metrics and logs see them.
func seedDev(ctx context.Context, svc banking.Service) ([]ledger.Details, error) {
	demo := []struct{ owner, credential, deposit string }{
		{"Alice", "alice", "100.00"},
		{"Bob", "bob", "50.00"},
	}
	out := make([]ledger.Details, 0, len(demo))
	for _, d := range demo {
		det, err := svc.OpenAccount(ctx, banking.OpenAccountInput{OwnerName: d.owner, Credential: d.credential})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", d.owner, err)
		}
		amt, err := svc.ParseAmount(d.deposit)
		if err != nil {
			return nil, err
		}
		if det.Balance, err = svc.Deposit(ctx, det.AccountID, amt); err != nil {
			return nil, fmt.Errorf("deposit %s: %w", d.owner, err)
		}
		out = append(out, det)
	}
	return out, nil
}

func logDevSeed(l *slog.Logger, accs []ledger.Details) {
	ids := map[string]int{}
	for _, a := range accs {
		ids[a.OwnerName] = a.AccountID
	}
	l.Info("DEV seed (memory)", "account_ids", ids)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of logins
func printDevSeedBanner(accs []ledger.Details) {
	fmt.Println("==================== DEV SEED ====================")
	for _, a := range accs {
		fmt.Printf("account_id: %d  owner_name: %s  balance: %s\n", a.AccountID, a.OwnerName, a.Balance.Decimal().String())
	}
	fmt.Println("credential: owner name in lower case")
	fmt.Println("==================================================")
}
