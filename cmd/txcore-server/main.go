// Local API of the wallet transaction core.
// Usage: go run ./cmd/txcore-server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/wallet-txcore/internal/api"
	"github.com/AlexZinkM/wallet-txcore/internal/client"
	"github.com/AlexZinkM/wallet-txcore/internal/config"
	"github.com/AlexZinkM/wallet-txcore/internal/handler"
	"github.com/AlexZinkM/wallet-txcore/internal/i18n"
	"github.com/AlexZinkM/wallet-txcore/internal/logger"
	"github.com/AlexZinkM/wallet-txcore/internal/metrics"
	"github.com/AlexZinkM/wallet-txcore/market"
	"github.com/AlexZinkM/wallet-txcore/solana"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := config.Init(); err != nil {
		return err
	}

	log, err := logger.New(config.IsDevelopment(), config.GetLogLevel())
	if err != nil {
		return err
	}
	defer log.Sync()

	reg, err := transaction.NewDefaultRegistry()
	if err != nil {
		return fmt.Errorf("failed to register kinds: %w", err)
	}
	if err := reg.Register(solana.Descriptor()); err != nil {
		return fmt.Errorf("failed to register kinds: %w", err)
	}
	reg.Seal()

	peer := client.NewPeerClient(config.GetPeerURL(), config.GetPriceCurrencies())
	bindings := transaction.Bindings{}.
		BindAll(peer, transaction.StandardKinds()...).
		Bind(solana.Capability, solana.NewTransferBuilder(solana.NewRPCBlockhash(config.GetSolanaRPCURL())))
	if missing := bindings.Unbound(reg.Kinds()); len(missing) > 0 {
		return fmt.Errorf("%w: %v", transaction.ErrCapabilityNotBound, missing)
	}

	catalog, err := i18n.New(reg.Kinds())
	if err != nil {
		return err
	}

	m := metrics.New()
	oracle := market.NewOracle()
	feed := client.PriceFeed(peer,
		client.NewCoinGeckoClient(config.GetCoinGeckoURL(), config.GetCoinGeckoCoinID(), config.GetPriceCurrencies()))
	refresher := market.NewRefresher(feed, oracle, config.GetPriceRefreshInterval(), log, m.ObservePriceRefresh)

	forms := handler.NewFormsHandler(handler.Deps{
		Registry:        reg,
		Bindings:        bindings,
		Oracle:          oracle,
		Catalog:         catalog,
		Metrics:         m,
		Logger:          log,
		Handoff:         signerHandoff(log),
		DisplayCurrency: config.GetDisplayCurrency(),
		Language:        config.GetLanguage(),
		ReturnObject:    config.GetReturnObject(),
	})

	srv := &http.Server{
		Addr:              "127.0.0.1:" + config.GetPort(),
		Handler:           api.SetupRouter(forms, m, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresher.Run(ctx)
	})
	g.Go(func() error {
		log.Info("local API listening", zap.String("addr", srv.Addr), zap.Int("kinds", len(reg.Kinds())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// signerHandoff records built transactions. Signing and broadcasting belong to
// the wallet's signer, which receives the transaction from the API response.
func signerHandoff(log *zap.Logger) transaction.Handoff {
	return func(_ context.Context, s transaction.Signable, creds transaction.Credentials) error {
		log.Info("transaction ready for signing",
			zap.String("kind", s.Name),
			zap.Stringer("key", s.Key),
			zap.Uint64("fee", s.Fee),
			zap.Bool("hasPassphrase", len(creds.Passphrase) > 0),
			zap.Bool("hasSecondPassphrase", len(creds.SecondPassphrase) > 0),
		)
		return nil
	}
}
