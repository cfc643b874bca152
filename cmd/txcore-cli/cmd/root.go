package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-txcore/internal/client"
	"github.com/AlexZinkM/wallet-txcore/internal/config"
	"github.com/AlexZinkM/wallet-txcore/internal/logger"
	"github.com/AlexZinkM/wallet-txcore/market"
	"github.com/AlexZinkM/wallet-txcore/solana"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

var (
	flagCurrency string
	flagLanguage string
	flagVerbose  bool

	log *zap.Logger
)

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "txcore-cli",
	Short: "Build wallet transactions from the terminal",
	Long: `Builds ARK core, magistrate and Solana transfer transactions through the
same forms the desktop wallet uses, and formats amounts in display currencies.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if err := config.Init(); err != nil {
			return err
		}
		level := "warn"
		if flagVerbose {
			level = "debug"
		}
		l, err := logger.New(true, level)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCurrency, "currency", "c", "", "display currency (defaults to DISPLAY_CURRENCY)")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "display language (defaults to DISPLAY_LANGUAGE)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log workflow transitions")
}

func displayCurrency() string {
	if flagCurrency != "" {
		return flagCurrency
	}
	return config.GetDisplayCurrency()
}

func displayLanguage() string {
	if flagLanguage != "" {
		return flagLanguage
	}
	return config.GetLanguage()
}

// setup wires the registry and build capabilities the same way the server does.
func setup() (*transaction.Registry, transaction.Bindings, *client.PeerClient, error) {
	reg, err := transaction.NewDefaultRegistry()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register kinds: %w", err)
	}
	if err := reg.Register(solana.Descriptor()); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register kinds: %w", err)
	}
	reg.Seal()

	peer := client.NewPeerClient(config.GetPeerURL(), config.GetPriceCurrencies())
	bindings := transaction.Bindings{}.
		BindAll(peer, transaction.StandardKinds()...).
		Bind(solana.Capability, solana.NewTransferBuilder(solana.NewRPCBlockhash(config.GetSolanaRPCURL())))
	return reg, bindings, peer, nil
}

// loadPrices refreshes an oracle once from the configured feeds.
func loadPrices(cmd *cobra.Command, peer *client.PeerClient) (*market.Oracle, error) {
	oracle := market.NewOracle()
	feed := client.PriceFeed(peer,
		client.NewCoinGeckoClient(config.GetCoinGeckoURL(), config.GetCoinGeckoCoinID(), config.GetPriceCurrencies()))
	if err := market.NewRefresher(feed, oracle, config.GetPriceRefreshInterval(), log, nil).Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return oracle, nil
}
