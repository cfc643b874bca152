package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: secrets are never read from the environment - use PromptForPassphrase()
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"production"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	PeerURL string `envconfig:"PEER_URL" default:"http://127.0.0.1:4003"`

	CoinGeckoURL        string   `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	CoinGeckoCoinID     string   `envconfig:"COINGECKO_COIN_ID" default:"ark"`
	PriceCurrencies     []string `envconfig:"PRICE_CURRENCIES" default:"usd,eur,gbp,btc"`
	PriceRefreshSeconds int      `envconfig:"PRICE_REFRESH_SECONDS" default:"60"`
	DisplayCurrency     string   `envconfig:"DISPLAY_CURRENCY" default:"usd"`
	Language            string   `envconfig:"DISPLAY_LANGUAGE" default:"en_US"`
	SolanaRPCURL        string   `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	ReturnObject        bool     `envconfig:"RETURN_OBJECT" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.PriceRefreshSeconds <= 0 {
		return fmt.Errorf("failed to process config: PRICE_REFRESH_SECONDS must be positive, got %d", c.PriceRefreshSeconds)
	}
	for i, code := range c.PriceCurrencies {
		c.PriceCurrencies[i] = strings.ToLower(strings.TrimSpace(code))
	}
	c.DisplayCurrency = strings.ToLower(c.DisplayCurrency)
	cfg = c
	return nil
}

// Set installs c as the global configuration. Intended for tests and
// commands that build the configuration from flags.
func Set(c *Config) {
	cfg = c
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// IsDevelopment reports whether APP_ENV selects development mode
func IsDevelopment() bool {
	env := strings.ToLower(Get().AppEnv)
	return env == "development" || env == "dev" || env == "local"
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return Get().LogLevel
}

// GetPeerURL returns the base URL of the network peer
func GetPeerURL() string {
	return strings.TrimRight(Get().PeerURL, "/")
}

// GetCoinGeckoURL returns CoinGecko API base URL
func GetCoinGeckoURL() string {
	return strings.TrimRight(Get().CoinGeckoURL, "/")
}

// GetCoinGeckoCoinID returns the CoinGecko id of the priced coin
func GetCoinGeckoCoinID() string {
	return Get().CoinGeckoCoinID
}

// GetPriceCurrencies returns the currencies prices are fetched in
func GetPriceCurrencies() []string {
	return append([]string(nil), Get().PriceCurrencies...)
}

// GetPriceRefreshInterval returns the price refresh interval
func GetPriceRefreshInterval() time.Duration {
	return time.Duration(Get().PriceRefreshSeconds) * time.Second
}

// GetDisplayCurrency returns the display currency code
func GetDisplayCurrency() string {
	return Get().DisplayCurrency
}

// GetLanguage returns the display language tag
func GetLanguage() string {
	return Get().Language
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetReturnObject returns whether build capabilities should include the full object
func GetReturnObject() bool {
	return Get().ReturnObject
}

// PromptForPassphrase prompts the user for a secret in the terminal.
// The input is read without echoing. Caller must zero the returned slice after use.
func PromptForPassphrase(label string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the command interactively to enter the passphrase")
	}
	fmt.Fprintf(os.Stderr, "Enter %s: ", label)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", label, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", label)
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
