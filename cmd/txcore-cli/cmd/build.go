package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/internal/common"
	"github.com/AlexZinkM/wallet-txcore/internal/config"
	"github.com/AlexZinkM/wallet-txcore/internal/i18n"
	"github.com/AlexZinkM/wallet-txcore/market"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fill a transaction form and build the transaction",
	Long: `Opens the form of the given kind, validates the asset, computes the fee and
asks the network for the signable transaction. The passphrase is read from the
terminal and handed to the signer only after a successful build.`,
	Example: `  txcore-cli build --group 1 --type 0 --asset '{"recipientId":"AXzxJ8Ts3dQ2bvBR1tPE7GUee9iSEJb8HX","amount":100000000}'
  txcore-cli build --group 2 --type 2 --asset @business.json --fee-mode advanced --fiat-fee 12.5`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Uint16P("group", "g", uint16(transaction.GroupCore), "transaction type group")
	buildCmd.Flags().Uint16P("type", "t", uint16(transaction.TypeTransfer), "transaction type")
	buildCmd.Flags().StringP("asset", "a", "{}", "asset as JSON, or @file to read it from a file")
	buildCmd.Flags().String("fee-mode", string(transaction.FeeModeFixed), "fee mode (fixed or advanced)")
	buildCmd.Flags().String("fee", "", "advanced fee in the network coin")
	buildCmd.Flags().String("fiat-fee", "", "advanced fee in the display currency")
	buildCmd.Flags().Bool("second-passphrase", false, "also ask for the second passphrase")
	buildCmd.Flags().StringP("output", "o", "", "write the transaction JSON to a file instead of stdout")
	buildCmd.Flags().Bool("qr", false, "print the transaction data as a QR code")
}

func runBuild(cmd *cobra.Command, args []string) error {
	group, _ := cmd.Flags().GetUint16("group")
	typ, _ := cmd.Flags().GetUint16("type")
	rawAsset, _ := cmd.Flags().GetString("asset")
	rawMode, _ := cmd.Flags().GetString("fee-mode")
	rawFee, _ := cmd.Flags().GetString("fee")
	rawFiat, _ := cmd.Flags().GetString("fiat-fee")
	askSecond, _ := cmd.Flags().GetBool("second-passphrase")
	output, _ := cmd.Flags().GetString("output")
	showQR, _ := cmd.Flags().GetBool("qr")

	reg, bindings, peer, err := setup()
	if err != nil {
		return err
	}
	key := transaction.NewKey(transaction.Group(group), transaction.Type(typ))
	desc, err := reg.Lookup(key.Group, key.Type)
	if err != nil {
		return err
	}

	asset, err := readAsset(rawAsset)
	if err != nil {
		return err
	}
	mode, err := transaction.ParseFeeMode(rawMode)
	if err != nil {
		return err
	}

	var fee *uint64
	if rawFee != "" {
		units, err := common.ParseWithDecimals(rawFee, int(desc.FeeDecimals()))
		if err != nil {
			return fmt.Errorf("invalid fee: %w", err)
		}
		fee = &units
	}
	var fiatFee *decimal.Decimal
	oracle := market.NewOracle()
	if rawFiat != "" {
		v, err := decimal.NewFromString(rawFiat)
		if err != nil {
			return fmt.Errorf("invalid fiat fee: %w", err)
		}
		fiatFee = &v
		if oracle, err = loadPrices(cmd, peer); err != nil {
			return err
		}
	}

	catalog, err := i18n.New(reg.Kinds())
	if err != nil {
		return err
	}
	tr, err := catalog.Translator(displayLanguage())
	if err != nil {
		return err
	}

	wf, err := transaction.NewWorkflow(reg, bindings, key,
		transaction.WithLogger(log),
		transaction.WithTranslator(tr),
		transaction.WithReturnObject(config.GetReturnObject()),
		transaction.WithCurrency(func() currency.Context {
			return currency.Context{
				CurrencyCode: displayCurrency(),
				LanguageTag:  displayLanguage(),
				Prices:       oracle.Prices(),
			}
		}),
		transaction.WithHandoff(func(_ context.Context, s transaction.Signable, creds transaction.Credentials) error {
			if len(creds.Passphrase) == 0 {
				return errors.New("no passphrase for the signer")
			}
			return writeSignable(s, int(desc.FeeDecimals()), output, showQR)
		}),
	)
	if err != nil {
		return err
	}
	defer wf.Cancel()

	passphrase, err := config.PromptForPassphrase("Passphrase")
	if err != nil {
		return err
	}
	var second []byte
	if askSecond {
		if second, err = config.PromptForPassphrase("Second passphrase"); err != nil {
			clear(passphrase)
			return err
		}
	}

	err = wf.Edit(func(d *transaction.Draft) {
		d.FeeMode = mode
		d.Fee = fee
		d.FiatFee = fiatFee
		d.Passphrase = passphrase
		d.SecondPassphrase = second
		for name, v := range asset {
			d.Asset[name] = v
		}
	})
	if err != nil {
		return err
	}

	result, err := wf.Submit(cmd.Context())
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		for _, fe := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Field, tr.Reason(fe.Reason))
		}
		return fmt.Errorf("%s: %w", desc.Name, result.Errors)
	}
	return nil
}

// readAsset decodes the asset flag, keeping numbers exact.
func readAsset(raw string) (transaction.Asset, error) {
	data := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset file: %w", err)
		}
		data = b
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	asset := transaction.Asset{}
	if err := dec.Decode(&asset); err != nil {
		return nil, fmt.Errorf("failed to parse asset: %w", err)
	}
	return asset, nil
}

type signableOutput struct {
	Kind      string            `json:"kind"`
	Type      uint16            `json:"type"`
	TypeGroup uint16            `json:"typeGroup"`
	Fee       string            `json:"fee"`
	Asset     transaction.Asset `json:"asset"`
	Data      json.RawMessage   `json:"data,omitempty"`
}

func writeSignable(s transaction.Signable, decimals int, output string, showQR bool) error {
	out, err := json.MarshalIndent(signableOutput{
		Kind:      s.Name,
		Type:      uint16(s.Key.Type),
		TypeGroup: uint16(s.Key.Group),
		Fee:       common.FormatWithDecimals(s.Fee, decimals),
		Asset:     s.Asset,
		Data:      s.Data,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}

	if output == "" {
		fmt.Println(string(out))
	} else {
		if err := os.WriteFile(output, out, 0o600); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", output)
	}

	if showQR && len(s.Data) > 0 {
		qr, err := qrcode.New(string(s.Data), qrcode.Low)
		if err != nil {
			return fmt.Errorf("failed to render QR code: %w", err)
		}
		fmt.Println(qr.ToSmallString(false))
	}
	return nil
}
