package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-txcore/currency"
)

var formatCmd = &cobra.Command{
	Use:   "format <amount>",
	Short: "Format an amount in the display currency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}
		out, err := currency.Format(&amount, currency.Context{
			CurrencyCode: displayCurrency(),
			LanguageTag:  displayLanguage(),
		})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <amount>",
	Short: "Convert an amount of the network coin at the latest price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}
		_, _, peer, err := setup()
		if err != nil {
			return err
		}
		oracle, err := loadPrices(cmd, peer)
		if err != nil {
			return err
		}

		ctx := currency.Context{
			CurrencyCode: displayCurrency(),
			LanguageTag:  displayLanguage(),
			Prices:       oracle.Prices(),
		}
		value, err := currency.Convert(amount, ctx)
		if err != nil {
			return err
		}
		out, err := currency.Format(&value, ctx)
		if err != nil {
			return err
		}
		snap := oracle.Snapshot()
		fmt.Printf("%s (%s, %s)\n", out, snap.Source, snap.UpdatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd, convertCmd)
}
