package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/wallet-txcore/internal/common"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the transaction kinds that can be built",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, _, err := setup()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GROUP\tTYPE\tNAME\tSTATIC FEE\tMIN\tMAX")
		for _, d := range reg.Kinds() {
			dec := int(d.FeeDecimals())
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
				d.Key.Group, d.Key.Type, d.Name,
				common.FormatWithDecimals(d.StaticFee, dec),
				common.FormatWithDecimals(d.MinimumFee, dec),
				common.FormatWithDecimals(d.MaximumFee, dec),
			)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
