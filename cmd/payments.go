package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
)

var unreconciledLimit int

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Inspect redeemed payments",
}

var paymentsUnreconciledCmd = &cobra.Command{
	Use:   "unreconciled",
	Short: "Print payments that did not end in a recorded mint, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app := cakeclaim.New(*cfg, version, commit)
		defer app.Close(context.WithoutCancel(ctx))

		if err := app.SetupDatabase(ctx); err != nil {
			return err
		}
		return writeUnreconciled(ctx, app.PaymentRepository, unreconciledLimit, cmd.OutOrStdout())
	},
}

func writeUnreconciled(ctx context.Context, payments repositories.PaymentRepository, limit int, out io.Writer) error {
	open, err := payments.ListUnreconciled(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TX_HASH\tWALLET\tNETWORK\tSTATUS\tTOKEN\tCREATED\tREASON")
	for _, p := range open {
		token := "-"
		if p.TokenID != nil {
			token = fmt.Sprint(*p.TokenID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.TxHash, p.WalletAddress, p.Network, p.Status, token,
			p.CreatedAt.UTC().Format(time.RFC3339), p.FailureReason)
	}
	return w.Flush()
}

func init() {
	paymentsUnreconciledCmd.Flags().IntVar(&unreconciledLimit, "limit", 100, "maximum rows, 0 for all")

	paymentsCmd.AddCommand(paymentsUnreconciledCmd)
	rootCmd.AddCommand(paymentsCmd)
}
