package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
)

var (
	ownersFrom        int64
	ownersTo          int64
	ownersConcurrency int64
)

var ownersCmd = &cobra.Command{
	Use:   "owners",
	Short: "Print the on-chain owner of a range of token ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ownersFrom < 0 || ownersTo < ownersFrom {
			return errors.New("--from and --to must form a non-negative range")
		}
		ctx := cmd.Context()

		app := cakeclaim.New(*cfg, version, commit)
		defer app.Close(context.WithoutCancel(ctx))

		if err := app.SetupChains(ctx); err != nil {
			return err
		}

		ids := make([]int64, 0, ownersTo-ownersFrom+1)
		for id := ownersFrom; id <= ownersTo; id++ {
			ids = append(ids, id)
		}

		owners, err := app.Minter.OwnersOf(ctx, ids, ownersConcurrency)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, o := range owners {
			if o.Err != nil {
				fmt.Fprintf(out, "%d\terror: %v\n", o.TokenID, o.Err)
				continue
			}
			fmt.Fprintf(out, "%d\t%s\n", o.TokenID, o.Owner.Hex())
		}
		return nil
	},
}

func init() {
	ownersCmd.Flags().Int64Var(&ownersFrom, "from", 0, "first token id")
	ownersCmd.Flags().Int64Var(&ownersTo, "to", 0, "last token id")
	ownersCmd.Flags().Int64Var(&ownersConcurrency, "concurrency", 8, "parallel ownerOf calls")
	rootCmd.AddCommand(ownersCmd)
}
