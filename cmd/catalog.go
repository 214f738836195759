package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/services"
)

var (
	catalogFile    string
	catalogPublish bool
	catalogQuery   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the reward catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Add the entries of a TOML catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(catalogFile)
		if err != nil {
			return err
		}
		defer f.Close()

		file, err := services.ParseCatalogFile(f)
		if err != nil {
			return err
		}

		app := cakeclaim.New(*cfg, version, commit)
		defer app.Close(context.WithoutCancel(ctx))

		if err := app.SetupDatabase(ctx); err != nil {
			return err
		}
		if catalogPublish {
			if err := app.SetupSpaces(ctx); err != nil {
				return err
			}
		}

		result, err := services.NewCatalogImportService(app.CatalogRepository, app.SpacesService).
			Import(ctx, file, catalogPublish)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created %d, skipped %d, published %d\n",
			len(result.Created), len(result.Skipped), result.Published)
		for _, name := range result.Skipped {
			fmt.Fprintf(out, "  skipped %q: already in catalog\n", name)
		}
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the catalog, rarest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app := cakeclaim.New(*cfg, version, commit)
		defer app.Close(context.WithoutCancel(ctx))

		if err := app.SetupDatabase(ctx); err != nil {
			return err
		}

		entries, err := app.CatalogRepository.List(ctx, repositories.OrderByWeight)
		if err != nil {
			return err
		}
		if catalogQuery != "" {
			entries = services.SearchCatalog(entries, catalogQuery)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tWEIGHT\tMETADATA")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%g\t%s\n", e.Name, e.Weight, e.MetadataURI)
		}
		return w.Flush()
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&catalogFile, "file", "", "catalog TOML file")
	catalogImportCmd.Flags().BoolVar(&catalogPublish, "publish", false, "upload generated metadata to Spaces for entries without metadata_uri")
	catalogImportCmd.MarkFlagRequired("file")

	catalogListCmd.Flags().StringVarP(&catalogQuery, "query", "q", "", "fuzzy filter by name")

	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
