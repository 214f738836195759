package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/migration"
)

var (
	mongoURI      string
	mongoDatabase string
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Move data from older deployments",
}

var migrateLegacyCmd = &cobra.Command{
	Use:   "legacy",
	Short: "Import templates, minted tokens and claim history from the legacy MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if mongoURI == "" {
			mongoURI = cfg.Legacy.MongoURI
		}
		if mongoDatabase == "" {
			mongoDatabase = cfg.Legacy.Database
		}

		app := cakeclaim.New(*cfg, version, commit)
		defer app.Close(context.WithoutCancel(ctx))

		if err := app.SetupDatabase(ctx); err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}

		client, err := migration.ConnectMongo(ctx, mongoURI)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("Failed to disconnect from mongo", slog.Any("error", err))
			}
		}()

		migrator := migration.NewMigrator(
			app.CatalogRepository,
			app.TokenRepository,
			app.ClaimRecordRepository,
			chain.Network(cfg.Mint.Network),
		)
		migrator.UseMongo(client, mongoDatabase)

		if err := migrator.MigrateAll(ctx); err != nil {
			slog.Error("Migration failed", slog.Any("error", err))
			return err
		}

		stats := migrator.Stats()
		slog.Info("Migration completed successfully!",
			slog.Int("processed", stats.TotalProcessed),
			slog.Int("skipped", stats.TotalSkipped),
			slog.Int("errors", stats.TotalErrors))
		return nil
	},
}

func init() {
	migrateLegacyCmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "legacy MongoDB URI (defaults to legacy.mongo_uri)")
	migrateLegacyCmd.Flags().StringVar(&mongoDatabase, "mongo-db", "", "legacy database name (defaults to legacy.database)")
	migrateCMD.AddCommand(migrateLegacyCmd)
	rootCmd.AddCommand(migrateCMD)
}
