package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ellavondegurechaff/cakeclaim/backend"
	"github.com/ellavondegurechaff/cakeclaim/backend/handlers"
	"github.com/ellavondegurechaff/cakeclaim/backend/middleware"
	"github.com/ellavondegurechaff/cakeclaim/backend/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("Starting CakeClaim",
			slog.String("version", version),
			slog.String("commit", commit))

		app := cakeclaim.New(*cfg, version, commit)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			app.Close(closeCtx)
		}()

		if err := app.SetupDatabase(ctx); err != nil {
			return err
		}
		if err := app.SetupChains(ctx); err != nil {
			return err
		}
		if err := app.SetupClaims(ctx); err != nil {
			return err
		}

		limiter := middleware.NewRateLimiter(cfg.Web.RateLimit, cfg.Web.RateLimitWindow.Duration)
		limiter.StartCleanup(ctx)

		web := backend.NewApp(&handlers.WebApp{
			DB: app.DB,
			Repos: models.NewRepositories(
				app.CatalogRepository,
				app.TokenRepository,
				app.ClaimRecordRepository,
				app.PaymentRepository,
			),
			Claims:  app.Claims,
			Owners:  app.Minter,
			Version: version,
			Commit:  commit,
		}, backend.Options{
			AllowOrigins:   cfg.Web.AllowOrigins,
			StaticDir:      cfg.Web.StaticDir,
			RateLimiter:    limiter,
			ProxyHeader:    cfg.Web.ProxyHeader,
			TrustedProxies: cfg.Web.TrustedProxies,
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			addr := net.JoinHostPort(cfg.Web.Host, strconv.Itoa(cfg.Web.Port))
			slog.Info("Web server listening",
				slog.String("type", "http"),
				slog.String("addr", addr))
			return web.Listen(addr)
		})
		g.Go(func() error {
			<-gctx.Done()
			slog.Info("Shutting down web server", slog.String("type", "http"))

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return web.ShutdownWithContext(shutdownCtx)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		slog.Info("CakeClaim stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
