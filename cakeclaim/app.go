package cakeclaim

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/claim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/services"
)

const tokenMetadataCacheSize = 16

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
		clients: make(map[chain.Network]*ethclient.Client),
	}
}

// App holds the long lived dependencies shared by the CLI commands.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB                    *database.DB
	CatalogRepository     repositories.CatalogRepository
	TokenRepository       repositories.TokenRepository
	ClaimRecordRepository repositories.ClaimRecordRepository
	PaymentRepository     repositories.PaymentRepository

	Registry      *chain.Registry
	Minter        *chain.MintIssuer
	Sessions      *claim.Manager
	Claims        *claim.Service
	SpacesService *services.SpacesService
	Alerter       claim.Alerter

	clients map[chain.Network]*ethclient.Client
}

// SetupDatabase connects to postgres, brings the schema up to date and
// builds the repositories.
func (a *App) SetupDatabase(ctx context.Context) error {
	start := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     a.Cfg.DB.Host,
		Port:     a.Cfg.DB.Port,
		User:     a.Cfg.DB.User,
		Password: a.Cfg.DB.Password,
		Database: a.Cfg.DB.Database,
		PoolSize: a.Cfg.DB.PoolSize,
	})
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.DB = db

	if err := db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	bunDB := db.BunDB()
	a.CatalogRepository = repositories.NewCatalogRepository(bunDB)
	a.TokenRepository = repositories.NewTokenRepository(bunDB)
	a.ClaimRecordRepository = repositories.NewClaimRecordRepository(bunDB)
	a.PaymentRepository = repositories.NewPaymentRepository(bunDB)

	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("database", a.Cfg.DB.Database),
		slog.Duration("took", time.Since(start)))
	return nil
}

// SetupChains dials every configured network and prepares the mint issuer.
func (a *App) SetupChains(ctx context.Context) error {
	tokens, err := chain.NewTokenMetadata(tokenMetadataCacheSize)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(a.Cfg.Networks))
	for name := range a.Cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	chains := make([]*chain.Chain, 0, len(names))
	for _, name := range names {
		network := a.Cfg.Networks[name]
		client, err := chain.Dial(ctx, network.RPCURL)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		a.clients[chain.Network(name)] = client

		c, err := chain.NewChain(ctx, chain.ChainConfig{
			Network:          chain.Network(name),
			ChainID:          network.ChainID,
			Scheme:           network.Scheme,
			ReceivingAddress: network.ReceivingAddress,
			TokenAddress:     network.TokenAddress,
			Amount:           network.Amount,
			GasLimit:         network.GasLimit,
		}, client, tokens)
		if err != nil {
			return err
		}
		chains = append(chains, c)

		slog.Info("Network configured",
			slog.String("type", "chain"),
			slog.String("network", name),
			slog.String("scheme", network.Scheme),
			slog.Any("chain_id", c.ChainID))
	}

	a.Registry, err = chain.NewRegistry(chain.Network(a.Cfg.Claim.DefaultNetwork),
		chain.NewPoller(a.Cfg.Claim.PollInterval.Duration), chains...)
	if err != nil {
		return err
	}

	mintChain, err := a.Registry.Chain(chain.Network(a.Cfg.Mint.Network))
	if err != nil {
		return err
	}
	contract, err := chain.ParseAddress(a.Cfg.Mint.ContractAddress)
	if err != nil {
		return fmt.Errorf("mint contract address: %w", err)
	}
	a.Minter, err = chain.NewMintIssuer(mintChain.Backend, mintChain.Network,
		new(big.Int).Set(mintChain.ChainID), contract, a.Cfg.Mint.PrivateKey, a.Cfg.Mint.GasLimit)
	if err != nil {
		return err
	}

	slog.Info("Mint issuer ready",
		slog.String("type", "chain"),
		slog.String("network", a.Cfg.Mint.Network),
		slog.String("contract", contract.Hex()),
		slog.String("minter", a.Minter.Address().Hex()))
	return nil
}

// SetupSpaces connects the metadata bucket when credentials are configured.
func (a *App) SetupSpaces(ctx context.Context) error {
	if !a.Cfg.Spaces.Enabled() {
		return nil
	}
	spaces, err := services.NewSpacesService(ctx,
		a.Cfg.Spaces.Key,
		a.Cfg.Spaces.Secret,
		a.Cfg.Spaces.Region,
		a.Cfg.Spaces.Bucket,
		a.Cfg.Spaces.MetadataRoot,
	)
	if err != nil {
		return err
	}
	a.SpacesService = spaces
	return nil
}

// SetupClaims builds the claim service. Database and chains must be set up.
func (a *App) SetupClaims(ctx context.Context) error {
	next, err := a.TokenRepository.SyncSequence(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync token sequence: %w", err)
	}
	slog.Info("Token sequence synced",
		slog.String("type", "db"),
		slog.Int64("next_token_id", next))

	a.Alerter = claim.NopAlerter{}
	if url := a.Cfg.Alerts.DiscordWebhookURL; url != "" {
		alerter, err := services.NewDiscordAlerter(url)
		if err != nil {
			return err
		}
		a.Alerter = alerter
	}

	a.Sessions = claim.NewManager(a.Cfg.Claim.SessionTTL.Duration)
	a.Sessions.StartCleanupRoutine(ctx)

	a.Claims = claim.NewService(
		claim.Config{
			ConfirmationTimeout: a.Cfg.Claim.ConfirmationTimeout.Duration,
			VerifyPayments:      a.Cfg.Claim.VerifyPayments,
		},
		claim.Dependencies{
			Catalog:  a.CatalogRepository,
			Tokens:   a.TokenRepository,
			Payments: a.PaymentRepository,
			Gate:     claim.NewGate(a.ClaimRecordRepository, a.Cfg.Claim.Cooldown.Duration),
			Chains:   a.Registry,
			Minter:   a.Minter,
			Sessions: a.Sessions,
			Alerter:  a.Alerter,
		},
	)
	return nil
}

func (a *App) Close(ctx context.Context) {
	if closer, ok := a.Alerter.(*services.DiscordAlerter); ok {
		closer.Close(ctx)
	}
	for _, client := range a.clients {
		client.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
