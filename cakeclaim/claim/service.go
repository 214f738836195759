package claim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -destination=mock/service.go -package=mock . Chains,Minter,Alerter

// Chains is the network side of a claim: payment instructions and
// confirmation of the payment transaction.
type Chains interface {
	Resolve(name string) (chain.Network, error)
	BuildPayment(ctx context.Context, network chain.Network, from common.Address) (*chain.PaymentInstruction, error)
	AwaitMined(ctx context.Context, network chain.Network, hash common.Hash) (*types.Receipt, error)
	VerifyPayment(ctx context.Context, network chain.Network, receipt *types.Receipt, payer common.Address) error
}

type Minter interface {
	Mint(ctx context.Context, to common.Address, tokenID int64, uri string) (common.Hash, error)
	Network() chain.Network
}

// Alerter is told about paid claims that did not end in a recorded mint.
type Alerter interface {
	MintFailed(ctx context.Context, failure MintFailure)
}

type MintFailure struct {
	Wallet        string
	Network       string
	PaymentTxHash string
	TokenID       *int64
	Entry         string
	Err           error
}

type NopAlerter struct{}

func (NopAlerter) MintFailed(context.Context, MintFailure) {}

type Config struct {
	ConfirmationTimeout time.Duration
	VerifyPayments      bool
}

type Dependencies struct {
	Catalog  repositories.CatalogRepository
	Tokens   repositories.TokenRepository
	Payments repositories.PaymentRepository
	Gate     *Gate
	Selector *Selector
	Chains   Chains
	Minter   Minter
	Sessions *Manager
	Alerter  Alerter
}

// Reward is the outcome of a completed claim.
type Reward struct {
	Address         common.Address
	Entry           *models.CatalogEntry
	TokenID         int64
	TransactionHash common.Hash
	PaymentTxHash   common.Hash
}

type Service struct {
	catalog  repositories.CatalogRepository
	tokens   repositories.TokenRepository
	payments repositories.PaymentRepository
	gate     *Gate
	selector *Selector
	chains   Chains
	minter   Minter
	sessions *Manager
	alerter  Alerter
	cfg      Config
}

func NewService(cfg Config, deps Dependencies) *Service {
	s := &Service{
		catalog:  deps.Catalog,
		tokens:   deps.Tokens,
		payments: deps.Payments,
		gate:     deps.Gate,
		selector: deps.Selector,
		chains:   deps.Chains,
		minter:   deps.Minter,
		sessions: deps.Sessions,
		alerter:  deps.Alerter,
		cfg:      cfg,
	}
	if s.selector == nil {
		s.selector = NewSelector(nil)
	}
	if s.sessions == nil {
		s.sessions = NewManager(cfg.ConfirmationTimeout + time.Minute)
	}
	if s.alerter == nil {
		s.alerter = NopAlerter{}
	}
	return s
}

// RequestClaim builds the payment the wallet must send and admits it
// through the cooldown gate. The wallet's cooldown starts here, not at mint
// time, and the admission is the open claim VerifyAndMint redeems.
func (s *Service) RequestClaim(ctx context.Context, address, network string) (*chain.PaymentInstruction, error) {
	wallet, err := chain.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	net, err := s.chains.Resolve(network)
	if err != nil {
		return nil, err
	}

	// built first so an unreachable node does not cost the wallet its window
	instruction, err := s.chains.BuildPayment(ctx, net, wallet)
	if err != nil {
		return nil, err
	}

	decision, err := s.gate.CheckAndReserve(ctx, wallet.Hex())
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		logger.LogClaim("Claim denied", decision.Wallet,
			slog.String("network", string(net)),
			slog.Duration("retry_after", decision.RetryAfter))
		return nil, &CooldownError{RetryAfter: decision.RetryAfter}
	}

	logger.LogClaim("Claim reserved", decision.Wallet,
		slog.String("network", string(net)),
		slog.String("to", instruction.To.Hex()),
		slog.String("value", instruction.Value.String()))
	return instruction, nil
}

// VerifyAndMint waits for the payment transaction, picks a catalog entry and
// mints it to the payer. Each payment hash yields at most one reward, and
// each open claim is redeemed by at most one payment.
func (s *Service) VerifyAndMint(ctx context.Context, address, network, txHash string) (*Reward, error) {
	wallet, err := chain.ParseAddress(address)
	if err != nil {
		return nil, err
	}
	hash, err := chain.ParseTxHash(txHash)
	if err != nil {
		return nil, err
	}
	net, err := s.chains.Resolve(network)
	if err != nil {
		return nil, err
	}

	key := hash.Hex()
	if !s.sessions.Lock(key) {
		return nil, ErrVerificationInProgress
	}
	defer s.sessions.Release(key)

	existing, err := s.payments.Get(ctx, key)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s is %s", ErrPaymentAlreadyUsed, key, existing.Status)
	case !repositories.IsNotFound(err):
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	open, err := s.gate.HasOpenClaim(ctx, wallet.Hex())
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: %s", ErrNoOpenClaim, wallet.Hex())
	}

	receipt, err := s.awaitPayment(ctx, net, hash)
	if err != nil {
		return nil, err
	}
	if s.cfg.VerifyPayments {
		if err := s.chains.VerifyPayment(ctx, net, receipt, wallet); err != nil {
			return nil, err
		}
	}

	entries, err := s.catalog.List(ctx, repositories.OrderByInsertion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	entry, err := s.selector.Pick(entries)
	if err != nil {
		logger.LogError("Confirmed payment has no catalog entry to mint", err,
			slog.String("wallet", wallet.Hex()),
			slog.String("payment", key))
		return nil, err
	}

	payment := &models.Payment{
		TxHash:        key,
		WalletAddress: wallet.Hex(),
		Network:       string(net),
	}
	if err := s.payments.Register(ctx, payment, s.gate.stamp()); err != nil {
		if errors.Is(err, repositories.ErrPaymentExists) {
			return nil, fmt.Errorf("%w: %s", ErrPaymentAlreadyUsed, key)
		}
		if errors.Is(err, repositories.ErrNoReservation) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenClaim, wallet.Hex())
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	failure := MintFailure{
		Wallet:        wallet.Hex(),
		Network:       string(net),
		PaymentTxHash: key,
		Entry:         entry.Name,
	}

	tokenID, err := s.tokens.AllocateTokenID(ctx)
	if err != nil {
		failure.Err = err
		s.strand(ctx, failure)
		return nil, fmt.Errorf("%w: allocate token id: %v", ErrPersistence, err)
	}
	failure.TokenID = &tokenID

	mintHash, err := s.minter.Mint(ctx, wallet, tokenID, entry.MetadataURI)
	if err != nil {
		failure.Err = err
		s.strand(ctx, failure)
		if errors.Is(err, chain.ErrMintFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", chain.ErrMintFailed, err)
	}

	token := &models.IssuedToken{
		TokenID:      tokenID,
		Name:         entry.Name,
		MetadataURI:  entry.MetadataURI,
		ImageURI:     entry.ImageURI,
		OwnerAddress: wallet.Hex(),
		Network:      string(s.minter.Network()),
		MintTxHash:   mintHash.Hex(),
	}
	if err := s.payments.RecordMint(ctx, key, token); err != nil {
		failure.Err = fmt.Errorf("minted in %s but not recorded: %w", mintHash.Hex(), err)
		s.alerter.MintFailed(context.WithoutCancel(ctx), failure)
		return nil, fmt.Errorf("%w: record token %d: %v", ErrPersistence, tokenID, err)
	}

	logger.LogClaim("NFT minted", wallet.Hex(),
		slog.String("entry", entry.Name),
		slog.Int64("token_id", tokenID),
		slog.String("mint_tx", mintHash.Hex()),
		slog.String("payment", key))

	return &Reward{
		Address:         wallet,
		Entry:           entry,
		TokenID:         tokenID,
		TransactionHash: mintHash,
		PaymentTxHash:   hash,
	}, nil
}

func (s *Service) awaitPayment(ctx context.Context, network chain.Network, hash common.Hash) (*types.Receipt, error) {
	if s.cfg.ConfirmationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ConfirmationTimeout)
		defer cancel()
	}
	return s.chains.AwaitMined(ctx, network, hash)
}

// strand records a paid claim that produced no token. The payment stays in
// the unreconciled set for an operator.
func (s *Service) strand(ctx context.Context, failure MintFailure) {
	ctx = context.WithoutCancel(ctx)
	logger.LogError("Paid claim did not mint", failure.Err,
		slog.String("wallet", failure.Wallet),
		slog.String("payment", failure.PaymentTxHash),
		slog.String("entry", failure.Entry))

	if err := s.payments.MarkMintFailed(ctx, failure.PaymentTxHash, failure.TokenID, failure.Err.Error()); err != nil {
		logger.LogError("Failed to mark payment for reconciliation", err,
			slog.String("payment", failure.PaymentTxHash))
	}
	s.alerter.MintFailed(ctx, failure)
}
