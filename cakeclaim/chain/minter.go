package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

// MintIssuer signs and broadcasts safeMint calls with the custodial key.
type MintIssuer struct {
	backend  Backend
	network  Network
	chainID  *big.Int
	contract common.Address
	key      *ecdsa.PrivateKey
	from     common.Address
	gasLimit uint64

	// held from nonce read to broadcast so two mints never share a nonce
	mu sync.Mutex
}

func NewMintIssuer(backend Backend, network Network, chainID *big.Int, contract common.Address, privateKey string, gasLimit uint64) (*MintIssuer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid minter private key: %w", err)
	}

	return &MintIssuer{
		backend:  backend,
		network:  network,
		chainID:  chainID,
		contract: contract,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		gasLimit: gasLimit,
	}, nil
}

func (m *MintIssuer) Address() common.Address {
	return m.from
}

func (m *MintIssuer) Network() Network {
	return m.network
}

// Mint sends safeMint(to, tokenID, uri) and returns the transaction hash
// once the node accepts it. It does not wait for the mint to be mined.
func (m *MintIssuer) Mint(ctx context.Context, to common.Address, tokenID int64, uri string) (common.Hash, error) {
	data, err := collectionABI.Pack("safeMint", to, big.NewInt(tokenID), uri)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: encode safeMint: %v", ErrMintFailed, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	gasPrice, err := m.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: gas price: %v", ErrUpstreamUnavailable, err)
	}

	nonce, err := m.backend.PendingNonceAt(ctx, m.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: nonce of %s: %v", ErrUpstreamUnavailable, m.from.Hex(), err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &m.contract,
		Value:    big.NewInt(0),
		Gas:      m.gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.NewEIP155Signer(m.chainID), m.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: sign: %v", ErrMintFailed, err)
	}

	if err := m.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("%w: token %d: %v", ErrMintFailed, tokenID, err)
	}

	logger.LogChain("Mint transaction sent", string(m.network),
		slog.Int64("token_id", tokenID),
		slog.String("to", to.Hex()),
		slog.String("tx_hash", signed.Hash().Hex()),
		slog.Uint64("nonce", nonce))

	return signed.Hash(), nil
}

func (m *MintIssuer) OwnerOf(ctx context.Context, tokenID int64) (common.Address, error) {
	return OwnerOf(ctx, m.backend, m.contract, tokenID)
}

func (m *MintIssuer) OwnersOf(ctx context.Context, tokenIDs []int64, concurrency int64) ([]Ownership, error) {
	return OwnersOf(ctx, m.backend, m.contract, tokenIDs, concurrency)
}
