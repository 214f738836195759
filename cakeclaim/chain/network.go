package chain

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

type Network string

const (
	Polygon       Network = "polygon"
	BNBSmartChain Network = "bnbSmartChain"
)

const (
	SchemeNative = "native"
	SchemeERC20  = "erc20"
)

// ChainConfig is the static description of a payment network.
type ChainConfig struct {
	Network          Network
	ChainID          int64
	Scheme           string
	ReceivingAddress string
	TokenAddress     string
	Amount           string
	GasLimit         uint64
}

// Chain binds a network to its RPC backend and payment scheme.
type Chain struct {
	Network Network
	ChainID *big.Int
	Backend Backend
	Scheme  PaymentScheme
}

// NewChain resolves cfg into a Chain. A zero chain id is read from the node.
func NewChain(ctx context.Context, cfg ChainConfig, backend Backend, tokens *TokenMetadata) (*Chain, error) {
	receiver, err := ParseAddress(cfg.ReceivingAddress)
	if err != nil {
		return nil, fmt.Errorf("%s receiving address: %w", cfg.Network, err)
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		if chainID, err = backend.ChainID(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s chain id: %v", ErrUpstreamUnavailable, cfg.Network, err)
		}
	}

	var scheme PaymentScheme
	switch cfg.Scheme {
	case SchemeNative:
		amount, err := ToBaseUnits(cfg.Amount, nativeDecimals)
		if err != nil {
			return nil, fmt.Errorf("%s amount: %w", cfg.Network, err)
		}
		scheme = &NativeTransfer{Receiver: receiver, Amount: amount, GasLimit: cfg.GasLimit}
	case SchemeERC20:
		token, err := ParseAddress(cfg.TokenAddress)
		if err != nil {
			return nil, fmt.Errorf("%s token address: %w", cfg.Network, err)
		}
		// decimals are only known once the token is queried
		if _, err = ToBaseUnits(cfg.Amount, math.MaxUint8); err != nil {
			return nil, fmt.Errorf("%s amount: %w", cfg.Network, err)
		}
		scheme = &TokenTransfer{
			Network:  cfg.Network,
			Token:    token,
			Receiver: receiver,
			Amount:   cfg.Amount,
			GasLimit: cfg.GasLimit,
			Metadata: tokens,
		}
	default:
		return nil, fmt.Errorf("%w: %s has unknown payment scheme %q", ErrUnsupportedNetwork, cfg.Network, cfg.Scheme)
	}

	return &Chain{
		Network: cfg.Network,
		ChainID: chainID,
		Backend: backend,
		Scheme:  scheme,
	}, nil
}

// Registry is the closed set of networks a claim can be paid on.
type Registry struct {
	chains         map[Network]*Chain
	defaultNetwork Network
	poller         *Poller
}

func NewRegistry(defaultNetwork Network, poller *Poller, chains ...*Chain) (*Registry, error) {
	r := &Registry{
		chains:         make(map[Network]*Chain, len(chains)),
		defaultNetwork: defaultNetwork,
		poller:         poller,
	}
	for _, c := range chains {
		r.chains[c.Network] = c
	}
	if _, ok := r.chains[defaultNetwork]; !ok {
		return nil, fmt.Errorf("%w: default network %q", ErrUnsupportedNetwork, defaultNetwork)
	}
	return r, nil
}

// Resolve maps a client supplied network id to a configured network. An
// empty id selects the default network.
func (r *Registry) Resolve(name string) (Network, error) {
	if name == "" {
		return r.defaultNetwork, nil
	}
	if _, ok := r.chains[Network(name)]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}
	return Network(name), nil
}

func (r *Registry) Chain(network Network) (*Chain, error) {
	c, ok := r.chains[network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}
	return c, nil
}

func (r *Registry) Networks() []Network {
	networks := make([]Network, 0, len(r.chains))
	for n := range r.chains {
		networks = append(networks, n)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })
	return networks
}

// BuildPayment returns the instruction the claimant signs to pay on network.
func (r *Registry) BuildPayment(ctx context.Context, network Network, from common.Address) (*PaymentInstruction, error) {
	c, err := r.Chain(network)
	if err != nil {
		return nil, err
	}

	instruction, err := c.Scheme.Build(ctx, c.Backend, from)
	if err != nil {
		return nil, err
	}
	instruction.ChainID = (*hexutil.Big)(new(big.Int).Set(c.ChainID))
	return instruction, nil
}

func (r *Registry) AwaitMined(ctx context.Context, network Network, hash common.Hash) (*types.Receipt, error) {
	c, err := r.Chain(network)
	if err != nil {
		return nil, err
	}
	return r.poller.AwaitMined(ctx, c.Backend, hash)
}

// VerifyPayment checks that a mined receipt is a successful payment from
// payer that satisfies the network's scheme.
func (r *Registry) VerifyPayment(ctx context.Context, network Network, receipt *types.Receipt, payer common.Address) error {
	c, err := r.Chain(network)
	if err != nil {
		return err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: transaction %s reverted", ErrPaymentRejected, receipt.TxHash.Hex())
	}

	tx, pending, err := c.Backend.TransactionByHash(ctx, receipt.TxHash)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrUpstreamUnavailable, receipt.TxHash.Hex(), err)
	}
	if pending {
		return fmt.Errorf("%w: transaction %s is still pending", ErrPaymentRejected, receipt.TxHash.Hex())
	}

	sender, err := types.Sender(types.LatestSignerForChainID(c.ChainID), tx)
	if err != nil {
		return fmt.Errorf("%w: recover sender: %v", ErrPaymentRejected, err)
	}
	if sender != payer {
		return fmt.Errorf("%w: sent by %s, not %s", ErrPaymentRejected, sender.Hex(), payer.Hex())
	}

	return c.Scheme.Check(ctx, c.Backend, tx)
}
