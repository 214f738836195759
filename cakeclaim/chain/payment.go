package chain

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru"
)

const nativeDecimals = 18

// PaymentInstruction is an eth_sendTransaction request object for the
// claimant's wallet to sign.
type PaymentInstruction struct {
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	Value   *hexutil.Big   `json:"value"`
	Gas     hexutil.Uint64 `json:"gas"`
	Data    hexutil.Bytes  `json:"data,omitempty"`
	ChainID *hexutil.Big   `json:"chainId,omitempty"`
}

// PaymentScheme is one way of paying the claim fee. Build produces the
// instruction, Check confirms a mined transaction paid what Build asked.
type PaymentScheme interface {
	Build(ctx context.Context, b Backend, from common.Address) (*PaymentInstruction, error)
	Check(ctx context.Context, b Backend, tx *types.Transaction) error
}

// NativeTransfer pays in the chain's own currency.
type NativeTransfer struct {
	Receiver common.Address
	Amount   *big.Int
	GasLimit uint64
}

func (n *NativeTransfer) Build(_ context.Context, _ Backend, from common.Address) (*PaymentInstruction, error) {
	return &PaymentInstruction{
		From:  from,
		To:    n.Receiver,
		Value: (*hexutil.Big)(new(big.Int).Set(n.Amount)),
		Gas:   hexutil.Uint64(n.GasLimit),
	}, nil
}

func (n *NativeTransfer) Check(_ context.Context, _ Backend, tx *types.Transaction) error {
	if tx.To() == nil || *tx.To() != n.Receiver {
		return fmt.Errorf("%w: transaction does not pay %s", ErrPaymentRejected, n.Receiver.Hex())
	}
	if tx.Value().Cmp(n.Amount) < 0 {
		return fmt.Errorf("%w: paid %s, want %s", ErrPaymentRejected, tx.Value(), n.Amount)
	}
	return nil
}

// TokenTransfer pays with an ERC-20 transfer. Amount is in whole tokens and
// is scaled by the token's decimals at build time.
type TokenTransfer struct {
	Network  Network
	Token    common.Address
	Receiver common.Address
	Amount   string
	GasLimit uint64
	Metadata *TokenMetadata
}

func (t *TokenTransfer) rawAmount(ctx context.Context, b Backend) (*big.Int, error) {
	decimals, err := t.Metadata.Decimals(ctx, b, t.Network, t.Token)
	if err != nil {
		return nil, err
	}
	return ToBaseUnits(t.Amount, decimals)
}

func (t *TokenTransfer) Build(ctx context.Context, b Backend, from common.Address) (*PaymentInstruction, error) {
	amount, err := t.rawAmount(ctx, b)
	if err != nil {
		return nil, err
	}

	data, err := erc20ABI.Pack("transfer", t.Receiver, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer: %w", err)
	}

	return &PaymentInstruction{
		From:  from,
		To:    t.Token,
		Value: (*hexutil.Big)(big.NewInt(0)),
		Gas:   hexutil.Uint64(t.GasLimit),
		Data:  data,
	}, nil
}

func (t *TokenTransfer) Check(ctx context.Context, b Backend, tx *types.Transaction) error {
	if tx.To() == nil || *tx.To() != t.Token {
		return fmt.Errorf("%w: transaction is not a call to token %s", ErrPaymentRejected, t.Token.Hex())
	}

	method := erc20ABI.Methods["transfer"]
	data := tx.Data()
	if len(data) < 4 || !bytes.Equal(data[:4], method.ID) {
		return fmt.Errorf("%w: transaction is not a token transfer", ErrPaymentRejected)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil || len(args) != 2 {
		return fmt.Errorf("%w: malformed transfer payload", ErrPaymentRejected)
	}
	to, _ := args[0].(common.Address)
	value, _ := args[1].(*big.Int)

	want, err := t.rawAmount(ctx, b)
	if err != nil {
		return err
	}
	if to != t.Receiver {
		return fmt.Errorf("%w: transfer goes to %s, want %s", ErrPaymentRejected, to.Hex(), t.Receiver.Hex())
	}
	if value == nil || value.Cmp(want) < 0 {
		return fmt.Errorf("%w: transferred %v, want %s", ErrPaymentRejected, value, want)
	}
	return nil
}

// TokenMetadata caches token decimals. The value never changes for a
// deployed token, so a successful answer is kept for the process lifetime.
type TokenMetadata struct {
	decimals *lru.Cache
}

func NewTokenMetadata(size int) (*TokenMetadata, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create decimals cache: %w", err)
	}
	return &TokenMetadata{decimals: cache}, nil
}

func (m *TokenMetadata) Decimals(ctx context.Context, b Backend, network Network, token common.Address) (uint8, error) {
	key := string(network) + ":" + token.Hex()
	if v, ok := m.decimals.Get(key); ok {
		return v.(uint8), nil
	}

	data, err := erc20ABI.Pack("decimals")
	if err != nil {
		return 0, err
	}

	out, err := b.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: decimals of %s: %v", ErrUpstreamUnavailable, token.Hex(), err)
	}

	values, err := erc20ABI.Unpack("decimals", out)
	if err != nil || len(values) != 1 {
		return 0, fmt.Errorf("%w: decimals of %s: unexpected response %x", ErrUpstreamUnavailable, token.Hex(), out)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: decimals of %s: unexpected type %T", ErrUpstreamUnavailable, token.Hex(), values[0])
	}

	m.decimals.Add(key, decimals)
	return decimals, nil
}

// ToBaseUnits converts a decimal amount such as "10" or "0.25" into the
// integer amount for a token with the given decimals.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, decimals)
	}
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid amount %q", amount)
		}
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return value, nil
}
