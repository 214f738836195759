package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain/mock"
)

var testCollection = common.HexToAddress("0x4fe4d7a0b0ab4f4f3a6b4b0a6e5e3a1abcdef012")

func newTestIssuer(t *testing.T, backend Backend) *MintIssuer {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	issuer, err := NewMintIssuer(backend, Polygon, big.NewInt(137), testCollection, hexutil.Encode(crypto.FromECDSA(key)), 300000)
	if err != nil {
		t.Fatalf("NewMintIssuer() error = %v", err)
	}
	if issuer.Address() != crypto.PubkeyToAddress(key.PublicKey) {
		t.Fatalf("issuer address = %v, want key address", issuer.Address().Hex())
	}
	return issuer
}

func TestMintIssuer_Mint(t *testing.T) {
	backend := mock.NewMockBackend(gomock.NewController(t))
	issuer := newTestIssuer(t, backend)
	gasPrice := big.NewInt(31_000_000_000)

	var sent *types.Transaction
	backend.EXPECT().SuggestGasPrice(gomock.Any()).Return(gasPrice, nil)
	backend.EXPECT().PendingNonceAt(gomock.Any(), issuer.Address()).Return(uint64(7), nil)
	backend.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})

	uri := "https://cdn.example.com/metadata/golden-cake.json"
	hash, err := issuer.Mint(context.Background(), testWallet, 42, uri)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if sent == nil {
		t.Fatal("Mint() did not broadcast a transaction")
	}
	if hash != sent.Hash() {
		t.Errorf("Mint() = %v, want broadcast hash %v", hash.Hex(), sent.Hash().Hex())
	}

	if sent.Type() != types.LegacyTxType || sent.Nonce() != 7 || sent.Gas() != 300000 || sent.GasPrice().Cmp(gasPrice) != 0 {
		t.Errorf("unexpected tx fields: type=%d nonce=%d gas=%d gasPrice=%v", sent.Type(), sent.Nonce(), sent.Gas(), sent.GasPrice())
	}
	if sent.To() == nil || *sent.To() != testCollection {
		t.Errorf("tx to = %v, want %v", sent.To(), testCollection.Hex())
	}

	sender, err := types.Sender(types.NewEIP155Signer(big.NewInt(137)), sent)
	if err != nil || sender != issuer.Address() {
		t.Errorf("tx sender = %v (%v), want %v", sender.Hex(), err, issuer.Address().Hex())
	}

	method, err := collectionABI.MethodById(sent.Data())
	if err != nil || method.Name != "safeMint" {
		t.Fatalf("tx method = %v (%v), want safeMint", method, err)
	}
	args, err := method.Inputs.Unpack(sent.Data()[4:])
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if args[0].(common.Address) != testWallet || args[1].(*big.Int).Int64() != 42 || args[2].(string) != uri {
		t.Errorf("safeMint args = %v", args)
	}
}

func TestMintIssuer_Mint_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *mock.MockBackend, from common.Address)
		wantErr error
	}{
		{
			name: "broadcast rejected",
			setup: func(b *mock.MockBackend, from common.Address) {
				b.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
				b.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(0), nil)
				b.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("insufficient funds for gas * price + value"))
			},
			wantErr: ErrMintFailed,
		},
		{
			name: "gas price unavailable",
			setup: func(b *mock.MockBackend, from common.Address) {
				b.EXPECT().SuggestGasPrice(gomock.Any()).Return(nil, errors.New("429 too many requests"))
			},
			wantErr: ErrUpstreamUnavailable,
		},
		{
			name: "nonce unavailable",
			setup: func(b *mock.MockBackend, from common.Address) {
				b.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
				b.EXPECT().PendingNonceAt(gomock.Any(), from).Return(uint64(0), errors.New("connection refused"))
			},
			wantErr: ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mock.NewMockBackend(gomock.NewController(t))
			issuer := newTestIssuer(t, backend)
			tt.setup(backend, issuer.Address())

			if _, err := issuer.Mint(context.Background(), testWallet, 1, "ipfs://cake"); !errors.Is(err, tt.wantErr) {
				t.Errorf("Mint() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMintIssuer_InvalidKey(t *testing.T) {
	if _, err := NewMintIssuer(nil, Polygon, big.NewInt(137), testCollection, "0xnot-a-key", 300000); err == nil {
		t.Error("NewMintIssuer() expected error for malformed key")
	}
}

func TestOwnersOf(t *testing.T) {
	backend := mock.NewMockBackend(gomock.NewController(t))
	owners := map[int64]common.Address{
		0: testWallet,
		1: testReceiver,
		2: testWallet,
	}

	backend.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			args, err := collectionABI.Methods["ownerOf"].Inputs.Unpack(call.Data[4:])
			if err != nil {
				return nil, err
			}
			owner, ok := owners[args[0].(*big.Int).Int64()]
			if !ok {
				return nil, errors.New("execution reverted: ERC721: invalid token ID")
			}
			return common.LeftPadBytes(owner.Bytes(), 32), nil
		}).
		Times(4)

	got, err := OwnersOf(context.Background(), backend, testCollection, []int64{0, 1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("OwnersOf() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("OwnersOf() returned %d entries, want 4", len(got))
	}
	for i, o := range got[:3] {
		if o.Err != nil || o.TokenID != int64(i) || o.Owner != owners[int64(i)] {
			t.Errorf("OwnersOf()[%d] = %+v", i, o)
		}
	}
	if !errors.Is(got[3].Err, ErrUpstreamUnavailable) {
		t.Errorf("OwnersOf()[3].Err = %v, want ErrUpstreamUnavailable", got[3].Err)
	}
}
