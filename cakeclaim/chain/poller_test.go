package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain/mock"
)

type waitRecorder struct {
	waits []time.Duration
}

func (w *waitRecorder) wait(_ context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	return nil
}

func TestPoller_AwaitMined(t *testing.T) {
	hash := common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b")
	receipt := &types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1200)}

	tests := []struct {
		name      string
		setup     func(b *mock.MockBackend)
		wantWaits int
	}{
		{
			name: "not found three times then mined",
			setup: func(b *mock.MockBackend) {
				gomock.InOrder(
					b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound).Times(3),
					b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(receipt, nil),
				)
			},
			wantWaits: 3,
		},
		{
			name: "transient failures are retried",
			setup: func(b *mock.MockBackend) {
				gomock.InOrder(
					b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, errors.New("502 bad gateway")),
					b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, nil),
					b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(receipt, nil),
				)
			},
			wantWaits: 2,
		},
		{
			name: "already mined",
			setup: func(b *mock.MockBackend) {
				b.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(receipt, nil)
			},
			wantWaits: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mock.NewMockBackend(gomock.NewController(t))
			tt.setup(backend)

			recorder := &waitRecorder{}
			poller := NewPoller(time.Second).WithWait(recorder.wait)

			got, err := poller.AwaitMined(context.Background(), backend, hash)
			if err != nil {
				t.Fatalf("AwaitMined() error = %v", err)
			}
			if got != receipt {
				t.Errorf("AwaitMined() = %v, want %v", got, receipt)
			}
			if len(recorder.waits) != tt.wantWaits {
				t.Fatalf("AwaitMined() waited %d times, want %d", len(recorder.waits), tt.wantWaits)
			}
			for i, d := range recorder.waits {
				if d != time.Second {
					t.Errorf("wait %d = %v, want %v", i, d, time.Second)
				}
			}
		})
	}
}

func TestPoller_AwaitMined_Timeout(t *testing.T) {
	hash := common.HexToHash("0x01")
	backend := mock.NewMockBackend(gomock.NewController(t))
	backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound).MinTimes(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewPoller(time.Hour).AwaitMined(ctx, backend, hash)
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("AwaitMined() error = %v, want ErrConfirmationTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("AwaitMined() returned after %v, deadline not honoured", elapsed)
	}
}

func TestPoller_AwaitMined_Cancelled(t *testing.T) {
	hash := common.HexToHash("0x02")
	backend := mock.NewMockBackend(gomock.NewController(t))
	backend.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	poller := NewPoller(time.Second).WithWait(func(ctx context.Context, _ time.Duration) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return ctx.Err()
	})

	if _, err := poller.AwaitMined(ctx, backend, hash); !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("AwaitMined() error = %v, want ErrConfirmationTimeout", err)
	}
}
