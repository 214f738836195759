package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// WaitFunc pauses for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Poller waits for transactions to be mined. It polls at a fixed interval
// with no retry ceiling; the caller bounds it through ctx.
type Poller struct {
	interval time.Duration
	wait     WaitFunc
}

func NewPoller(interval time.Duration) *Poller {
	return &Poller{interval: interval, wait: sleep}
}

// WithWait replaces the pause between polls.
func (p *Poller) WithWait(wait WaitFunc) *Poller {
	return &Poller{interval: p.interval, wait: wait}
}

// AwaitMined returns the first receipt the node reports for hash. Not-found
// answers and query failures both lead to another poll after the interval.
// When ctx ends it returns ErrConfirmationTimeout.
func (p *Poller) AwaitMined(ctx context.Context, reader ReceiptReader, hash common.Hash) (*types.Receipt, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s after %d queries: %v", ErrConfirmationTimeout, hash.Hex(), attempt-1, err)
		}

		receipt, err := reader.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil:
			slog.Debug("Transaction mined",
				slog.String("type", "chain"),
				slog.String("tx_hash", hash.Hex()),
				slog.Int("attempts", attempt),
				slog.Any("block", receipt.BlockNumber))
			return receipt, nil
		case err == nil, errors.Is(err, ethereum.NotFound):
		default:
			slog.Warn("Receipt query failed, retrying",
				slog.String("type", "chain"),
				slog.String("tx_hash", hash.Hex()),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
		}

		if err := p.wait(ctx, p.interval); err != nil {
			return nil, fmt.Errorf("%w: %s after %d queries: %v", ErrConfirmationTimeout, hash.Hex(), attempt, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
