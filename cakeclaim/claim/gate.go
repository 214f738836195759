package claim

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
)

type Decision struct {
	Allowed    bool
	Wallet     string
	Reason     string
	RetryAfter time.Duration
}

// Gate enforces one claim per wallet per cooldown window.
type Gate struct {
	records  repositories.ClaimRecordRepository
	cooldown time.Duration
	now      func() time.Time
}

func NewGate(records repositories.ClaimRecordRepository, cooldown time.Duration) *Gate {
	return &Gate{
		records:  records,
		cooldown: cooldown,
		now:      time.Now,
	}
}

func (g *Gate) WithClock(now func() time.Time) *Gate {
	return &Gate{records: g.records, cooldown: g.cooldown, now: now}
}

// CheckAndReserve admits the wallet and stamps its claim time when the last
// claim is at least one cooldown old. An admitted wallet holds an open claim
// that one payment may redeem within the cooldown. A denied wallet's record
// is not modified. The wallet must be a valid address; it is stored
// checksummed.
func (g *Gate) CheckAndReserve(ctx context.Context, wallet string) (Decision, error) {
	addr, err := chain.ParseAddress(wallet)
	if err != nil {
		return Decision{}, err
	}
	key := addr.Hex()

	now := g.stamp()
	reserved, err := g.records.Reserve(ctx, key, now, now.Add(-g.cooldown), now.Add(g.cooldown))
	if err != nil {
		return Decision{}, fmt.Errorf("%w: reserve claim for %s: %v", ErrPersistence, key, err)
	}
	if reserved {
		return Decision{Allowed: true, Wallet: key}, nil
	}

	record, err := g.records.GetByWallet(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: load claim record for %s: %v", ErrPersistence, key, err)
	}

	retryAfter := record.LastClaimedAt.Add(g.cooldown).Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Decision{
		Allowed:    false,
		Wallet:     key,
		Reason:     CooldownMessage,
		RetryAfter: retryAfter,
	}, nil
}

// HasOpenClaim reports whether the wallet holds a claim no payment has
// redeemed yet.
func (g *Gate) HasOpenClaim(ctx context.Context, wallet string) (bool, error) {
	record, err := g.records.GetByWallet(ctx, wallet)
	if repositories.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: load claim record for %s: %v", ErrPersistence, wallet, err)
	}
	return record.ReservedUntil != nil && record.ReservedUntil.After(g.stamp()), nil
}

// postgres keeps microseconds
func (g *Gate) stamp() time.Time {
	return g.now().UTC().Truncate(time.Microsecond)
}
