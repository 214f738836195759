package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Ownership struct {
	TokenID int64
	Owner   common.Address
	Err     error
}

func OwnerOf(ctx context.Context, caller ContractCaller, contract common.Address, tokenID int64) (common.Address, error) {
	data, err := collectionABI.Pack("ownerOf", big.NewInt(tokenID))
	if err != nil {
		return common.Address{}, err
	}

	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: ownerOf(%d): %v", ErrUpstreamUnavailable, tokenID, err)
	}

	values, err := collectionABI.Unpack("ownerOf", out)
	if err != nil || len(values) != 1 {
		return common.Address{}, fmt.Errorf("%w: ownerOf(%d): unexpected response %x", ErrUpstreamUnavailable, tokenID, out)
	}
	owner, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: ownerOf(%d): unexpected type %T", ErrUpstreamUnavailable, tokenID, values[0])
	}
	return owner, nil
}

// OwnersOf looks up several tokens with at most concurrency calls in
// flight. A failed lookup is reported in its Ownership entry; only
// cancellation of ctx fails the whole batch.
func OwnersOf(ctx context.Context, caller ContractCaller, contract common.Address, tokenIDs []int64, concurrency int64) ([]Ownership, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Ownership, len(tokenIDs))
	sem := semaphore.NewWeighted(concurrency)
	g, gctx := errgroup.WithContext(ctx)

	for i, id := range tokenIDs {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			owner, err := OwnerOf(gctx, caller, contract, id)
			results[i] = Ownership{TokenID: id, Owner: owner, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
