package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
)

func TestTokenRepo_AllocateTokenID(t *testing.T) {
	tests := []struct {
		name     string
		existing []int64
		want     int64
	}{
		{name: "empty ledger", want: 0},
		{name: "after 41", existing: []int64{3, 41, 7}, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tokens := NewStore().Tokens()
			for _, id := range tt.existing {
				if _, err := tokens.Insert(ctx, &models.IssuedToken{TokenID: id}); err != nil {
					t.Fatalf("Insert(%d) error = %v", id, err)
				}
			}

			got, err := tokens.AllocateTokenID(ctx)
			if err != nil {
				t.Fatalf("AllocateTokenID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AllocateTokenID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTokenRepo_AllocateConcurrent(t *testing.T) {
	ctx := context.Background()
	tokens := NewStore().Tokens()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := tokens.AllocateTokenID(ctx)
			if err != nil {
				t.Errorf("AllocateTokenID() error = %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("token id %d allocated twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("allocated %d ids, want %d", len(seen), n)
	}
}

func TestPaymentRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	payments := store.Payments()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	reserve(t, store, "0x01", now)

	first := &models.Payment{TxHash: "0xaa", WalletAddress: "0x01", Network: "polygon"}
	if err := payments.Register(ctx, first, now); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := payments.Register(ctx, &models.Payment{TxHash: "0xaa", WalletAddress: "0x01"}, now); !errors.Is(err, repositories.ErrPaymentExists) {
		t.Errorf("second Register() error = %v, want ErrPaymentExists", err)
	}

	if err := payments.RecordMint(ctx, "0xaa", &models.IssuedToken{TokenID: 5, MintTxHash: "0xmint"}); err != nil {
		t.Fatalf("RecordMint() error = %v", err)
	}
	got, err := payments.Get(ctx, "0xaa")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != models.PaymentMinted || got.TokenID == nil || *got.TokenID != 5 || got.MintTxHash != "0xmint" {
		t.Errorf("Get() = %+v, want minted token 5", got)
	}
	if _, err := store.Tokens().GetByTokenID(ctx, 5); err != nil {
		t.Errorf("issued token not recorded: %v", err)
	}

	reserve(t, store, "0x02", now)
	if err := payments.Register(ctx, &models.Payment{TxHash: "0xbb", WalletAddress: "0x02"}, now); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := payments.MarkMintFailed(ctx, "0xbb", nil, "reverted"); err != nil {
		t.Fatalf("MarkMintFailed() error = %v", err)
	}
	open, err := payments.ListUnreconciled(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnreconciled() error = %v", err)
	}
	if len(open) != 1 || open[0].TxHash != "0xbb" || open[0].Status != models.PaymentMintFailed {
		t.Errorf("ListUnreconciled() = %+v, want only 0xbb", open)
	}

	if _, err := payments.Get(ctx, "0xcc"); !repositories.IsNotFound(err) {
		t.Errorf("Get(unknown) error = %v, want not found", err)
	}
}

func TestPaymentRepo_RegisterConsumesReservation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(t *testing.T, store *Store)
		at      time.Time
		wantErr error
	}{
		{
			name:    "no claim record",
			setup:   func(*testing.T, *Store) {},
			at:      now,
			wantErr: repositories.ErrNoReservation,
		},
		{
			name:  "open reservation",
			setup: func(t *testing.T, store *Store) { reserve(t, store, "0x01", now) },
			at:    now.Add(time.Hour),
		},
		{
			name:    "reservation expired",
			setup:   func(t *testing.T, store *Store) { reserve(t, store, "0x01", now) },
			at:      now.Add(24 * time.Hour),
			wantErr: repositories.ErrNoReservation,
		},
		{
			name: "imported history carries no reservation",
			setup: func(t *testing.T, store *Store) {
				err := store.ClaimRecords().Import(ctx, &models.ClaimRecord{WalletAddress: "0x01", LastClaimedAt: now})
				if err != nil {
					t.Fatalf("Import() error = %v", err)
				}
			},
			at:      now,
			wantErr: repositories.ErrNoReservation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			tt.setup(t, store)

			err := store.Payments().Register(ctx, &models.Payment{TxHash: "0xaa", WalletAddress: "0x01"}, tt.at)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if _, err := store.Payments().Get(ctx, "0xaa"); !repositories.IsNotFound(err) {
					t.Errorf("rejected payment was stored: %v", err)
				}
				return
			}

			err = store.Payments().Register(ctx, &models.Payment{TxHash: "0xbb", WalletAddress: "0x01"}, tt.at)
			if !errors.Is(err, repositories.ErrNoReservation) {
				t.Errorf("second payment on one reservation error = %v, want ErrNoReservation", err)
			}
		})
	}
}

func TestTokenRepo_ListPages(t *testing.T) {
	ctx := context.Background()
	tokens := NewStore().Tokens()
	for id := int64(0); id < 5; id++ {
		if _, err := tokens.Insert(ctx, &models.IssuedToken{TokenID: id}); err != nil {
			t.Fatalf("Insert(%d) error = %v", id, err)
		}
	}
	before := func(v int64) *int64 { return &v }

	tests := []struct {
		name   string
		before *int64
		limit  int
		want   []int64
	}{
		{name: "all tokens", want: []int64{4, 3, 2, 1, 0}},
		{name: "first page", limit: 2, want: []int64{4, 3}},
		{name: "next page", before: before(3), limit: 2, want: []int64{2, 1}},
		{name: "last page", before: before(1), limit: 2, want: []int64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokens.List(ctx, tt.before, tt.limit)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			ids := make([]int64, 0, len(got))
			for _, tok := range got {
				ids = append(ids, tok.TokenID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("List() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func reserve(t *testing.T, store *Store, wallet string, now time.Time) {
	t.Helper()
	ok, err := store.ClaimRecords().Reserve(context.Background(), wallet, now, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if err != nil || !ok {
		t.Fatalf("Reserve(%s) = %v, %v", wallet, ok, err)
	}
}
