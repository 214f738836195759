package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

// ErrNoReservation is returned when a wallet has no open claim to redeem.
var ErrNoReservation = errors.New("no open claim reservation")

type ClaimRecordRepository interface {
	GetByWallet(ctx context.Context, wallet string) (*models.ClaimRecord, error)
	Reserve(ctx context.Context, wallet string, now, cutoff, holdUntil time.Time) (bool, error)
	Import(ctx context.Context, record *models.ClaimRecord) error
}

type claimRecordRepository struct {
	*BaseRepository
}

func NewClaimRecordRepository(db *bun.DB) ClaimRecordRepository {
	return &claimRecordRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *claimRecordRepository) GetByWallet(ctx context.Context, wallet string) (*models.ClaimRecord, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	record := new(models.ClaimRecord)
	err := r.db.NewSelect().
		Model(record).
		Where("cr.wallet_address = ?", wallet).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "claim_record", wallet, err)
	}
	return record, nil
}

// Reserve stamps last_claimed_at = now when the wallet has no record or its
// last claim is at or before cutoff, and opens a reservation that one
// payment may redeem until holdUntil. The statement is a single conditional
// upsert, so it reports true for exactly one of several concurrent callers.
func (r *claimRecordRepository) Reserve(ctx context.Context, wallet string, now, cutoff, holdUntil time.Time) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO claim_records (wallet_address, last_claimed_at, reserved_until, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (wallet_address) DO UPDATE
		 SET last_claimed_at = EXCLUDED.last_claimed_at, reserved_until = EXCLUDED.reserved_until
		 WHERE claim_records.last_claimed_at <= ?`,
		wallet, now.UTC(), holdUntil.UTC(), now.UTC(), cutoff.UTC(),
	)
	if err != nil {
		return false, r.HandleErrorWithID("reserve", "claim_record", wallet, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.HandleErrorWithID("reserve", "claim_record", wallet, err)
	}
	return affected == 1, nil
}

// Import merges a record from another store, keeping the later claim time.
func (r *claimRecordRepository) Import(ctx context.Context, record *models.ClaimRecord) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.LastClaimedAt
	}

	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (wallet_address) DO UPDATE").
		Set("last_claimed_at = GREATEST(cr.last_claimed_at, EXCLUDED.last_claimed_at)").
		Set("email = COALESCE(NULLIF(EXCLUDED.email, ''), cr.email)").
		Exec(ctx)
	return r.HandleErrorWithID("import", "claim_record", record.WalletAddress, err)
}
