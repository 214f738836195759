package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

var ErrPaymentExists = errors.New("payment already redeemed")

type PaymentRepository interface {
	Register(ctx context.Context, payment *models.Payment, now time.Time) error
	Get(ctx context.Context, txHash string) (*models.Payment, error)
	RecordMint(ctx context.Context, txHash string, token *models.IssuedToken) error
	MarkMintFailed(ctx context.Context, txHash string, tokenID *int64, reason string) error
	ListUnreconciled(ctx context.Context, limit int) ([]*models.Payment, error)
}

type paymentRepository struct {
	*BaseRepository
}

func NewPaymentRepository(db *bun.DB) PaymentRepository {
	return &paymentRepository{BaseRepository: NewBaseRepository(db)}
}

// Register claims a payment transaction for one reward and consumes the
// payer's open claim reservation in the same transaction. A hash that is
// already registered yields ErrPaymentExists; a wallet without a
// reservation open at now yields ErrNoReservation.
func (r *paymentRepository) Register(ctx context.Context, payment *models.Payment, now time.Time) error {
	now = now.UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.Status == "" {
		payment.Status = models.PaymentConfirmed
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewInsert().
			Model(payment).
			On("CONFLICT (tx_hash) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, err := result.RowsAffected(); err != nil {
			return err
		} else if affected == 0 {
			return ErrPaymentExists
		}

		result, err = tx.NewUpdate().
			Model((*models.ClaimRecord)(nil)).
			Set("reserved_until = NULL").
			Where("wallet_address = ?", payment.WalletAddress).
			Where("reserved_until > ?", now).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, err := result.RowsAffected(); err != nil {
			return err
		} else if affected == 0 {
			return ErrNoReservation
		}
		return nil
	})
	if errors.Is(err, ErrPaymentExists) || errors.Is(err, ErrNoReservation) {
		return err
	}
	return r.HandleErrorWithID("register", "payment", payment.TxHash, err)
}

func (r *paymentRepository) Get(ctx context.Context, txHash string) (*models.Payment, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	payment := new(models.Payment)
	err := r.db.NewSelect().
		Model(payment).
		Where("p.tx_hash = ?", txHash).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "payment", txHash, err)
	}
	return payment, nil
}

// RecordMint stores the issued token and closes the payment in one transaction.
func (r *paymentRepository) RecordMint(ctx context.Context, txHash string, token *models.IssuedToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(token).Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewUpdate().
			Model((*models.Payment)(nil)).
			Set("status = ?", models.PaymentMinted).
			Set("token_id = ?", token.TokenID).
			Set("mint_tx_hash = ?", token.MintTxHash).
			Set("updated_at = ?", time.Now().UTC()).
			Where("tx_hash = ?", txHash).
			Exec(ctx)
		return err
	})
	return r.HandleErrorWithID("record_mint", "issued_token", token.TokenID, err)
}

func (r *paymentRepository) MarkMintFailed(ctx context.Context, txHash string, tokenID *int64, reason string) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.Payment)(nil)).
		Set("status = ?", models.PaymentMintFailed).
		Set("token_id = ?", tokenID).
		Set("failure_reason = ?", reason).
		Set("updated_at = ?", time.Now().UTC()).
		Where("tx_hash = ?", txHash).
		Exec(ctx)
	return r.HandleErrorWithID("mark_failed", "payment", txHash, err)
}

// ListUnreconciled returns payments that did not end in a recorded mint,
// oldest first.
func (r *paymentRepository) ListUnreconciled(ctx context.Context, limit int) ([]*models.Payment, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var payments []*models.Payment
	query := r.db.NewSelect().
		Model(&payments).
		Where("p.status <> ?", models.PaymentMinted).
		Order("p.created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("list_unreconciled", "payment", nil, err)
	}
	return payments, nil
}
