package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

const issuedTokenSequence = "issued_tokens"

type TokenRepository interface {
	List(ctx context.Context, before *int64, limit int) ([]*models.IssuedToken, error)
	GetByTokenID(ctx context.Context, tokenID int64) (*models.IssuedToken, error)
	MaxTokenID(ctx context.Context) (*int64, error)
	AllocateTokenID(ctx context.Context) (int64, error)
	SyncSequence(ctx context.Context) (int64, error)
	Insert(ctx context.Context, token *models.IssuedToken) (bool, error)
}

type tokenRepository struct {
	*BaseRepository
}

func NewTokenRepository(db *bun.DB) TokenRepository {
	return &tokenRepository{BaseRepository: NewBaseRepository(db)}
}

// NextTokenID returns the id that follows max, or 0 for an empty collection.
func NextTokenID(max *int64) int64 {
	if max == nil {
		return 0
	}
	return *max + 1
}

// List returns issued tokens newest first, starting below before when it is
// set. limit <= 0 returns every remaining token.
func (r *tokenRepository) List(ctx context.Context, before *int64, limit int) ([]*models.IssuedToken, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var tokens []*models.IssuedToken
	query := r.db.NewSelect().
		Model(&tokens).
		Order("it.token_id DESC")
	if before != nil {
		query = query.Where("it.token_id < ?", *before)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("list", "issued_token", nil, err)
	}
	return tokens, nil
}

func (r *tokenRepository) GetByTokenID(ctx context.Context, tokenID int64) (*models.IssuedToken, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	token := new(models.IssuedToken)
	err := r.db.NewSelect().
		Model(token).
		Where("it.token_id = ?", tokenID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "issued_token", tokenID, err)
	}
	return token, nil
}

// MaxTokenID returns nil when no token has been issued.
func (r *tokenRepository) MaxTokenID(ctx context.Context) (*int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var max sql.NullInt64
	err := r.db.NewSelect().
		Model((*models.IssuedToken)(nil)).
		ColumnExpr("MAX(it.token_id)").
		Scan(ctx, &max)
	if err != nil {
		return nil, r.HandleErrorWithID("max", "issued_token", nil, err)
	}
	if !max.Valid {
		return nil, nil
	}
	return &max.Int64, nil
}

// AllocateTokenID reserves the next token id. The increment and the read
// happen in one statement so concurrent callers never share an id. Ids of
// failed mints are not reused.
func (r *tokenRepository) AllocateTokenID(ctx context.Context) (int64, error) {
	id, err := r.allocate(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = r.SyncSequence(ctx); err != nil {
			return 0, err
		}
		id, err = r.allocate(ctx)
	}
	if err != nil {
		return 0, r.HandleErrorWithID("allocate", "token_sequence", issuedTokenSequence, err)
	}
	return id, nil
}

func (r *tokenRepository) allocate(ctx context.Context) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var id int64
	err := r.db.NewRaw(
		`UPDATE token_sequences SET next_id = next_id + 1, updated_at = ?
		 WHERE name = ? RETURNING next_id - 1`,
		time.Now().UTC(), issuedTokenSequence,
	).Scan(ctx, &id)
	return id, err
}

// SyncSequence moves the sequence forward to follow the highest issued
// token. It never moves it backwards.
func (r *tokenRepository) SyncSequence(ctx context.Context) (int64, error) {
	max, err := r.MaxTokenID(ctx)
	if err != nil {
		return 0, err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var next int64
	err = r.db.NewRaw(
		`INSERT INTO token_sequences (name, next_id, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO UPDATE
		 SET next_id = GREATEST(token_sequences.next_id, EXCLUDED.next_id), updated_at = EXCLUDED.updated_at
		 RETURNING next_id`,
		issuedTokenSequence, NextTokenID(max), time.Now().UTC(),
	).Scan(ctx, &next)
	if err != nil {
		return 0, r.HandleErrorWithID("sync", "token_sequence", issuedTokenSequence, err)
	}
	return next, nil
}

// Insert stores a token that was minted elsewhere (legacy import). Returns
// false when the token id is already recorded.
func (r *tokenRepository) Insert(ctx context.Context, token *models.IssuedToken) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.NewInsert().
		Model(token).
		On("CONFLICT (token_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("insert", "issued_token", token.TokenID, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
