// Package memory holds map-backed repositories with the same conflict and
// cooldown semantics as the postgres ones. Used by tests and local runs
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
)

type Store struct {
	mu       sync.Mutex
	catalog  []*models.CatalogEntry
	tokens   map[int64]*models.IssuedToken
	records  map[string]*models.ClaimRecord
	payments map[string]*models.Payment
	nextID   int64
	synced   bool
}

func NewStore() *Store {
	return &Store{
		tokens:   make(map[int64]*models.IssuedToken),
		records:  make(map[string]*models.ClaimRecord),
		payments: make(map[string]*models.Payment),
	}
}

func (s *Store) Catalog() repositories.CatalogRepository          { return catalogRepo{s} }
func (s *Store) Tokens() repositories.TokenRepository             { return tokenRepo{s} }
func (s *Store) ClaimRecords() repositories.ClaimRecordRepository { return claimRecordRepo{s} }
func (s *Store) Payments() repositories.PaymentRepository         { return paymentRepo{s} }

type catalogRepo struct{ s *Store }

func (r catalogRepo) List(_ context.Context, order repositories.CatalogOrder) ([]*models.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.CatalogEntry, len(r.s.catalog))
	for i, e := range r.s.catalog {
		c := *e
		out[i] = &c
	}
	if order == repositories.OrderByWeight {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	}
	return out, nil
}

func (r catalogRepo) GetByName(_ context.Context, name string) (*models.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.catalog {
		if e.Name == name {
			c := *e
			return &c, nil
		}
	}
	return nil, &repositories.NotFoundError{Entity: "catalog_entry", ID: name}
}

func (r catalogRepo) Create(_ context.Context, entry *models.CatalogEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.catalog {
		if e.Name == entry.Name {
			return false, nil
		}
	}
	entry.ID = int64(len(r.s.catalog) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	c := *entry
	r.s.catalog = append(r.s.catalog, &c)
	return true, nil
}

type tokenRepo struct{ s *Store }

func (r tokenRepo) List(_ context.Context, before *int64, limit int) ([]*models.IssuedToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*models.IssuedToken, 0, len(r.s.tokens))
	for _, t := range r.s.tokens {
		if before != nil && t.TokenID >= *before {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TokenID > out[j].TokenID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r tokenRepo) GetByTokenID(_ context.Context, tokenID int64) (*models.IssuedToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[tokenID]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "issued_token", ID: tokenID}
	}
	c := *t
	return &c, nil
}

func (r tokenRepo) MaxTokenID(context.Context) (*int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.maxTokenID(), nil
}

func (s *Store) maxTokenID() *int64 {
	var max *int64
	for id := range s.tokens {
		if max == nil || id > *max {
			v := id
			max = &v
		}
	}
	return max
}

func (r tokenRepo) AllocateTokenID(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.synced {
		r.s.syncLocked()
	}
	id := r.s.nextID
	r.s.nextID++
	return id, nil
}

func (r tokenRepo) SyncSequence(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.syncLocked(), nil
}

func (s *Store) syncLocked() int64 {
	if next := repositories.NextTokenID(s.maxTokenID()); next > s.nextID {
		s.nextID = next
	}
	s.synced = true
	return s.nextID
}

func (r tokenRepo) Insert(_ context.Context, token *models.IssuedToken) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertToken(token), nil
}

func (s *Store) insertToken(token *models.IssuedToken) bool {
	if _, exists := s.tokens[token.TokenID]; exists {
		return false
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	c := *token
	s.tokens[token.TokenID] = &c
	return true
}

type claimRecordRepo struct{ s *Store }

func (r claimRecordRepo) GetByWallet(_ context.Context, wallet string) (*models.ClaimRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[wallet]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "claim_record", ID: wallet}
	}
	c := *rec
	return &c, nil
}

func (r claimRecordRepo) Reserve(_ context.Context, wallet string, now, cutoff, holdUntil time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[wallet]
	if !ok {
		r.s.records[wallet] = &models.ClaimRecord{
			WalletAddress: wallet,
			LastClaimedAt: now,
			ReservedUntil: &holdUntil,
			CreatedAt:     now,
		}
		return true, nil
	}
	if rec.LastClaimedAt.After(cutoff) {
		return false, nil
	}
	rec.LastClaimedAt = now
	rec.ReservedUntil = &holdUntil
	return true, nil
}

func (r claimRecordRepo) Import(_ context.Context, record *models.ClaimRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.records[record.WalletAddress]
	if !ok {
		c := *record
		r.s.records[record.WalletAddress] = &c
		return nil
	}
	if record.LastClaimedAt.After(rec.LastClaimedAt) {
		rec.LastClaimedAt = record.LastClaimedAt
	}
	if rec.Email == "" {
		rec.Email = record.Email
	}
	return nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Register(_ context.Context, payment *models.Payment, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.payments[payment.TxHash]; exists {
		return repositories.ErrPaymentExists
	}
	rec, ok := r.s.records[payment.WalletAddress]
	if !ok || rec.ReservedUntil == nil || !rec.ReservedUntil.After(now) {
		return repositories.ErrNoReservation
	}
	rec.ReservedUntil = nil

	now = now.UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	if payment.Status == "" {
		payment.Status = models.PaymentConfirmed
	}
	c := *payment
	r.s.payments[payment.TxHash] = &c
	return nil
}

func (r paymentRepo) Get(_ context.Context, txHash string) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[txHash]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "payment", ID: txHash}
	}
	c := *p
	return &c, nil
}

func (r paymentRepo) RecordMint(_ context.Context, txHash string, token *models.IssuedToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[txHash]
	if !ok {
		return &repositories.NotFoundError{Entity: "payment", ID: txHash}
	}
	if !r.s.insertToken(token) {
		return &repositories.ConflictError{Entity: "issued_token", Field: "token_id", Value: token.TokenID}
	}
	id := token.TokenID
	p.Status = models.PaymentMinted
	p.TokenID = &id
	p.MintTxHash = token.MintTxHash
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r paymentRepo) MarkMintFailed(_ context.Context, txHash string, tokenID *int64, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[txHash]
	if !ok {
		return nil
	}
	p.Status = models.PaymentMintFailed
	p.TokenID = tokenID
	p.FailureReason = reason
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r paymentRepo) ListUnreconciled(_ context.Context, limit int) ([]*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*models.Payment
	for _, p := range r.s.payments {
		if p.Status != models.PaymentMinted {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
