package models

import (
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
)

// Repositories groups the ledger repositories for injection into handlers.
type Repositories struct {
	Catalog     repositories.CatalogRepository
	Token       repositories.TokenRepository
	ClaimRecord repositories.ClaimRecordRepository
	Payment     repositories.PaymentRepository
}

func NewRepositories(
	catalog repositories.CatalogRepository,
	token repositories.TokenRepository,
	claimRecord repositories.ClaimRecordRepository,
	payment repositories.PaymentRepository,
) *Repositories {
	return &Repositories{
		Catalog:     catalog,
		Token:       token,
		ClaimRecord: claimRecord,
		Payment:     payment,
	}
}
