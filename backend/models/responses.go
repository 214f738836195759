package models

import (
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	dbmodels "github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	RetryAfter int64  `json:"retryAfterSeconds,omitempty"`
}

type TemplatesResponse struct {
	Success      bool                     `json:"success"`
	NftTemplates []*dbmodels.CatalogEntry `json:"nftTemplates"`
}

type TokensResponse struct {
	Success    bool                    `json:"success"`
	Nfts       []*dbmodels.IssuedToken `json:"nfts"`
	NextBefore *int64                  `json:"nextBefore,omitempty"`
}

type OwnerResponse struct {
	Success bool   `json:"success"`
	TokenID int64  `json:"tokenId"`
	Owner   string `json:"owner"`
}

type ClaimRequest struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

type ClaimResponse struct {
	Success        bool                      `json:"success"`
	PaymentRequest *chain.PaymentInstruction `json:"paymentRequest"`
}

type VerifyRequest struct {
	TransactionHash string `json:"transactionHash"`
	Address         string `json:"address"`
	Network         string `json:"network"`
}

type VerifyResponse struct {
	Success         bool                   `json:"success"`
	Message         string                 `json:"message"`
	Address         string                 `json:"address"`
	RewardEntry     *dbmodels.CatalogEntry `json:"rewardEntry"`
	TokenID         int64                  `json:"tokenId"`
	TransactionHash string                 `json:"transactionHash"`
}

type HealthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Database string `json:"database"`
}
