package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentStatus string

const (
	PaymentConfirmed  PaymentStatus = "confirmed"
	PaymentMinted     PaymentStatus = "minted"
	PaymentMintFailed PaymentStatus = "mint_failed"
)

// Payment is a redeemed payment transaction. Rows left in mint_failed are
// the manual reconciliation queue.
type Payment struct {
	bun.BaseModel `bun:"table:payments,alias:p"`

	TxHash        string        `bun:"tx_hash,pk" json:"txHash"`
	WalletAddress string        `bun:"wallet_address,notnull" json:"walletAddress"`
	Network       string        `bun:"network,notnull" json:"network"`
	Status        PaymentStatus `bun:"status,notnull" json:"status"`
	TokenID       *int64        `bun:"token_id" json:"tokenId,omitempty"`
	MintTxHash    string        `bun:"mint_tx_hash" json:"mintTxHash,omitempty"`
	FailureReason string        `bun:"failure_reason" json:"failureReason,omitempty"`
	CreatedAt     time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
