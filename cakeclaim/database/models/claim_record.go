package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ClaimRecord struct {
	bun.BaseModel `bun:"table:claim_records,alias:cr"`

	WalletAddress string     `bun:"wallet_address,pk" json:"walletAddress"`
	Email         string     `bun:"email" json:"email,omitempty"`
	LastClaimedAt time.Time  `bun:"last_claimed_at,notnull" json:"lastClaimedAt"`
	ReservedUntil *time.Time `bun:"reserved_until" json:"reservedUntil,omitempty"` // open claim a payment may redeem
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
