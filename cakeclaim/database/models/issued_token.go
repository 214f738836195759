package models

import (
	"time"

	"github.com/uptrace/bun"
)

type IssuedToken struct {
	bun.BaseModel `bun:"table:issued_tokens,alias:it"`

	ID           int64     `bun:"id,pk,autoincrement" json:"-"`
	TokenID      int64     `bun:"token_id,notnull,unique" json:"tokenId"`
	Name         string    `bun:"name,notnull" json:"name"`
	MetadataURI  string    `bun:"metadata_uri,notnull" json:"metadataUri"`
	ImageURI     string    `bun:"image_uri,notnull" json:"imageUri"`
	OwnerAddress string    `bun:"owner_address" json:"ownerAddress,omitempty"`
	Network      string    `bun:"network" json:"network,omitempty"`
	MintTxHash   string    `bun:"mint_tx_hash" json:"mintTxHash,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// TokenSequence hands out token ids. One row per collection.
type TokenSequence struct {
	bun.BaseModel `bun:"table:token_sequences,alias:ts"`

	Name      string    `bun:"name,pk"`
	NextID    int64     `bun:"next_id,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
