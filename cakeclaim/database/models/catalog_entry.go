package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CatalogEntry is a reward template. Weight sets its share of the draw.
type CatalogEntry struct {
	bun.BaseModel `bun:"table:catalog_entries,alias:ce"`

	ID          int64     `bun:"id,pk,autoincrement" json:"-"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	MetadataURI string    `bun:"metadata_uri,notnull" json:"metadataUri"`
	ImageURI    string    `bun:"image_uri,notnull" json:"imageUri"`
	Weight      float64   `bun:"weight,notnull" json:"weight"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
