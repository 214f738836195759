package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoNftTemplate is a document from the legacy nfttemplates collection.
type MongoNftTemplate struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	JSONURI  string             `bson:"jsonUri"`
	ImageURI string             `bson:"imageUri"`
	Weight   float64            `bson:"weight"`
}

// MongoNft is a document from the legacy nfts collection.
type MongoNft struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	JSONURI     string             `bson:"jsonUri"`
	ImageURI    string             `bson:"imageUri"`
	TokenID     *float64           `bson:"tokenId"`
	DateCreated *time.Time         `bson:"dateCreated"`
}

// MongoRecipient is a document from the legacy recipients collection.
type MongoRecipient struct {
	ID            primitive.ObjectID `bson:"_id"`
	Email         string             `bson:"email"`
	WalletAddress string             `bson:"walletAddress"`
	LastClaimed   *time.Time         `bson:"lastClaimed"`
}

// MigrationStats tracks overall migration results.
type MigrationStats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records,omitempty"`
}

type SkippedRecord struct {
	Reason   string `json:"reason"`
	RecordID string `json:"record_id"`
}
