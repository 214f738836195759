package migration

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories/memory"
)

func TestMigrator_MigrateAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	claimed := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	docs := map[string][]interface{}{
		kindTemplates: {
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake", "jsonUri": "ipfs://1.json", "imageUri": "ipfs://1.png", "weight": 3},
			bson.M{"_id": primitive.NewObjectID(), "name": "", "jsonUri": "ipfs://2.json"},
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake", "jsonUri": "ipfs://1.json", "weight": 3},
		},
		kindNfts: {
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake", "jsonUri": "ipfs://1.json", "tokenId": int32(7)},
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake", "jsonUri": "ipfs://1.json", "tokenId": 12.0},
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake"},
			bson.M{"_id": primitive.NewObjectID(), "name": "Strawberry Cake", "tokenId": int64(7)},
		},
		kindRecipients: {
			bson.M{"_id": primitive.NewObjectID(), "walletAddress": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "lastClaimed": claimed},
			bson.M{"_id": primitive.NewObjectID(), "walletAddress": "not-a-wallet"},
		},
	}

	m := NewMigrator(store.Catalog(), store.Tokens(), store.ClaimRecords(), chain.Polygon)
	m.find = func(_ context.Context, kind string) (*mongo.Cursor, error) {
		return mongo.NewCursorFromDocuments(docs[kind], nil, nil)
	}

	if err := m.MigrateAll(ctx); err != nil {
		t.Fatalf("MigrateAll() error = %v", err)
	}

	want := map[string]TableStats{
		"catalog_entries": {Processed: 3, Successful: 1, Skipped: 2},
		"issued_tokens":   {Processed: 4, Successful: 2, Skipped: 2},
		"claim_records":   {Processed: 2, Successful: 1, Skipped: 1},
	}
	stats := m.Stats()
	for table, w := range want {
		got := stats.Tables[table]
		if got == nil {
			t.Fatalf("no stats for %s", table)
		}
		if got.Processed != w.Processed || got.Successful != w.Successful || got.Skipped != w.Skipped {
			t.Errorf("%s stats = %+v, want %+v", table, *got, w)
		}
	}
	if stats.TotalProcessed != 9 || stats.TotalSkipped != 5 {
		t.Errorf("totals = %d processed, %d skipped", stats.TotalProcessed, stats.TotalSkipped)
	}

	next, err := store.Tokens().AllocateTokenID(ctx)
	if err != nil {
		t.Fatalf("AllocateTokenID() error = %v", err)
	}
	if next != 13 {
		t.Errorf("next token id = %d, want 13", next)
	}

	record, err := store.ClaimRecords().GetByWallet(ctx, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	if err != nil {
		t.Fatalf("GetByWallet() error = %v", err)
	}
	if !record.LastClaimedAt.Equal(claimed) {
		t.Errorf("LastClaimedAt = %v, want %v", record.LastClaimedAt, claimed)
	}
}

func TestMigrator_WithoutMongo(t *testing.T) {
	store := memory.NewStore()
	m := NewMigrator(store.Catalog(), store.Tokens(), store.ClaimRecords(), chain.Polygon)

	if err := m.MigrateAll(context.Background()); err == nil {
		t.Error("MigrateAll() without mongo succeeded")
	}
}
