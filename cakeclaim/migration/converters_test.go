package migration

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
)

func ptr[T any](v T) *T { return &v }

func TestConvertNft(t *testing.T) {
	created := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		doc     MongoNft
		wantID  int64
		wantErr bool
	}{
		{name: "whole token id", doc: MongoNft{Name: " Cake ", TokenID: ptr(7.0), DateCreated: &created}, wantID: 7},
		{name: "token zero", doc: MongoNft{TokenID: ptr(0.0)}, wantID: 0},
		{name: "missing token id", doc: MongoNft{}, wantErr: true},
		{name: "fractional token id", doc: MongoNft{TokenID: ptr(1.5)}, wantErr: true},
		{name: "negative token id", doc: MongoNft{TokenID: ptr(-1.0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertNft(tt.doc, chain.Polygon)
			if tt.wantErr {
				if err == nil {
					t.Errorf("convertNft() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("convertNft() error = %v", err)
			}
			if got.TokenID != tt.wantID || got.Network != "polygon" {
				t.Errorf("convertNft() = %+v", got)
			}
			if tt.doc.DateCreated != nil && !got.CreatedAt.Equal(created) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
			}
			if tt.doc.Name != "" && got.Name != "Cake" {
				t.Errorf("Name = %q", got.Name)
			}
		})
	}
}

func TestConvertRecipient(t *testing.T) {
	last := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := convertRecipient(MongoRecipient{
		ID:            primitive.NewObjectID(),
		Email:         " baker@example.com ",
		WalletAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		LastClaimed:   &last,
	})
	if err != nil {
		t.Fatalf("convertRecipient() error = %v", err)
	}
	if got.WalletAddress != "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Errorf("WalletAddress = %s, want checksummed", got.WalletAddress)
	}
	if got.Email != "baker@example.com" || !got.LastClaimedAt.Equal(last) {
		t.Errorf("convertRecipient() = %+v", got)
	}

	never, err := convertRecipient(MongoRecipient{WalletAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"})
	if err != nil {
		t.Fatalf("convertRecipient() error = %v", err)
	}
	if !never.LastClaimedAt.Equal(time.Unix(0, 0)) {
		t.Errorf("LastClaimedAt without claim = %v", never.LastClaimedAt)
	}

	if _, err := convertRecipient(MongoRecipient{WalletAddress: "bob"}); err == nil {
		t.Error("convertRecipient() accepted an invalid wallet")
	}
}

func TestConvertTemplate(t *testing.T) {
	if _, err := convertTemplate(MongoNftTemplate{Name: "  "}); err == nil {
		t.Error("convertTemplate() accepted a blank name")
	}
	if _, err := convertTemplate(MongoNftTemplate{Name: "Cake"}); err == nil {
		t.Error("convertTemplate() accepted a template without jsonUri")
	}

	got, err := convertTemplate(MongoNftTemplate{Name: "Cake\x00", JSONURI: "ipfs://a.json", ImageURI: "ipfs://a.png", Weight: 4})
	if err != nil {
		t.Fatalf("convertTemplate() error = %v", err)
	}
	if got.Name != "Cake" || got.Weight != 4 || got.MetadataURI != "ipfs://a.json" {
		t.Errorf("convertTemplate() = %+v", got)
	}
}
