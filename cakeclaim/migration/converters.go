package migration

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

func convertTemplate(mt MongoNftTemplate) (*models.CatalogEntry, error) {
	name := cleanseString(mt.Name)
	if name == "" {
		return nil, errors.New("template has no name")
	}
	if mt.JSONURI == "" {
		return nil, fmt.Errorf("template %q has no jsonUri", name)
	}
	return &models.CatalogEntry{
		Name:        name,
		MetadataURI: mt.JSONURI,
		ImageURI:    mt.ImageURI,
		Weight:      mt.Weight,
		CreatedAt:   mt.ID.Timestamp().UTC(),
	}, nil
}

func convertNft(mn MongoNft, network chain.Network) (*models.IssuedToken, error) {
	if mn.TokenID == nil {
		return nil, errors.New("nft has no tokenId")
	}
	id := *mn.TokenID
	if id < 0 || id != math.Trunc(id) || id > math.MaxInt64 {
		return nil, fmt.Errorf("nft has invalid tokenId %v", id)
	}

	created := mn.ID.Timestamp()
	if mn.DateCreated != nil {
		created = *mn.DateCreated
	}
	return &models.IssuedToken{
		TokenID:     int64(id),
		Name:        cleanseString(mn.Name),
		MetadataURI: mn.JSONURI,
		ImageURI:    mn.ImageURI,
		Network:     string(network),
		CreatedAt:   created.UTC(),
	}, nil
}

// convertRecipient checksums the wallet so legacy rows share keys with
// records written by the gate.
func convertRecipient(mr MongoRecipient) (*models.ClaimRecord, error) {
	addr, err := chain.ParseAddress(mr.WalletAddress)
	if err != nil {
		return nil, err
	}

	record := &models.ClaimRecord{
		WalletAddress: addr.Hex(),
		Email:         strings.TrimSpace(mr.Email),
		CreatedAt:     mr.ID.Timestamp().UTC(),
	}
	if mr.LastClaimed != nil {
		record.LastClaimedAt = mr.LastClaimed.UTC()
	} else {
		record.LastClaimedAt = time.Unix(0, 0).UTC()
	}
	return record, nil
}

func cleanseString(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
