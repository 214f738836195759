package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories/memory"
)

const catalogTOML = `
[[entry]]
name = "Strawberry Cake"
image = "ipfs://QmCake/1.png"
metadata_uri = "ipfs://QmCake/1.json"
weight = 10

[[entry]]
name = "Golden Cake"
description = "Rare"
image = "ipfs://QmCake/2.png"
weight = 1
`

func TestParseCatalogFile(t *testing.T) {
	file, err := ParseCatalogFile(strings.NewReader(catalogTOML))
	if err != nil {
		t.Fatalf("ParseCatalogFile() error = %v", err)
	}
	if len(file.Entries) != 2 || file.Entries[1].Weight != 1 {
		t.Fatalf("entries = %+v", file.Entries)
	}

	if _, err := ParseCatalogFile(strings.NewReader("[[entry]]\ncolour = \"red\"\n")); err == nil {
		t.Error("ParseCatalogFile() accepted an unknown field")
	}
}

func TestCatalogFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entries []CatalogFileEntry
		publish bool
		wantErr string
	}{
		{name: "empty", wantErr: "no entries"},
		{name: "missing name", entries: []CatalogFileEntry{{Image: "i", MetadataURI: "m", Weight: 1}}, wantErr: "name is required"},
		{name: "zero weight", entries: []CatalogFileEntry{{Name: "a", Image: "i", MetadataURI: "m"}}, wantErr: "weight must be positive"},
		{name: "duplicate", entries: []CatalogFileEntry{{Name: "a", Image: "i", MetadataURI: "m", Weight: 1}, {Name: "a", Image: "i", MetadataURI: "m", Weight: 1}}, wantErr: "duplicate"},
		{name: "no metadata without publish", entries: []CatalogFileEntry{{Name: "a", Image: "i", Weight: 1}}, wantErr: "metadata_uri"},
		{name: "no metadata with publish", entries: []CatalogFileEntry{{Name: "a", Image: "i", Weight: 1}}, publish: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&CatalogFile{Entries: tt.entries}).Validate(tt.publish)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCatalogImportService_Import(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	objects := &fakeObjectStore{}
	svc := NewCatalogImportService(store.Catalog(), newSpacesService(objects, "sgp1", "cakes", "metadata"))

	file, err := ParseCatalogFile(strings.NewReader(catalogTOML))
	if err != nil {
		t.Fatalf("ParseCatalogFile() error = %v", err)
	}

	result, err := svc.Import(ctx, file, true)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(result.Created) != 2 || result.Published != 1 {
		t.Errorf("Import() = %+v, want 2 created and 1 published", result)
	}

	golden, err := store.Catalog().GetByName(ctx, "Golden Cake")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if golden.MetadataURI != "https://cakes.sgp1.digitaloceanspaces.com/metadata/golden_cake.json" {
		t.Errorf("MetadataURI = %s", golden.MetadataURI)
	}

	again, err := svc.Import(ctx, file, true)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if len(again.Created) != 0 || len(again.Skipped) != 2 || len(objects.puts) != 1 {
		t.Errorf("second Import() = %+v with %d uploads", again, len(objects.puts))
	}

	entries, _ := store.Catalog().List(ctx, repositories.OrderByWeight)
	if len(entries) != 2 || entries[0].Name != "Golden Cake" {
		t.Errorf("rarest entry first = %v", entries)
	}
}

func TestCatalogImportService_PublishWithoutSpaces(t *testing.T) {
	svc := NewCatalogImportService(memory.NewStore().Catalog(), nil)
	if _, err := svc.Import(context.Background(), &CatalogFile{}, true); err == nil {
		t.Error("Import() with publish and no Spaces succeeded")
	}
}
