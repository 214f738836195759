package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

// CatalogFile is the TOML layout accepted by catalog import:
//
//	[[entry]]
//	name = "Strawberry Cake"
//	image = "ipfs://.../1.png"
//	metadata_uri = "ipfs://.../1.json"
//	weight = 10
type CatalogFile struct {
	Entries []CatalogFileEntry `toml:"entry"`
}

type CatalogFileEntry struct {
	Name        string  `toml:"name"`
	Description string  `toml:"description"`
	Image       string  `toml:"image"`
	MetadataURI string  `toml:"metadata_uri"`
	Weight      float64 `toml:"weight"`
}

type ImportResult struct {
	Created   []string
	Skipped   []string
	Published int
}

// CatalogImportService loads reward templates into the catalog.
type CatalogImportService struct {
	catalogRepo   repositories.CatalogRepository
	spacesService *SpacesService
}

func NewCatalogImportService(catalogRepo repositories.CatalogRepository, spacesService *SpacesService) *CatalogImportService {
	return &CatalogImportService{
		catalogRepo:   catalogRepo,
		spacesService: spacesService,
	}
}

func ParseCatalogFile(r io.Reader) (*CatalogFile, error) {
	var file CatalogFile
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &file, nil
}

// Validate checks every entry. Entries without a metadata URI are allowed
// only when they will be published.
func (f *CatalogFile) Validate(publish bool) error {
	var errs []error
	seen := make(map[string]bool)
	for i, e := range f.Entries {
		name := strings.TrimSpace(e.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("entry %d: name is required", i+1))
			continue
		case seen[name]:
			errs = append(errs, fmt.Errorf("entry %d: duplicate name %q", i+1, name))
		}
		seen[name] = true

		if e.Image == "" {
			errs = append(errs, fmt.Errorf("entry %q: image is required", name))
		}
		if e.MetadataURI == "" && !publish {
			errs = append(errs, fmt.Errorf("entry %q: metadata_uri is required unless publishing", name))
		}
		if e.Weight <= 0 {
			errs = append(errs, fmt.Errorf("entry %q: weight must be positive", name))
		}
	}
	if len(f.Entries) == 0 {
		errs = append(errs, errors.New("catalog file has no entries"))
	}
	return errors.Join(errs...)
}

// Import creates the file's entries in file order. Names already in the
// catalog are skipped, so re-running an import is safe.
func (s *CatalogImportService) Import(ctx context.Context, file *CatalogFile, publish bool) (*ImportResult, error) {
	if publish && s.spacesService == nil {
		return nil, errors.New("publishing requested but Spaces is not configured")
	}
	if err := file.Validate(publish); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, e := range file.Entries {
		entry := &models.CatalogEntry{
			Name:        strings.TrimSpace(e.Name),
			Description: e.Description,
			ImageURI:    e.Image,
			MetadataURI: e.MetadataURI,
			Weight:      e.Weight,
		}

		if _, err := s.catalogRepo.GetByName(ctx, entry.Name); err == nil {
			result.Skipped = append(result.Skipped, entry.Name)
			continue
		} else if !repositories.IsNotFound(err) {
			return result, err
		}

		if publish && entry.MetadataURI == "" {
			uri, err := s.spacesService.PublishMetadata(ctx, entry)
			if err != nil {
				return result, err
			}
			entry.MetadataURI = uri
			result.Published++
		}

		created, err := s.catalogRepo.Create(ctx, entry)
		if err != nil {
			return result, err
		}
		if !created {
			result.Skipped = append(result.Skipped, entry.Name)
			continue
		}
		result.Created = append(result.Created, entry.Name)
		logger.LogSystem("Catalog entry created",
			slog.String("name", entry.Name),
			slog.Float64("weight", entry.Weight))
	}
	return result, nil
}
