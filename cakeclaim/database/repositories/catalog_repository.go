package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
)

//go:generate mockgen -destination=mock/repositories.go -package=mock . CatalogRepository,TokenRepository,ClaimRecordRepository,PaymentRepository

type CatalogOrder int

const (
	// OrderByInsertion is the stable order the selector draws from.
	OrderByInsertion CatalogOrder = iota
	// OrderByWeight is the display order, rarest first.
	OrderByWeight
)

type CatalogRepository interface {
	List(ctx context.Context, order CatalogOrder) ([]*models.CatalogEntry, error)
	GetByName(ctx context.Context, name string) (*models.CatalogEntry, error)
	Create(ctx context.Context, entry *models.CatalogEntry) (bool, error)
}

type catalogRepository struct {
	*BaseRepository
}

func NewCatalogRepository(db *bun.DB) CatalogRepository {
	return &catalogRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *catalogRepository) List(ctx context.Context, order CatalogOrder) ([]*models.CatalogEntry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var entries []*models.CatalogEntry
	query := r.db.NewSelect().Model(&entries)
	switch order {
	case OrderByWeight:
		query = query.Order("ce.weight ASC", "ce.id ASC")
	default:
		query = query.Order("ce.id ASC")
	}

	if err := query.Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("list", "catalog_entry", nil, err)
	}
	return entries, nil
}

func (r *catalogRepository) GetByName(ctx context.Context, name string) (*models.CatalogEntry, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	entry := new(models.CatalogEntry)
	err := r.db.NewSelect().
		Model(entry).
		Where("ce.name = ?", name).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "catalog_entry", name, err)
	}
	return entry, nil
}

// Create inserts entry unless one with the same name exists. Entries are
// immutable, so an existing row is left untouched and false is returned.
func (r *catalogRepository) Create(ctx context.Context, entry *models.CatalogEntry) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("create", "catalog_entry", entry.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.HandleErrorWithID("create", "catalog_entry", entry.Name, err)
	}
	return affected > 0, nil
}
