package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

const (
	kindTemplates  = "nfttemplates"
	kindNfts       = "nfts"
	kindRecipients = "recipients"
)

// Migrator copies the legacy Mongo claim data into postgres. Every step is
// idempotent, so an interrupted migration can be re-run.
type Migrator struct {
	catalogRepo repositories.CatalogRepository
	tokenRepo   repositories.TokenRepository
	recordRepo  repositories.ClaimRecordRepository
	network     chain.Network

	mongoDB   *mongo.Database
	collNames map[string]string
	find      func(ctx context.Context, kind string) (*mongo.Cursor, error)

	stats MigrationStats
}

func NewMigrator(
	catalogRepo repositories.CatalogRepository,
	tokenRepo repositories.TokenRepository,
	recordRepo repositories.ClaimRecordRepository,
	network chain.Network,
) *Migrator {
	m := &Migrator{
		catalogRepo: catalogRepo,
		tokenRepo:   tokenRepo,
		recordRepo:  recordRepo,
		network:     network,
		collNames: map[string]string{
			kindTemplates:  kindTemplates,
			kindNfts:       kindNfts,
			kindRecipients: kindRecipients,
		},
	}
	m.find = m.findAll
	return m
}

// ConnectMongo opens a client to the legacy database. The caller disconnects it.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	if client != nil && dbName != "" {
		m.mongoDB = client.Database(dbName)
	}
}

// SetMongoCollectionName overrides the collection read for kind.
func (m *Migrator) SetMongoCollectionName(kind, name string) {
	if kind != "" && name != "" {
		m.collNames[kind] = name
	}
}

func (m *Migrator) findAll(ctx context.Context, kind string) (*mongo.Cursor, error) {
	if m.mongoDB == nil {
		return nil, fmt.Errorf("mongoDB not configured; call UseMongo first")
	}
	return m.mongoDB.Collection(m.collNames[kind]).Find(ctx, bson.D{})
}

func (m *Migrator) Stats() MigrationStats {
	return m.stats
}

func (m *Migrator) MigrateAll(ctx context.Context) error {
	m.stats = MigrationStats{
		Tables:    make(map[string]*TableStats),
		StartTime: time.Now(),
	}
	logProgress("Starting legacy MongoDB migration")

	steps := []struct {
		name    string
		migrate func(context.Context) error
	}{
		{"catalog_entries", m.MigrateTemplates},
		{"issued_tokens", m.MigrateNfts},
		{"claim_records", m.MigrateRecipients},
	}
	for _, step := range steps {
		logProgress(fmt.Sprintf("Starting migration step: %s", step.name))
		if err := step.migrate(ctx); err != nil {
			return fmt.Errorf("migration failed at step %s: %w", step.name, err)
		}
	}

	next, err := m.tokenRepo.SyncSequence(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync token sequence: %w", err)
	}
	logProgress(fmt.Sprintf("Next token id: %d", next))

	m.stats.EndTime = time.Now()
	m.logFinalStats()
	return nil
}

func (m *Migrator) MigrateTemplates(ctx context.Context) error {
	stats := m.table("catalog_entries")
	return m.each(ctx, kindTemplates, func(cur *mongo.Cursor) error {
		var doc MongoNftTemplate
		if err := cur.Decode(&doc); err != nil {
			stats.skip("", fmt.Sprintf("decode: %v", err))
			return nil
		}
		entry, err := convertTemplate(doc)
		if err != nil {
			stats.skip(doc.ID.Hex(), err.Error())
			return nil
		}
		created, err := m.catalogRepo.Create(ctx, entry)
		if err != nil {
			stats.Errors++
			return err
		}
		if !created {
			stats.skip(doc.ID.Hex(), "name already in catalog")
			return nil
		}
		stats.Successful++
		return nil
	})
}

func (m *Migrator) MigrateNfts(ctx context.Context) error {
	stats := m.table("issued_tokens")
	return m.each(ctx, kindNfts, func(cur *mongo.Cursor) error {
		var doc MongoNft
		if err := cur.Decode(&doc); err != nil {
			stats.skip("", fmt.Sprintf("decode: %v", err))
			return nil
		}
		token, err := convertNft(doc, m.network)
		if err != nil {
			stats.skip(doc.ID.Hex(), err.Error())
			return nil
		}
		inserted, err := m.tokenRepo.Insert(ctx, token)
		if err != nil {
			stats.Errors++
			return err
		}
		if !inserted {
			stats.skip(doc.ID.Hex(), fmt.Sprintf("token %d already recorded", token.TokenID))
			return nil
		}
		stats.Successful++
		return nil
	})
}

func (m *Migrator) MigrateRecipients(ctx context.Context) error {
	stats := m.table("claim_records")
	return m.each(ctx, kindRecipients, func(cur *mongo.Cursor) error {
		var doc MongoRecipient
		if err := cur.Decode(&doc); err != nil {
			stats.skip("", fmt.Sprintf("decode: %v", err))
			return nil
		}
		record, err := convertRecipient(doc)
		if err != nil {
			stats.skip(doc.ID.Hex(), err.Error())
			return nil
		}
		if err := m.recordRepo.Import(ctx, record); err != nil {
			stats.Errors++
			return err
		}
		stats.Successful++
		return nil
	})
}

func (m *Migrator) each(ctx context.Context, kind string, fn func(*mongo.Cursor) error) error {
	cur, err := m.find(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", kind, err)
	}
	defer cur.Close(ctx)

	stats := m.table(tableFor(kind))
	for cur.Next(ctx) {
		stats.Processed++
		if err := fn(cur); err != nil {
			return err
		}
	}
	return cur.Err()
}

func tableFor(kind string) string {
	switch kind {
	case kindTemplates:
		return "catalog_entries"
	case kindNfts:
		return "issued_tokens"
	default:
		return "claim_records"
	}
}

func (m *Migrator) table(name string) *TableStats {
	if m.stats.Tables == nil {
		m.stats.Tables = make(map[string]*TableStats)
	}
	t, ok := m.stats.Tables[name]
	if !ok {
		t = &TableStats{TableName: name}
		m.stats.Tables[name] = t
	}
	return t
}

func (t *TableStats) skip(id, reason string) {
	t.Skipped++
	t.SkippedRecords = append(t.SkippedRecords, SkippedRecord{RecordID: id, Reason: reason})
}

func (m *Migrator) logFinalStats() {
	for _, t := range m.stats.Tables {
		m.stats.TotalProcessed += t.Processed
		m.stats.TotalSkipped += t.Skipped
		m.stats.TotalErrors += t.Errors
		logger.LogSystem("Migrated table",
			slog.String("table", t.TableName),
			slog.Int("processed", t.Processed),
			slog.Int("successful", t.Successful),
			slog.Int("skipped", t.Skipped))
	}
	logProgress(fmt.Sprintf("Migration finished in %s", m.stats.EndTime.Sub(m.stats.StartTime).Round(time.Millisecond)))
}

func logProgress(msg string) {
	logger.LogSystem(msg, slog.String("component", "migration"))
}
