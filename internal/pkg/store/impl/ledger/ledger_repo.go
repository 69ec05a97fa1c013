package ledger

import (
	"context"
	"errors"
	"time"

	"pawn-ledger/internal/pkg/consts"
	mongodb "pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/pkg/store/repository"
	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type LedgerRepository struct {
	entries interfaces.LedgerEntriesStoreInterface
	markers interfaces.LedgerMaterializationsStoreInterface
}

func NewLedgerRepository(client *mongodb.MongoClient) *LedgerRepository {
	entries := repository.NewMongoRepository[models.LedgerEntry](
		client.Database.Collection(consts.LedgersCollection))
	markers := repository.NewMongoRepository[models.LedgerMaterialization](
		client.Database.Collection(consts.LedgerMaterializationsCollection))
	return &LedgerRepository{entries: entries, markers: markers}
}

func NewLedgerRepositoryWithInterface(
	entries interfaces.LedgerEntriesStoreInterface,
	markers interfaces.LedgerMaterializationsStoreInterface,
) *LedgerRepository {
	return &LedgerRepository{entries: entries, markers: markers}
}

func (lr *LedgerRepository) CountEntries(ctx context.Context, queryDate time.Time) (int64, error) {
	count, err := lr.entries.CountDocuments(ctx, bson.M{"queryDate": queryDate})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCountingLedgerEntries, err, zap.Time("queryDate", queryDate))
		return 0, err
	}
	return count, nil
}

// InsertEntries writes entries unordered and returns how many were new.
// Entries whose (queryDate, voucherId) pair already exists are skipped.
func (lr *LedgerRepository) InsertEntries(ctx context.Context, entries []models.LedgerEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}

	_, err := lr.entries.CreateMany(ctx, docs)
	if err == nil {
		return int64(len(docs)), nil
	}

	duplicates, onlyDuplicates := countDuplicateKeyErrors(err)
	if !onlyDuplicates {
		logger.CtxError(ctx, log_messages.ErrorInsertingLedgerEntries, err, zap.Int("entries", len(docs)))
		return 0, err
	}

	logger.CtxWarn(ctx, log_messages.DuplicateLedgerEntriesSkipped,
		zap.Int("entries", len(docs)),
		zap.Int("duplicates", duplicates),
	)
	return int64(len(docs) - duplicates), nil
}

// countDuplicateKeyErrors reports how many write errors in err are
// duplicate-key violations and whether those are the only failures.
func countDuplicateKeyErrors(err error) (int, bool) {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return 0, false
	}
	if bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return 0, false
	}
	for _, we := range bwe.WriteErrors {
		if !mongo.IsDuplicateKeyError(we.WriteError) {
			return 0, false
		}
	}
	return len(bwe.WriteErrors), true
}

func (lr *LedgerRepository) FindEntries(ctx context.Context, queryDate time.Time) ([]models.LedgerEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	entries, err := lr.entries.Find(ctx, bson.M{"queryDate": queryDate}, opts)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingLedgerEntries, err, zap.Time("queryDate", queryDate))
		return nil, err
	}
	return entries, nil
}

// FindMaterialization returns the marker for queryDate, or nil when the date
// has not been materialized.
func (lr *LedgerRepository) FindMaterialization(ctx context.Context, queryDate time.Time) (*models.LedgerMaterialization, error) {
	marker, err := lr.markers.FindOne(ctx, bson.M{"queryDate": queryDate}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingMaterialization, err, zap.Time("queryDate", queryDate))
		return nil, err
	}
	return &marker, nil
}

// SaveMaterialization records the marker once. An existing marker for the
// same date is left untouched.
func (lr *LedgerRepository) SaveMaterialization(ctx context.Context, marker models.LedgerMaterialization) error {
	update := bson.M{"$setOnInsert": bson.M{
		"queryDate":      marker.QueryDate,
		"entryCount":     marker.EntryCount,
		"materializedAt": marker.MaterializedAt,
	}}
	_, err := lr.markers.Upsert(ctx, bson.M{"queryDate": marker.QueryDate}, update)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		logger.CtxError(ctx, log_messages.ErrorSavingMaterialization, err, zap.Time("queryDate", marker.QueryDate))
		return err
	}
	return nil
}
