package mongo

import (
	"context"
	"fmt"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// IndexCreator is the part of mongo.IndexView used to create indexes.
type IndexCreator interface {
	CreateMany(ctx context.Context, models []mongo.IndexModel, opts ...*options.CreateIndexesOptions) ([]string, error)
}

// EnsureIndexes creates the indexes every collection needs. The unique
// (queryDate, voucherId) index on ledgers keeps materialization idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return ensureIndexesWith(ctx, func(col string) IndexCreator {
		view := db.Collection(col).Indexes()
		return &view
	})
}

func ensureIndexesWith(ctx context.Context, creatorFor func(col string) IndexCreator) error {
	for col, models := range ledgerIndexes() {
		if len(models) == 0 {
			continue
		}
		creator := creatorFor(col)
		_, err := creator.CreateMany(ctx, models)
		if err != nil && mongo.IsDuplicateKeyError(err) {
			// Rows written before the unique index existed may repeat a key.
			// The date lock and the materialization marker still guard new
			// writes, so start without the unique indexes.
			logger.CtxWarn(ctx, "Existing duplicates block unique index, continuing without it",
				zap.String("collection", col), zap.Error(err))
			_, err = creator.CreateMany(ctx, withoutUnique(models))
		}
		if err != nil {
			logger.CtxError(ctx, "Failed to create indexes", err, zap.String("collection", col))
			return fmt.Errorf("migrate %s indexes: %w", col, err)
		}
		logger.CtxDebug(ctx, "Indexes ensured", zap.String("collection", col), zap.Int("count", len(models)))
	}
	return nil
}

func withoutUnique(models []mongo.IndexModel) []mongo.IndexModel {
	kept := make([]mongo.IndexModel, 0, len(models))
	for _, m := range models {
		if m.Options != nil && m.Options.Unique != nil && *m.Options.Unique {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func ledgerIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		consts.LedgersCollection: {
			{
				Keys:    bson.D{{Key: "queryDate", Value: 1}, {Key: "voucherId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "queryDate", Value: 1}}},
			{Keys: bson.D{{Key: "customerId", Value: 1}}},
			{Keys: bson.D{{Key: "voucherId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		consts.LedgerMaterializationsCollection: {
			{
				Keys:    bson.D{{Key: "queryDate", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		consts.InterestRatesCollection: {
			{Keys: bson.D{{Key: "metalType", Value: 1}, {Key: "minAmount", Value: 1}}},
		},
		consts.JewelRatesCollection: {
			{Keys: bson.D{{Key: "metalType", Value: 1}, {Key: "date", Value: -1}}},
		},
	}
}
