package interfaces

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LedgerRepositoryInterface interface {
	CountEntries(ctx context.Context, queryDate time.Time) (int64, error)
	InsertEntries(ctx context.Context, entries []models.LedgerEntry) (int64, error)
	FindEntries(ctx context.Context, queryDate time.Time) ([]models.LedgerEntry, error)
	FindMaterialization(ctx context.Context, queryDate time.Time) (*models.LedgerMaterialization, error)
	SaveMaterialization(ctx context.Context, marker models.LedgerMaterialization) error
}

type LedgerEntriesStoreInterface interface {
	CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LedgerEntry, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type LedgerMaterializationsStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LedgerMaterialization, error)
	Upsert(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
