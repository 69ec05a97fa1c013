package interfaces

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type JewelRatesRepositoryInterface interface {
	ListJewelRates(ctx context.Context) ([]models.JewelRate, error)
	FindLatestJewelRate(ctx context.Context, metalType string) (*models.JewelRate, error)
	UpsertJewelRate(ctx context.Context, metalType string, rate float64, date time.Time) (models.JewelRate, error)
}

type JewelRatesStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.JewelRate, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.JewelRate, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, upsert bool) (models.JewelRate, error)
}
