package interfaces

import (
	"context"

	"pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InterestRatesRepositoryInterface interface {
	ListInterestRates(ctx context.Context) ([]models.InterestRate, error)
	ListInterestRatesByMetal(ctx context.Context, metalType string) ([]models.InterestRate, error)
	FindInterestRateByID(ctx context.Context, id primitive.ObjectID) (*models.InterestRate, error)
	CreateInterestRate(ctx context.Context, rate models.InterestRate) (models.InterestRate, error)
	UpdateInterestRate(ctx context.Context, rate models.InterestRate) (*models.InterestRate, error)
	DeleteInterestRate(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type InterestRatesStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.InterestRate, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InterestRate, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, upsert bool) (models.InterestRate, error)
	Delete(ctx context.Context, filter interface{}) (int64, error)
}
