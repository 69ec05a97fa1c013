package interestrates

import (
	"context"
	"errors"

	"pawn-ledger/internal/pkg/consts"
	mongodb "pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/pkg/store/repository"
	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type InterestRatesRepository struct {
	repo interfaces.InterestRatesStoreInterface
}

func NewInterestRatesRepository(client *mongodb.MongoClient) *InterestRatesRepository {
	collection := client.Database.Collection(consts.InterestRatesCollection)
	repo := repository.NewMongoRepository[models.InterestRate](collection)
	return &InterestRatesRepository{repo: repo}
}

func NewInterestRatesRepositoryWithInterface(repo interfaces.InterestRatesStoreInterface) *InterestRatesRepository {
	return &InterestRatesRepository{repo: repo}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}

func (ir *InterestRatesRepository) ListInterestRates(ctx context.Context) ([]models.InterestRate, error) {
	rates, err := ir.repo.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingInterestRates, err)
		return nil, err
	}
	return rates, nil
}

func (ir *InterestRatesRepository) ListInterestRatesByMetal(ctx context.Context, metalType string) ([]models.InterestRate, error) {
	rates, err := ir.repo.Find(ctx, bson.M{"metalType": metalType},
		options.Find().SetSort(bson.D{{Key: "minAmount", Value: 1}}))
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingInterestRates, err, zap.String("metalType", metalType))
		return nil, err
	}
	return rates, nil
}

// FindInterestRateByID returns nil when no band has the id.
func (ir *InterestRatesRepository) FindInterestRateByID(ctx context.Context, id primitive.ObjectID) (*models.InterestRate, error) {
	rate, err := ir.repo.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingInterestRate, err, zap.String("id", id.Hex()))
		return nil, err
	}
	return &rate, nil
}

func (ir *InterestRatesRepository) CreateInterestRate(ctx context.Context, rate models.InterestRate) (models.InterestRate, error) {
	rate.ID = primitive.NewObjectID()
	if _, err := ir.repo.Create(ctx, rate); err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingInterestRate, err)
		return models.InterestRate{}, err
	}
	logger.CtxInfo(ctx, log_messages.SuccessInterestRateCreation, zap.String("id", rate.ID.Hex()))
	return rate, nil
}

// UpdateInterestRate replaces the band fields and returns the updated band,
// or nil when the id no longer exists.
func (ir *InterestRatesRepository) UpdateInterestRate(ctx context.Context, rate models.InterestRate) (*models.InterestRate, error) {
	update := bson.M{"$set": bson.M{
		"metalType": rate.MetalType,
		"minAmount": rate.MinAmount,
		"maxAmount": rate.MaxAmount,
		"interest":  rate.Interest,
		"date":      rate.Date,
	}}
	updated, err := ir.repo.FindOneAndUpdate(ctx, bson.M{"_id": rate.ID}, update, false)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorUpdatingInterestRate, err, zap.String("id", rate.ID.Hex()))
		return nil, err
	}
	logger.CtxInfo(ctx, log_messages.SuccessInterestRateUpdate, zap.String("id", rate.ID.Hex()))
	return &updated, nil
}

func (ir *InterestRatesRepository) DeleteInterestRate(ctx context.Context, id primitive.ObjectID) (bool, error) {
	deleted, err := ir.repo.Delete(ctx, bson.M{"_id": id})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorDeletingInterestRate, err, zap.String("id", id.Hex()))
		return false, err
	}
	if deleted > 0 {
		logger.CtxInfo(ctx, log_messages.SuccessInterestRateDeletion, zap.String("id", id.Hex()))
	}
	return deleted > 0, nil
}
