package jewelrates

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

type JewelRatesRepository struct {
	repo interfaces.JewelRatesStoreInterface
}

func NewJewelRatesRepository(client *mongodb.MongoClient) *JewelRatesRepository {
	collection := client.Database.Collection(consts.JewelRatesCollection)
	repo := repository.NewMongoRepository[models.JewelRate](collection)
	return &JewelRatesRepository{repo: repo}
}

func NewJewelRatesRepositoryWithInterface(repo interfaces.JewelRatesStoreInterface) *JewelRatesRepository {
	return &JewelRatesRepository{repo: repo}
}

func (jr *JewelRatesRepository) ListJewelRates(ctx context.Context) ([]models.JewelRate, error) {
	rates, err := jr.repo.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingJewelRates, err)
		return nil, err
	}
	return rates, nil
}

// FindLatestJewelRate returns the most recent rate for metalType, or nil.
func (jr *JewelRatesRepository) FindLatestJewelRate(ctx context.Context, metalType string) (*models.JewelRate, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	rate, err := jr.repo.FindOne(ctx, bson.M{"metalType": metalType}, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingLatestJewel, err, zap.String("metalType", metalType))
		return nil, err
	}
	return &rate, nil
}

// UpsertJewelRate sets the rate and date of the metalType record, creating it
// when absent.
func (jr *JewelRatesRepository) UpsertJewelRate(ctx context.Context, metalType string, rate float64, date time.Time) (models.JewelRate, error) {
	update := bson.M{"$set": bson.M{"rate": rate, "date": date}}
	saved, err := jr.repo.FindOneAndUpdate(ctx, bson.M{"metalType": metalType}, update, true)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpsertingJewelRate, err, zap.String("metalType", metalType))
		return models.JewelRate{}, err
	}
	logger.CtxInfo(ctx, log_messages.SuccessJewelRateUpserted,
		zap.String("metalType", metalType),
		zap.Float64("rate", rate),
	)
	return saved, nil
}
