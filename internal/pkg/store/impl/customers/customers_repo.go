package customers

import (
	"context"

	"pawn-ledger/internal/pkg/consts"
	mongodb "pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/pkg/store/repository"
	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
)

type CustomersRepository struct {
	repo interfaces.CustomersStoreInterface
}

func NewCustomersRepository(client *mongodb.MongoClient) *CustomersRepository {
	collection := client.Database.Collection(consts.CustomersCollection)
	repo := repository.NewMongoRepository[models.Customer](collection)
	return &CustomersRepository{repo: repo}
}

func NewCustomersRepositoryWithInterface(repo interfaces.CustomersStoreInterface) *CustomersRepository {
	return &CustomersRepository{repo: repo}
}

func (cr *CustomersRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := cr.repo.Find(ctx, bson.M{})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingCustomers, err)
		return nil, err
	}
	return customers, nil
}
