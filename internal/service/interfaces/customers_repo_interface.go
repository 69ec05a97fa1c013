package interfaces

import (
	"context"

	"pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomersRepositoryInterface interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type CustomersStoreInterface interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Customer, error)
}
