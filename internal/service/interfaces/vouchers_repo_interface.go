package interfaces

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/store/models"
)

type VouchersRepositoryInterface interface {
	FindVouchersWithCustomers(ctx context.Context, disbursedBy time.Time) ([]models.Voucher, error)
}

type VouchersStoreInterface interface {
	AggregateAll(ctx context.Context, pipeline interface{}) ([]models.Voucher, error)
}
