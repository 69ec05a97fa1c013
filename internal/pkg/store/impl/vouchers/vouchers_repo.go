package vouchers

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/consts"
	mongodb "pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/pkg/store/repository"
	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type VouchersRepository struct {
	repo interfaces.VouchersStoreInterface
}

func NewVouchersRepository(client *mongodb.MongoClient) *VouchersRepository {
	collection := client.Database.Collection(consts.VouchersCollection)
	repo := repository.NewMongoRepository[models.Voucher](collection)
	return &VouchersRepository{repo: repo}
}

func NewVouchersRepositoryWithInterface(repo interfaces.VouchersStoreInterface) *VouchersRepository {
	return &VouchersRepository{repo: repo}
}

// FindVouchersWithCustomers returns every voucher disbursed on or before
// disbursedBy, left-joined with its customer document.
func (vr *VouchersRepository) FindVouchersWithCustomers(ctx context.Context, disbursedBy time.Time) ([]models.Voucher, error) {
	vouchers, err := vr.repo.AggregateAll(ctx, voucherPipeline(disbursedBy))
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingVouchers, err, zap.Time("disbursedBy", disbursedBy))
		return nil, err
	}
	return vouchers, nil
}

func voucherPipeline(disbursedBy time.Time) bson.A {
	return bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "disbursementDate", Value: bson.D{{Key: "$lte", Value: disbursedBy}}},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: consts.CustomersCollection},
			{Key: "localField", Value: "customer"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "customerDoc"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$customerDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
