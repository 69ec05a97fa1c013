package rates

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/service/interfaces"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate = validator.New()

type InterestRateServiceInterface interface {
	ListInterestRates(ctx context.Context) ([]storemodels.InterestRate, error)
	CreateInterestRate(ctx context.Context, req models.InterestRateRequest) (*storemodels.InterestRate, error)
	UpdateInterestRate(ctx context.Context, id string, req models.InterestRateRequest) (*storemodels.InterestRate, error)
	DeleteInterestRate(ctx context.Context, id string) error
}

type InterestRateService struct {
	repo interfaces.InterestRatesRepositoryInterface
	now  func() time.Time
}

func NewInterestRateService(repo interfaces.InterestRatesRepositoryInterface) *InterestRateService {
	return &InterestRateService{repo: repo, now: time.Now}
}

func (s *InterestRateService) ListInterestRates(ctx context.Context) ([]storemodels.InterestRate, error) {
	rates, err := s.repo.ListInterestRates(ctx)
	if err != nil {
		return nil, models.NewStoreError("list interest rates", err)
	}
	return rates, nil
}

func (s *InterestRateService) CreateInterestRate(ctx context.Context, req models.InterestRateRequest) (*storemodels.InterestRate, error) {
	band, err := bandFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, band, nil); err != nil {
		return nil, err
	}

	band.Date = s.now().UTC()
	created, err := s.repo.CreateInterestRate(ctx, band)
	if err != nil {
		return nil, models.NewStoreError("create interest rate", err)
	}
	return &created, nil
}

// UpdateInterestRate validates the body, then the id, then existence, then
// overlap against the other bands of the same metal.
func (s *InterestRateService) UpdateInterestRate(
	ctx context.Context,
	id string,
	req models.InterestRateRequest,
) (*storemodels.InterestRate, error) {
	band, err := bandFromRequest(req)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidationError(consts.MsgInvalidInterestRateID)
	}

	existing, err := s.repo.FindInterestRateByID(ctx, oid)
	if err != nil {
		return nil, models.NewStoreError("find interest rate", err)
	}
	if existing == nil {
		return nil, models.NewNotFoundError(consts.MsgInterestRateNotFound)
	}
	if err := s.checkOverlap(ctx, band, &oid); err != nil {
		return nil, err
	}

	band.ID = oid
	band.Date = s.now().UTC()
	updated, err := s.repo.UpdateInterestRate(ctx, band)
	if err != nil {
		return nil, models.NewStoreError("update interest rate", err)
	}
	if updated == nil {
		return nil, models.NewNotFoundError(consts.MsgInterestRateNotFound)
	}
	return updated, nil
}

func (s *InterestRateService) DeleteInterestRate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidationError(consts.MsgInvalidInterestRateID)
	}
	deleted, err := s.repo.DeleteInterestRate(ctx, oid)
	if err != nil {
		return models.NewStoreError("delete interest rate", err)
	}
	if !deleted {
		return models.NewNotFoundError(consts.MsgInterestRateNotFound)
	}
	return nil
}

func bandFromRequest(req models.InterestRateRequest) (storemodels.InterestRate, error) {
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return storemodels.InterestRate{}, models.NewValidationError(consts.MsgInterestRateFieldsReq)
	}
	if *req.MinAmount >= *req.MaxAmount {
		return storemodels.InterestRate{}, models.NewValidationError(consts.MsgInvalidAmountRange)
	}
	return storemodels.InterestRate{
		MetalType: req.MetalType,
		MinAmount: *req.MinAmount,
		MaxAmount: *req.MaxAmount,
		Interest:  *req.Interest,
	}, nil
}

// checkOverlap rejects band when its closed interval meets any other band of
// the same metal. self is skipped on update.
func (s *InterestRateService) checkOverlap(ctx context.Context, band storemodels.InterestRate, self *primitive.ObjectID) error {
	existing, err := s.repo.ListInterestRatesByMetal(ctx, band.MetalType)
	if err != nil {
		return models.NewStoreError("list interest rates by metal", err)
	}
	for _, other := range existing {
		if self != nil && other.ID == *self {
			continue
		}
		if rangesOverlap(band.MinAmount, band.MaxAmount, other.MinAmount, other.MaxAmount) {
			return models.NewValidationError(consts.MsgOverlappingRange)
		}
	}
	return nil
}

// rangesOverlap reports whether [a,b] and [c,d] share at least one point.
func rangesOverlap(a, b, c, d float64) bool {
	return a <= d && c <= b
}
