package rates

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/service/interfaces"
)

type JewelRateServiceInterface interface {
	ListJewelRates(ctx context.Context) ([]storemodels.JewelRate, error)
	LatestJewelRate(ctx context.Context, metalType string) (*storemodels.JewelRate, error)
	UpsertJewelRate(ctx context.Context, req models.JewelRateRequest) (*storemodels.JewelRate, error)
}

type JewelRateService struct {
	repo interfaces.JewelRatesRepositoryInterface
	now  func() time.Time
}

func NewJewelRateService(repo interfaces.JewelRatesRepositoryInterface) *JewelRateService {
	return &JewelRateService{repo: repo, now: time.Now}
}

func (s *JewelRateService) ListJewelRates(ctx context.Context) ([]storemodels.JewelRate, error) {
	rates, err := s.repo.ListJewelRates(ctx)
	if err != nil {
		return nil, models.NewStoreError("list jewel rates", err)
	}
	return rates, nil
}

func (s *JewelRateService) LatestJewelRate(ctx context.Context, metalType string) (*storemodels.JewelRate, error) {
	rate, err := s.repo.FindLatestJewelRate(ctx, models.CanonicalMetalType(metalType))
	if err != nil {
		return nil, models.NewStoreError("find latest jewel rate", err)
	}
	if rate == nil {
		return nil, models.NewNotFoundError(consts.MsgJewelRateNotFound)
	}
	return rate, nil
}

// UpsertJewelRate replaces the current rate of the metal. The record keeps
// the request date, or the time of the write when none is given.
func (s *JewelRateService) UpsertJewelRate(ctx context.Context, req models.JewelRateRequest) (*storemodels.JewelRate, error) {
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return nil, models.NewValidationError(consts.MsgJewelRateFieldsRequired)
	}

	date := s.now().UTC()
	if req.Date != "" {
		parsed, err := parseRateDate(req.Date)
		if err != nil {
			return nil, models.NewValidationError(consts.MsgInvalidJewelRateDate)
		}
		date = parsed
	}

	saved, err := s.repo.UpsertJewelRate(ctx, req.MetalType, *req.Rate, date)
	if err != nil {
		return nil, models.NewStoreError("upsert jewel rate", err)
	}
	return &saved, nil
}

func parseRateDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(consts.DateFormat, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
