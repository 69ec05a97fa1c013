package ledger

import (
	"context"
	"time"

	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type LedgerServiceInterface interface {
	ParseQueryDate(raw string) (time.Time, error)
	GetLedgerView(ctx context.Context, date time.Time) (*models.LedgerView, error)
}

// LedgerService reads ledger days, materializing them on first access.
type LedgerService struct {
	materializer MaterializerInterface
	ledger       interfaces.LedgerRepositoryInterface
	customers    interfaces.CustomersRepositoryInterface
	calendar     *Calendar
}

func NewLedgerService(
	materializer MaterializerInterface,
	ledger interfaces.LedgerRepositoryInterface,
	customers interfaces.CustomersRepositoryInterface,
	calendar *Calendar,
) *LedgerService {
	return &LedgerService{
		materializer: materializer,
		ledger:       ledger,
		customers:    customers,
		calendar:     calendar,
	}
}

func (s *LedgerService) ParseQueryDate(raw string) (time.Time, error) {
	return s.calendar.ParseQueryDate(raw)
}

func (s *LedgerService) GetLedgerView(ctx context.Context, date time.Time) (*models.LedgerView, error) {
	day := s.calendar.StartOfDay(date)

	if err := s.materializer.EnsureMaterialized(ctx, day); err != nil {
		return nil, err
	}

	entries, err := s.ledger.FindEntries(ctx, day)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorBuildingLedgerView, err)
		return nil, models.NewStoreError("fetch ledger entries", err)
	}
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorBuildingLedgerView, err)
		return nil, models.NewStoreError("fetch customers", err)
	}
	if customers == nil {
		customers = []storemodels.Customer{}
	}

	view := categorize(toLoanViews(entries))
	view.QueryDate = day
	view.Customers = customers

	logger.CtxDebug(ctx, log_messages.LedgerViewBuilt,
		zap.String("queryDate", s.calendar.DayKey(day)),
		zap.Int("allLoans", len(view.AllLoans)),
		zap.Int("activeLoans", len(view.ActiveLoans)),
		zap.Int("overdueLoans", len(view.OverdueLoans)),
		zap.Int("closedLoans", len(view.ClosedLoans)),
		zap.Int("customers", len(customers)),
	)
	return view, nil
}

// categorize partitions loans by status. Loans with an unrecognized status
// are only in AllLoans.
func categorize(loans []models.LoanView) *models.LedgerView {
	view := &models.LedgerView{
		AllLoans:     loans,
		ActiveLoans:  []models.LoanView{},
		OverdueLoans: []models.LoanView{},
		ClosedLoans:  []models.LoanView{},
	}
	for _, loan := range loans {
		switch loan.Status.Category() {
		case storemodels.CategoryActive:
			view.ActiveLoans = append(view.ActiveLoans, loan)
		case storemodels.CategoryOverdue:
			view.OverdueLoans = append(view.OverdueLoans, loan)
		case storemodels.CategoryClosed:
			view.ClosedLoans = append(view.ClosedLoans, loan)
		}
	}
	return view
}

func toLoanViews(entries []storemodels.LedgerEntry) []models.LoanView {
	loans := make([]models.LoanView, 0, len(entries))
	for _, e := range entries {
		loans = append(loans, toLoanView(e))
	}
	return loans
}

func toLoanView(e storemodels.LedgerEntry) models.LoanView {
	return models.LoanView{
		ID:               e.VoucherID.Hex(),
		CustomerID:       e.CustomerCode,
		CustomerName:     e.CustomerName,
		CustomerPhone:    e.CustomerPhone,
		CustomerPhoto:    e.CustomerPhoto,
		BillNo:           e.BillNo,
		JewelType:        e.JewelType,
		GrossWeight:      e.GrossWeight,
		NetWeight:        e.NetWeight,
		JewelryItems:     plainItems(e.JewelryItems),
		FinalLoanAmount:  e.FinalLoanAmount,
		InterestRate:     e.InterestRate,
		InterestAmount:   e.InterestAmount,
		TotalAmount:      e.TotalAmount,
		RepaidAmount:     e.RepaidAmount,
		BalanceAmount:    e.BalanceAmount,
		DisbursementDate: e.DisbursementDate,
		DueDate:          e.DueDate,
		LastPaymentDate:  e.LastPaymentDate,
		Status:           storemodels.NormalizeStatus(string(e.Status)),
		DaysOverdue:      e.DaysOverdue,
		LoanDuration:     e.LoanDuration,
		PaymentProgress:  e.PaymentProgress,
		MonthsPaid:       e.MonthsPaid,
		ClosedDate:       e.ClosedDate,
	}
}

// plainItems turns decoded BSON documents into maps and slices so the
// jewelry items render as JSON objects.
func plainItems(items primitive.A) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, plainValue(item))
	}
	return out
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = plainValue(val)
		}
		return m
	case primitive.A:
		return plainItems(t)
	default:
		return v
	}
}
