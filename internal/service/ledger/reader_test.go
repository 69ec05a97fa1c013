package ledger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLedgerService(repo *memoryLedgerRepo, vouchers *fakeVouchersRepo, customers *fakeCustomersRepo) *LedgerService {
	return NewLedgerService(newTestMaterializer(repo, vouchers), repo, customers, NewCalendar(time.UTC))
}

func billNos(loans []models.LoanView) []string {
	out := []string{}
	for _, l := range loans {
		out = append(out, l.BillNo)
	}
	return out
}

func TestGetLedgerViewCategorizes(t *testing.T) {
	ctx := context.Background()
	open := func(bill, status string) storemodels.Voucher {
		return voucher(bill, status, dateOf(2025, 1, 1), dateOf(2026, 1, 1))
	}
	repo := newMemoryLedgerRepo()
	vouchers := &fakeVouchersRepo{vouchers: []storemodels.Voucher{
		open("A", "Active"),
		open("P", "PARTIAL"),
		open("O", "Overdue"),
		open("C", "Closed"),
		open("X", "Auctioned"),
	}}
	customers := &fakeCustomersRepo{customers: []storemodels.Customer{{CustomerID: "CUST001", FullName: "John Doe"}}}

	view, err := newTestLedgerService(repo, vouchers, customers).GetLedgerView(ctx, dateOf(2025, 9, 10))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "P", "O", "C", "X"}, billNos(view.AllLoans))
	assert.ElementsMatch(t, []string{"A", "P"}, billNos(view.ActiveLoans))
	assert.Equal(t, []string{"O"}, billNos(view.OverdueLoans))
	assert.Equal(t, []string{"C"}, billNos(view.ClosedLoans))
	assert.Len(t, view.Customers, 1)
	assert.Equal(t, dateOf(2025, 9, 10), view.QueryDate)
}

func TestGetLedgerViewSingleActiveVoucher(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	photo := "http://localhost:5000/uploads/customer1.jpg"
	customer := storemodels.Customer{ID: primitive.NewObjectID(), CustomerID: "CUST001", FullName: "John Doe", PhoneNumber: "9876543210", Photo: &photo}
	v := voucher("TEST001", "Active", dateOf(2025, 8, 10), dateOf(2026, 8, 10))
	v.Customer = &customer
	vouchers := &fakeVouchersRepo{vouchers: []storemodels.Voucher{v}}
	svc := newTestLedgerService(repo, vouchers, &fakeCustomersRepo{customers: []storemodels.Customer{customer}})

	queryDay, err := svc.ParseQueryDate("2025-09-10")
	require.NoError(t, err)
	view, err := svc.GetLedgerView(ctx, queryDay)

	require.NoError(t, err)
	assert.Len(t, view.ActiveLoans, 1)
	assert.Empty(t, view.OverdueLoans)
	assert.Empty(t, view.ClosedLoans)

	loan := view.ActiveLoans[0]
	assert.Equal(t, v.ID.Hex(), loan.ID)
	assert.Equal(t, "CUST001", loan.CustomerID)
	assert.Equal(t, "John Doe", loan.CustomerName)
	assert.Equal(t, &photo, loan.CustomerPhoto)
	assert.Equal(t, storemodels.StatusActive, loan.Status)
}

func TestGetLedgerViewEmptyDayRendersEmptyLists(t *testing.T) {
	ctx := context.Background()
	svc := newTestLedgerService(newMemoryLedgerRepo(), &fakeVouchersRepo{}, &fakeCustomersRepo{})

	view, err := svc.GetLedgerView(ctx, dateOf(2025, 9, 10))
	require.NoError(t, err)

	body, err := json.Marshal(models.LedgerResponse{Success: true, LedgerView: view})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"allLoans":[],"activeLoans":[],"overdueLoans":[],"closedLoans":[],"customers":[]}`, string(body))
}

func TestGetLedgerViewErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("materialization failure", func(t *testing.T) {
		svc := newTestLedgerService(newMemoryLedgerRepo(), &fakeVouchersRepo{err: errStore}, &fakeCustomersRepo{})
		_, err := svc.GetLedgerView(ctx, dateOf(2025, 9, 10))
		assert.ErrorIs(t, err, errStore)
	})

	t.Run("entries read failure", func(t *testing.T) {
		repo := newMemoryLedgerRepo()
		repo.findErr = errStore
		svc := newTestLedgerService(repo, &fakeVouchersRepo{}, &fakeCustomersRepo{})
		_, err := svc.GetLedgerView(ctx, dateOf(2025, 9, 10))
		assert.Equal(t, models.ErrorCodeStore, models.ErrorCodeOf(err))
	})

	t.Run("customers read failure", func(t *testing.T) {
		svc := newTestLedgerService(newMemoryLedgerRepo(), &fakeVouchersRepo{}, &fakeCustomersRepo{err: errStore})
		_, err := svc.GetLedgerView(ctx, dateOf(2025, 9, 10))
		assert.ErrorIs(t, err, errStore)
	})
}

func TestPlainItems(t *testing.T) {
	items := primitive.A{
		primitive.D{{Key: "name", Value: "Chain"}, {Key: "weight", Value: 12.5},
			{Key: "stones", Value: primitive.A{primitive.D{{Key: "kind", Value: "ruby"}}}}},
		"loose",
	}

	got := plainItems(items)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Chain","weight":12.5,"stones":[{"kind":"ruby"}]},"loose"]`, string(body))
	assert.Equal(t, []interface{}{}, plainItems(nil))
}

func TestGetLedgerViewPicksUpVouchersEnteredAfterAnEmptyRead(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	vouchers := &fakeVouchersRepo{}
	svc := newTestLedgerService(repo, vouchers, &fakeCustomersRepo{})
	queryDay := dateOf(2025, 9, 10)

	view, err := svc.GetLedgerView(ctx, queryDay)
	require.NoError(t, err)
	assert.Empty(t, view.AllLoans)

	vouchers.vouchers = []storemodels.Voucher{
		voucher("TEST001", "active", dateOf(2025, 8, 10), dateOf(2026, 8, 10)),
	}
	view, err = svc.GetLedgerView(ctx, queryDay)

	require.NoError(t, err)
	assert.Equal(t, []string{"TEST001"}, billNos(view.AllLoans))
	assert.Len(t, view.ActiveLoans, 1)
	assert.Equal(t, 2, vouchers.callCount())
}
