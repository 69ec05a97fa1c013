package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"pawn-ledger/internal/pkg/config"
	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStore = errors.New("store unavailable")

// memoryLedgerRepo enforces the unique (queryDate, voucherId) pair the way
// the Mongo index does.
type memoryLedgerRepo struct {
	mu          sync.Mutex
	entries     []storemodels.LedgerEntry
	markers     map[int64]storemodels.LedgerMaterialization
	insertCalls int
	insertErr   error
	findErr     error
	markerErr   error
}

func newMemoryLedgerRepo() *memoryLedgerRepo {
	return &memoryLedgerRepo{markers: map[int64]storemodels.LedgerMaterialization{}}
}

func (r *memoryLedgerRepo) CountEntries(ctx context.Context, queryDate time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.entries {
		if e.QueryDate.Equal(queryDate) {
			n++
		}
	}
	return n, nil
}

func (r *memoryLedgerRepo) InsertEntries(ctx context.Context, entries []storemodels.LedgerEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	var inserted int64
	for _, e := range entries {
		if r.hasLocked(e.QueryDate, e.VoucherID) {
			continue
		}
		e.ID = primitive.NewObjectID()
		r.entries = append(r.entries, e)
		inserted++
	}
	return inserted, nil
}

func (r *memoryLedgerRepo) hasLocked(day time.Time, voucher primitive.ObjectID) bool {
	for _, e := range r.entries {
		if e.QueryDate.Equal(day) && e.VoucherID == voucher {
			return true
		}
	}
	return false
}

func (r *memoryLedgerRepo) FindEntries(ctx context.Context, queryDate time.Time) ([]storemodels.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := []storemodels.LedgerEntry{}
	for _, e := range r.entries {
		if e.QueryDate.Equal(queryDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryLedgerRepo) FindMaterialization(ctx context.Context, queryDate time.Time) (*storemodels.LedgerMaterialization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markerErr != nil {
		return nil, r.markerErr
	}
	m, ok := r.markers[queryDate.UnixNano()]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memoryLedgerRepo) SaveMaterialization(ctx context.Context, marker storemodels.LedgerMaterialization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.markers[marker.QueryDate.UnixNano()]; !ok {
		r.markers[marker.QueryDate.UnixNano()] = marker
	}
	return nil
}

func (r *memoryLedgerRepo) marker(day time.Time) (storemodels.LedgerMaterialization, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.markers[day.UnixNano()]
	return m, ok
}

type fakeVouchersRepo struct {
	mu       sync.Mutex
	vouchers []storemodels.Voucher
	calls    int
	err      error
	delay    time.Duration
}

func (f *fakeVouchersRepo) FindVouchersWithCustomers(ctx context.Context, disbursedBy time.Time) ([]storemodels.Voucher, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.vouchers, nil
}

func (f *fakeVouchersRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCustomersRepo struct {
	customers []storemodels.Customer
	err       error
}

func (f *fakeCustomersRepo) ListCustomers(ctx context.Context) ([]storemodels.Customer, error) {
	return f.customers, f.err
}

type fakeArchiver struct {
	snapshots []*models.LedgerSnapshot
	err       error
}

func (f *fakeArchiver) UploadSnapshot(ctx context.Context, snapshot *models.LedgerSnapshot) (string, error) {
	f.snapshots = append(f.snapshots, snapshot)
	if f.err != nil {
		return "", f.err
	}
	return "ledger-snapshots/" + snapshot.QueryDate + ".json", nil
}

type fakePublisher struct {
	events []*models.LedgerMaterializedEvent
	err    error
}

func (f *fakePublisher) PublishLedgerMaterialized(ctx context.Context, event *models.LedgerMaterializedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func testLedgerConfig() config.LedgerConfig {
	return config.LedgerConfig{
		Timezone:     "UTC",
		LockTTL:      5 * time.Second,
		LockWait:     2 * time.Second,
		LockPollTick: 5 * time.Millisecond,
	}
}

func dateOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func voucher(bill, status string, disbursed, due time.Time) storemodels.Voucher {
	return storemodels.Voucher{
		ID:               primitive.NewObjectID(),
		BillNo:           bill,
		Status:           status,
		DisbursementDate: datePtr(disbursed),
		DueDate:          datePtr(due),
		FinalLoanAmount:  95000,
	}
}

func newTestMaterializer(repo *memoryLedgerRepo, vouchers *fakeVouchersRepo, opts ...MaterializerOption) *Materializer {
	m := NewMaterializer(repo, vouchers, NewLocalDateLock(testLedgerConfig()), NewCalendar(time.UTC), opts...)
	m.now = func() time.Time { return time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC) }
	return m
}
