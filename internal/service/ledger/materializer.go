package ledger

import (
	"context"
	"errors"
	"time"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"
	storemodels "pawn-ledger/internal/pkg/store/models"
	"pawn-ledger/internal/service/interfaces"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "pawn-ledger/internal/service/ledger"

type MaterializerInterface interface {
	EnsureMaterialized(ctx context.Context, date time.Time) error
}

// Materializer writes the ledger of a day exactly once. A day moves from
// unmaterialized to materialized when its marker is saved, and never back.
type Materializer struct {
	ledger   interfaces.LedgerRepositoryInterface
	vouchers interfaces.VouchersRepositoryInterface
	locker   DateLocker
	calendar *Calendar
	archiver interfaces.SnapshotArchiver
	events   interfaces.LedgerEventPublisher
	tracer   trace.Tracer
	now      func() time.Time
}

type MaterializerOption func(*Materializer)

// WithSnapshotArchiver uploads a JSON snapshot after each new materialization.
func WithSnapshotArchiver(a interfaces.SnapshotArchiver) MaterializerOption {
	return func(m *Materializer) { m.archiver = a }
}

// WithEventPublisher announces each new materialization.
func WithEventPublisher(p interfaces.LedgerEventPublisher) MaterializerOption {
	return func(m *Materializer) { m.events = p }
}

func NewMaterializer(
	ledger interfaces.LedgerRepositoryInterface,
	vouchers interfaces.VouchersRepositoryInterface,
	locker DateLocker,
	calendar *Calendar,
	opts ...MaterializerOption,
) *Materializer {
	m := &Materializer{
		ledger:   ledger,
		vouchers: vouchers,
		locker:   locker,
		calendar: calendar,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Materializer) EnsureMaterialized(ctx context.Context, date time.Time) error {
	day := m.calendar.StartOfDay(date)
	dayKey := m.calendar.DayKey(day)

	ctx, span := m.tracer.Start(ctx, "ledger.EnsureMaterialized",
		trace.WithAttributes(attribute.String("ledger.query_date", dayKey)))
	defer span.End()

	marker, err := m.ledger.FindMaterialization(ctx, day)
	if err != nil {
		return m.fail(ctx, span, dayKey, models.NewStoreError("find ledger marker", err))
	}
	if marker != nil {
		span.SetAttributes(attribute.Bool("ledger.cached", true))
		logger.CtxDebug(ctx, log_messages.LedgerAlreadyMaterialized, zap.String("queryDate", dayKey))
		return nil
	}

	release, err := m.locker.Acquire(ctx, dayKey)
	if err != nil {
		if errors.Is(err, ErrDateLockTimeout) {
			return m.fail(ctx, span, dayKey, models.NewStoreError("wait for ledger date lock", err))
		}
		return m.fail(ctx, span, dayKey, models.NewStoreError("acquire ledger date lock", err))
	}
	entries, created, err := m.materializeLocked(ctx, day, dayKey)
	release()
	if err != nil {
		return m.fail(ctx, span, dayKey, err)
	}

	span.SetAttributes(
		attribute.Bool("ledger.cached", !created),
		attribute.Int("ledger.entry_count", len(entries)),
	)
	if created {
		m.publishSideEffects(ctx, dayKey, entries)
	}
	return nil
}

// materializeLocked runs with the day lock held. created is false when
// another writer finished the day first.
func (m *Materializer) materializeLocked(ctx context.Context, day time.Time, dayKey string) ([]storemodels.LedgerEntry, bool, error) {
	marker, err := m.ledger.FindMaterialization(ctx, day)
	if err != nil {
		return nil, false, models.NewStoreError("find ledger marker", err)
	}
	if marker != nil {
		logger.CtxDebug(ctx, log_messages.LedgerAlreadyMaterialized, zap.String("queryDate", dayKey))
		return nil, false, nil
	}

	existing, err := m.ledger.CountEntries(ctx, day)
	if err != nil {
		return nil, false, models.NewStoreError("count ledger entries", err)
	}
	now := m.now().UTC()
	if existing > 0 {
		backfill := storemodels.LedgerMaterialization{QueryDate: day, EntryCount: existing, MaterializedAt: now}
		if err := m.ledger.SaveMaterialization(ctx, backfill); err != nil {
			return nil, false, models.NewStoreError("save ledger marker", err)
		}
		logger.CtxInfo(ctx, log_messages.LedgerMarkerBackfilled,
			zap.String("queryDate", dayKey),
			zap.Int64("entries", existing),
		)
		return nil, false, nil
	}

	logger.CtxInfo(ctx, log_messages.LedgerMaterializationStarted, zap.String("queryDate", dayKey))

	vouchers, err := m.vouchers.FindVouchersWithCustomers(ctx, day)
	if err != nil {
		return nil, false, models.NewStoreError("fetch vouchers", err)
	}
	entries := buildEntries(vouchers, day, now)
	if len(entries) == 0 {
		// An empty day stays unmaterialized so vouchers entered later still show up.
		logger.CtxInfo(ctx, log_messages.LedgerDayEmpty,
			zap.String("queryDate", dayKey),
			zap.Int("vouchers", len(vouchers)),
		)
		return nil, false, nil
	}

	inserted, err := m.ledger.InsertEntries(ctx, entries)
	if err != nil {
		return nil, false, models.NewStoreError("insert ledger entries", err)
	}

	done := storemodels.LedgerMaterialization{QueryDate: day, EntryCount: int64(len(entries)), MaterializedAt: now}
	if err := m.ledger.SaveMaterialization(ctx, done); err != nil {
		return nil, false, models.NewStoreError("save ledger marker", err)
	}

	logger.CtxInfo(ctx, log_messages.LedgerMaterialized,
		zap.String("queryDate", dayKey),
		zap.Int("vouchers", len(vouchers)),
		zap.Int("entries", len(entries)),
		zap.Int64("inserted", inserted),
	)
	return entries, true, nil
}

// publishSideEffects archives the snapshot and emits the event. Failures are
// logged only; the ledger rows are already committed.
func (m *Materializer) publishSideEffects(ctx context.Context, dayKey string, entries []storemodels.LedgerEntry) {
	if m.archiver == nil && m.events == nil {
		return
	}
	materializedAt := m.now().UTC()

	var objectName string
	if m.archiver != nil {
		snapshot := &models.LedgerSnapshot{
			QueryDate:      dayKey,
			MaterializedAt: materializedAt,
			Entries:        toLoanViews(entries),
		}
		name, err := m.archiver.UploadSnapshot(ctx, snapshot)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorArchivingSnapshot, err, zap.String("queryDate", dayKey))
		} else {
			objectName = name
		}
	}

	if m.events != nil {
		event := &models.LedgerMaterializedEvent{
			EventType:      consts.LedgerMaterializedEvent,
			QueryDate:      dayKey,
			EntryCount:     int64(len(entries)),
			MaterializedAt: materializedAt,
			SnapshotObject: objectName,
			TraceID:        logger.TraceIDFromContext(ctx),
		}
		if err := m.events.PublishLedgerMaterialized(ctx, event); err != nil {
			logger.CtxError(ctx, log_messages.ErrorPublishingLedgerEvent, err, zap.String("queryDate", dayKey))
		}
	}
}

func (m *Materializer) fail(ctx context.Context, span trace.Span, dayKey string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.CtxError(ctx, log_messages.ErrorMaterializingLedger, err, zap.String("queryDate", dayKey))
	return err
}
