package interfaces

import (
	"context"

	"pawn-ledger/internal/pkg/models"
)

// SnapshotArchiver stores the immutable JSON snapshot of a materialized date.
type SnapshotArchiver interface {
	UploadSnapshot(ctx context.Context, snapshot *models.LedgerSnapshot) (string, error)
}

// LedgerEventPublisher announces that a date has been materialized.
type LedgerEventPublisher interface {
	PublishLedgerMaterialized(ctx context.Context, event *models.LedgerMaterializedEvent) error
}
