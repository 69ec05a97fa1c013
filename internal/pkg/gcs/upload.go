package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GCSClient struct {
	Client     *storage.Client
	BucketName string
	FolderName string
}

type GcsInterface interface {
	UploadSnapshot(ctx context.Context, snapshot *models.LedgerSnapshot) (string, error)
	Close(ctx context.Context)
}

func NewGCSClient(ctx context.Context, bucketName, folderName string, opts ...option.ClientOption) (GcsInterface, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSClient{
		Client:     client,
		BucketName: bucketName,
		FolderName: folderName,
	}, nil
}

func (g *GCSClient) Close(ctx context.Context) {
	if g.Client == nil {
		return
	}
	if err := g.Client.Close(); err != nil {
		logger.CtxError(ctx, log_messages.ErrorClosingGCSClient, err)
	}
}

// SnapshotObjectName is the object a query date's snapshot is written to.
func (g *GCSClient) SnapshotObjectName(queryDate string) string {
	return fmt.Sprintf("%s/%s.json", g.FolderName, queryDate)
}

// UploadSnapshot writes the snapshot once. Snapshots are immutable, so an
// existing object for the same date is kept and reported as success.
func (g *GCSClient) UploadSnapshot(ctx context.Context, snapshot *models.LedgerSnapshot) (string, error) {
	objectName := g.SnapshotObjectName(snapshot.QueryDate)
	object := g.Client.Bucket(g.BucketName).Object(objectName)

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorMarshallingJSON, err)
		return "", err
	}

	writer := object.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err = writer.Write(jsonData); err != nil {
		_ = writer.Close()
		logger.CtxError(ctx, log_messages.ErrorUploadingToGCSBucket, err, zap.String("objectName", objectName))
		return "", err
	}
	if err := writer.Close(); err != nil {
		if isPreconditionFailed(err) {
			logger.CtxInfo(ctx, log_messages.SnapshotAlreadyArchived, zap.String("objectName", objectName))
			return objectName, nil
		}
		logger.CtxError(ctx, log_messages.ErrorClosingGCSWriter, err, zap.String("objectName", objectName))
		return "", err
	}

	logger.CtxInfo(ctx, log_messages.UploadedToGCSBucket,
		zap.String("objectName", objectName),
		zap.Int("entries", len(snapshot.Entries)),
	)
	return objectName, nil
}

func isPreconditionFailed(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed
}
