package log_messages

const (
	ServerStartFailure         = "failed to start server"
	ServerStarting             = "Starting HTTP server"
	ServerShutdown             = "Shutting down server..."
	ServerForcedShutdown       = "Server forced to shutdown"
	ServerExiting              = "Server exiting"
	FailedLoadingConfiguration = "Failed to load configuration"
	FailedInitializingRuntime  = "Failed to initialize runtime"
	CleanupStarted             = "Starting cleanup of resources..."
	CleanupCompleted           = "All resources cleaned up successfully"
	TracingEnabled             = "OpenTelemetry tracing enabled"
	OtlpConnectionError        = "OTLP connection error"

	// Interest rates
	ErrorFetchingInterestRates  = "Error fetching interest rates"
	ErrorFetchingInterestRate   = "Error fetching interest rate"
	ErrorCreatingInterestRate   = "Error creating interest rate"
	ErrorUpdatingInterestRate   = "Error updating interest rate"
	ErrorDeletingInterestRate   = "Error deleting interest rate"
	SuccessInterestRateCreation = "Interest rate created"
	SuccessInterestRateUpdate   = "Interest rate updated"
	SuccessInterestRateDeletion = "Interest rate deleted"

	// Jewel rates
	ErrorFetchingJewelRates  = "Error fetching jewel rates"
	ErrorFetchingLatestJewel = "Error fetching latest jewel rate"
	ErrorUpsertingJewelRate  = "Error upserting jewel rate"
	SuccessJewelRateUpserted = "Jewel rate upserted"

	// Ledger
	ErrorFetchingVouchers         = "Error fetching vouchers with customers"
	ErrorFetchingCustomers        = "Error fetching customers"
	ErrorCountingLedgerEntries    = "Error counting ledger entries"
	ErrorInsertingLedgerEntries   = "Error inserting ledger entries"
	ErrorFetchingLedgerEntries    = "Error fetching ledger entries"
	ErrorFetchingMaterialization  = "Error fetching ledger materialization marker"
	ErrorSavingMaterialization    = "Error saving ledger materialization marker"
	DuplicateLedgerEntriesSkipped = "Ledger entries already present were skipped"
	LedgerAlreadyMaterialized     = "Ledger already materialized for date"
	LedgerMaterializationStarted  = "Materializing ledger for date"
	LedgerMaterialized            = "Ledger materialized"
	LedgerMarkerBackfilled        = "Ledger rows found without marker, marker back-filled"
	LedgerDayEmpty                = "No vouchers in force, ledger day left unmaterialized"
	ErrorMaterializingLedger      = "Error materializing ledger"
	ErrorBuildingLedgerView       = "Error building ledger view"
	LedgerViewBuilt               = "Ledger view built"

	// Date lock
	ErrorAcquiringDateLock  = "Error acquiring ledger date lock"
	ErrorReleasingDateLock  = "Error releasing ledger date lock"
	ErrorRefreshingDateLock = "Error refreshing ledger date lock"
	DateLockWaitTimedOut    = "Timed out waiting for ledger date lock"
	DateLockReleasedByTTL   = "Ledger date lock expired before release"

	// GCS
	UploadedToGCSBucket       = "Uploaded ledger snapshot to GCS bucket"
	SnapshotAlreadyArchived   = "Ledger snapshot already archived"
	ErrorUploadingToGCSBucket = "Error uploading to GCS bucket"
	ErrorClosingGCSWriter     = "Error closing GCS writer"
	ErrorClosingGCSClient     = "Error closing GCS client"
	ErrorMarshallingJSON      = "Error marshalling JSON"
	ErrorArchivingSnapshot    = "Error archiving ledger snapshot"

	// PubSub
	PubsubPublisherCreated       = "PubSub publisher client created"
	ErrorCreatingPubsubPublisher = "Failed creating PubSub client"
	ErrorPublishingLedgerEvent   = "Error publishing ledger materialized event"
	PublishedLedgerEvent         = "Published ledger materialized event"
	ErrorClosingPubsubPublisher  = "Error closing PubSub publisher"

	// Handlers
	RequestCompleted   = "Request completed"
	InvalidRequestBody = "Invalid request body"
	InvalidLedgerDate  = "Invalid ledger date"
)
