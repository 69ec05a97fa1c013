package consts

const (
	DateFormat = "2006-01-02"

	MetalTypeGold   = "gold"
	MetalTypeSilver = "silver"

	// Ledger entry defaults for missing voucher or customer fields.
	DefaultString    = "N/A"
	DefaultJewelType = "gold"

	LedgerLockKeyPrefix = "ledger:materialize:"
	DefaultTimezone     = "Asia/Kolkata"

	LedgerMaterializedEvent = "LedgerMaterialized"
)
