package consts

// Messages returned to API callers.
const (
	MsgHealthCheck             = "Health Check"
	MsgServerError             = "Server Error"
	MsgInvalidAmountRange      = "Maximum amount must be greater than minimum amount"
	MsgOverlappingRange        = "This amount range overlaps with an existing interest rate"
	MsgInterestRateNotFound    = "Interest rate not found"
	MsgInterestRateDeleted     = "Interest rate deleted successfully"
	MsgInterestRateFieldsReq   = "Metal type, amount range and interest are required"
	MsgInvalidInterestRateID   = "Invalid interest rate id"
	MsgJewelRateNotFound       = "Jewel rate not found"
	MsgJewelRateFieldsRequired = "Metal type and rate are required"
	MsgInvalidJewelRateDate    = "Date must be YYYY-MM-DD or RFC 3339"
	MsgLedgerFetchFailed       = "Failed to fetch ledger data"
	MsgInvalidLedgerDate       = "Date must be YYYY-MM-DD"
	MsgMalformedRequestBody    = "Malformed request body"
)
