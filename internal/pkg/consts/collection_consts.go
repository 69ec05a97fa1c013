package consts

const (
	InterestRatesCollection          = "interestrates"
	JewelRatesCollection             = "jewelrates"
	VouchersCollection               = "vouchers"
	CustomersCollection              = "customers"
	LedgersCollection                = "ledgers"
	LedgerMaterializationsCollection = "ledgermaterializations"
)
