package models

import (
	"time"

	storemodels "pawn-ledger/internal/pkg/store/models"
)

// LoanView is the flat loan record returned by GET /ledger.
type LoanView struct {
	ID               string                 `json:"id"`
	CustomerID       string                 `json:"customerId"`
	CustomerName     string                 `json:"customerName"`
	CustomerPhone    string                 `json:"customerPhone"`
	CustomerPhoto    *string                `json:"customerPhoto"`
	BillNo           string                 `json:"billNo"`
	JewelType        string                 `json:"jewelType"`
	GrossWeight      float64                `json:"grossWeight"`
	NetWeight        float64                `json:"netWeight"`
	JewelryItems     []interface{}          `json:"jewelryItems"`
	FinalLoanAmount  float64                `json:"finalLoanAmount"`
	InterestRate     float64                `json:"interestRate"`
	InterestAmount   float64                `json:"interestAmount"`
	TotalAmount      float64                `json:"totalAmount"`
	RepaidAmount     float64                `json:"repaidAmount"`
	BalanceAmount    float64                `json:"balanceAmount"`
	DisbursementDate *time.Time             `json:"disbursementDate"`
	DueDate          *time.Time             `json:"dueDate"`
	LastPaymentDate  *time.Time             `json:"lastPaymentDate"`
	Status           storemodels.LoanStatus `json:"status"`
	DaysOverdue      float64                `json:"daysOverdue"`
	LoanDuration     float64                `json:"loanDuration"`
	PaymentProgress  float64                `json:"paymentProgress"`
	MonthsPaid       float64                `json:"monthsPaid"`
	ClosedDate       *time.Time             `json:"closedDate"`
}

// LedgerView is the categorized ledger for one query date.
type LedgerView struct {
	QueryDate    time.Time              `json:"-"`
	AllLoans     []LoanView             `json:"allLoans"`
	ActiveLoans  []LoanView             `json:"activeLoans"`
	OverdueLoans []LoanView             `json:"overdueLoans"`
	ClosedLoans  []LoanView             `json:"closedLoans"`
	Customers    []storemodels.Customer `json:"customers"`
}

// LedgerResponse is the body of GET /ledger.
type LedgerResponse struct {
	Success bool `json:"success"`
	*LedgerView
}

// LedgerErrorResponse is the body of a failed GET /ledger.
type LedgerErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// LedgerSnapshot is the archived form of a materialized date.
type LedgerSnapshot struct {
	QueryDate      string     `json:"queryDate"`
	MaterializedAt time.Time  `json:"materializedAt"`
	Entries        []LoanView `json:"entries"`
}

// LedgerMaterializedEvent is published once a date has been materialized.
type LedgerMaterializedEvent struct {
	EventType      string    `json:"eventType"`
	QueryDate      string    `json:"queryDate"`
	EntryCount     int64     `json:"entryCount"`
	MaterializedAt time.Time `json:"materializedAt"`
	SnapshotObject string    `json:"snapshotObject,omitempty"`
	TraceID        string    `json:"traceId,omitempty"`
}

// MessageResponse is the generic {message} body used by the rate endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
