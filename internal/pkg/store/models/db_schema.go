package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InterestRate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MetalType string             `bson:"metalType" json:"metalType"`
	MinAmount float64            `bson:"minAmount" json:"minAmount"`
	MaxAmount float64            `bson:"maxAmount" json:"maxAmount"`
	Interest  float64            `bson:"interest" json:"interest"`
	Date      time.Time          `bson:"date" json:"date"`
}

type JewelRate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MetalType string             `bson:"metalType" json:"metalType"`
	Rate      float64            `bson:"rate" json:"rate"`
	Date      time.Time          `bson:"date" json:"date"`
}

type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID  string             `bson:"customerId" json:"customerId"`
	FullName    string             `bson:"fullName" json:"fullName"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Photo       *string            `bson:"photo,omitempty" json:"photo"`
}

// Voucher is a loan voucher as read from the vouchers collection, with the
// referenced customer joined in when it exists.
type Voucher struct {
	ID                primitive.ObjectID  `bson:"_id"`
	BillNo            string              `bson:"billNo"`
	CustomerRef       *primitive.ObjectID `bson:"customer,omitempty"`
	JewelType         string              `bson:"jewelType"`
	GrossWeight       float64             `bson:"grossWeight"`
	NetWeight         float64             `bson:"netWeight"`
	LoanAmount        float64             `bson:"loanAmount"`
	FinalLoanAmount   float64             `bson:"finalLoanAmount"`
	InterestRate      float64             `bson:"interestRate"`
	InterestAmount    float64             `bson:"interestAmount"`
	OverallLoanAmount float64             `bson:"overallLoanAmount"`
	RepaidAmount      float64             `bson:"repaidAmount"`
	BalanceAmount     float64             `bson:"balanceAmount"`
	DisbursementDate  *time.Time          `bson:"disbursementDate,omitempty"`
	DueDate           *time.Time          `bson:"dueDate,omitempty"`
	LastPaymentDate   *time.Time          `bson:"lastPaymentDate,omitempty"`
	Status            string              `bson:"status"`
	DaysOverdue       float64             `bson:"daysOverdue"`
	LoanDuration      float64             `bson:"loanDuration"`
	PaymentProgress   float64             `bson:"paymentProgress"`
	MonthsPaid        float64             `bson:"monthsPaid"`
	ClosedDate        *time.Time          `bson:"closedDate,omitempty"`
	JewelryItems      bson.RawValue       `bson:"jewelryItems,omitempty"`

	Customer *Customer `bson:"customerDoc,omitempty"`
}

// LedgerEntry is the point-in-time snapshot of one voucher on one query
// date. Entries are only ever inserted.
type LedgerEntry struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	QueryDate        time.Time           `bson:"queryDate"`
	VoucherID        primitive.ObjectID  `bson:"voucherId"`
	CustomerID       *primitive.ObjectID `bson:"customerId"`
	BillNo           string              `bson:"billNo"`
	CustomerCode     string              `bson:"customerCode"`
	CustomerName     string              `bson:"customerName"`
	CustomerPhone    string              `bson:"customerPhone"`
	CustomerPhoto    *string             `bson:"customerPhoto"`
	JewelType        string              `bson:"jewelType"`
	GrossWeight      float64             `bson:"grossWeight"`
	NetWeight        float64             `bson:"netWeight"`
	JewelryItems     bson.A              `bson:"jewelryItems"`
	FinalLoanAmount  float64             `bson:"finalLoanAmount"`
	InterestRate     float64             `bson:"interestRate"`
	InterestAmount   float64             `bson:"interestAmount"`
	TotalAmount      float64             `bson:"totalAmount"`
	RepaidAmount     float64             `bson:"repaidAmount"`
	BalanceAmount    float64             `bson:"balanceAmount"`
	DisbursementDate *time.Time          `bson:"disbursementDate"`
	DueDate          *time.Time          `bson:"dueDate"`
	LastPaymentDate  *time.Time          `bson:"lastPaymentDate"`
	Status           LoanStatus          `bson:"status"`
	DaysOverdue      float64             `bson:"daysOverdue"`
	LoanDuration     float64             `bson:"loanDuration"`
	PaymentProgress  float64             `bson:"paymentProgress"`
	MonthsPaid       float64             `bson:"monthsPaid"`
	ClosedDate       *time.Time          `bson:"closedDate"`
	Category         Category            `bson:"category"`
	CreatedAt        time.Time           `bson:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt"`
}

// LedgerMaterialization marks a query date as materialized.
type LedgerMaterialization struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	QueryDate      time.Time          `bson:"queryDate"`
	EntryCount     int64              `bson:"entryCount"`
	MaterializedAt time.Time          `bson:"materializedAt"`
}
