package ledger

import (
	"time"

	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/bson"
)

// inForce reports whether v was in force on day: disbursed on or before it
// and either not yet due or closed.
func inForce(v models.Voucher, status models.LoanStatus, day time.Time) bool {
	if v.DisbursementDate == nil || v.DisbursementDate.After(day) {
		return false
	}
	if status == models.StatusClosed {
		return true
	}
	return v.DueDate != nil && !v.DueDate.Before(day)
}

// buildEntries snapshots the vouchers in force on day.
func buildEntries(vouchers []models.Voucher, day, now time.Time) []models.LedgerEntry {
	entries := make([]models.LedgerEntry, 0, len(vouchers))
	for _, v := range vouchers {
		status := models.NormalizeStatus(v.Status)
		if !inForce(v, status, day) {
			continue
		}
		entries = append(entries, buildEntry(v, status, day, now))
	}
	return entries
}

func buildEntry(v models.Voucher, status models.LoanStatus, day, now time.Time) models.LedgerEntry {
	entry := models.LedgerEntry{
		QueryDate:        day,
		VoucherID:        v.ID,
		BillNo:           orDefault(v.BillNo, consts.DefaultString),
		CustomerCode:     consts.DefaultString,
		CustomerName:     consts.DefaultString,
		CustomerPhone:    consts.DefaultString,
		JewelType:        orDefault(v.JewelType, consts.DefaultJewelType),
		GrossWeight:      v.GrossWeight,
		NetWeight:        v.NetWeight,
		JewelryItems:     jewelryItems(v.JewelryItems),
		FinalLoanAmount:  v.FinalLoanAmount,
		InterestRate:     v.InterestRate,
		InterestAmount:   v.InterestAmount,
		TotalAmount:      v.OverallLoanAmount,
		RepaidAmount:     v.RepaidAmount,
		BalanceAmount:    v.BalanceAmount,
		DisbursementDate: v.DisbursementDate,
		DueDate:          v.DueDate,
		LastPaymentDate:  v.LastPaymentDate,
		Status:           status,
		DaysOverdue:      v.DaysOverdue,
		LoanDuration:     v.LoanDuration,
		PaymentProgress:  v.PaymentProgress,
		MonthsPaid:       v.MonthsPaid,
		ClosedDate:       v.ClosedDate,
		Category:         status.Category(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if c := v.Customer; c != nil {
		id := c.ID
		entry.CustomerID = &id
		entry.CustomerCode = orDefault(c.CustomerID, consts.DefaultString)
		entry.CustomerName = orDefault(c.FullName, consts.DefaultString)
		entry.CustomerPhone = orDefault(c.PhoneNumber, consts.DefaultString)
		if c.Photo != nil && *c.Photo != "" {
			photo := *c.Photo
			entry.CustomerPhoto = &photo
		}
	}
	return entry
}

// jewelryItems keeps the raw list when it is an array and is empty otherwise.
func jewelryItems(raw bson.RawValue) bson.A {
	if raw.Type != bson.TypeArray {
		return bson.A{}
	}
	var items bson.A
	if err := raw.Unmarshal(&items); err != nil || items == nil {
		return bson.A{}
	}
	return items
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
