package models

import "strings"

// LoanStatus is the canonical lowercase voucher status.
type LoanStatus string

const (
	StatusActive  LoanStatus = "active"
	StatusPartial LoanStatus = "partial"
	StatusOverdue LoanStatus = "overdue"
	StatusClosed  LoanStatus = "closed"
)

// Category is the ledger bucket a status falls into.
type Category string

const (
	CategoryActive  Category = "active"
	CategoryOverdue Category = "overdue"
	CategoryClosed  Category = "closed"
	CategoryAll     Category = "all"
)

// NormalizeStatus lowercases a raw voucher status. An empty status is active.
// Unknown values are kept (lowercased) and fall into CategoryAll.
func NormalizeStatus(raw string) LoanStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusActive
	}
	return LoanStatus(s)
}

func (s LoanStatus) Category() Category {
	switch s {
	case StatusActive, StatusPartial:
		return CategoryActive
	case StatusOverdue:
		return CategoryOverdue
	case StatusClosed:
		return CategoryClosed
	default:
		return CategoryAll
	}
}
