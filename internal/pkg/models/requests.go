package models

import (
	"strings"
)

// InterestRateRequest is the body of POST and PUT /interest-rates.
type InterestRateRequest struct {
	MetalType string   `json:"metalType" validate:"required,oneof=gold silver"`
	MinAmount *float64 `json:"minAmount" validate:"required"`
	MaxAmount *float64 `json:"maxAmount" validate:"required"`
	Interest  *float64 `json:"interest" validate:"required"`
}

// JewelRateRequest is the body of POST /jewel-rates. Date accepts RFC 3339
// or YYYY-MM-DD and defaults to the time of the write.
type JewelRateRequest struct {
	MetalType string   `json:"metalType" validate:"required,oneof=gold silver"`
	Rate      *float64 `json:"rate" validate:"required,gt=0"`
	Date      string   `json:"date,omitempty"`
}

// CanonicalMetalType trims and lowercases a metal type.
func CanonicalMetalType(metalType string) string {
	return strings.ToLower(strings.TrimSpace(metalType))
}

func (r *InterestRateRequest) Normalize() {
	r.MetalType = CanonicalMetalType(r.MetalType)
}

func (r *JewelRateRequest) Normalize() {
	r.MetalType = CanonicalMetalType(r.MetalType)
	r.Date = strings.TrimSpace(r.Date)
}
