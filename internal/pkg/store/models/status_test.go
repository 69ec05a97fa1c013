package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw      string
		want     LoanStatus
		category Category
	}{
		{"Active", StatusActive, CategoryActive},
		{"PARTIAL", StatusPartial, CategoryActive},
		{"partial", StatusPartial, CategoryActive},
		{"Overdue", StatusOverdue, CategoryOverdue},
		{" Closed ", StatusClosed, CategoryClosed},
		{"", StatusActive, CategoryActive},
		{"Auctioned", LoanStatus("auctioned"), CategoryAll},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := NormalizeStatus(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.category, got.Category())
		})
	}
}
