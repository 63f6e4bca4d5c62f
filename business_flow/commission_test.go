package businessflow

import (
	"testing"

	"github.com/adwave/asp-platform/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name       string
		program    *models.Program
		saleAmount string
		expected   string
	}{
		{
			name: "cpa program pays the flat amount",
			program: &models.Program{
				CommissionType:   models.CommissionTypeCPA,
				CommissionAmount: decPtr("500"),
			},
			saleAmount: "0",
			expected:   "500",
		},
		{
			name: "cpa flat amount ignores the sale amount",
			program: &models.Program{
				CommissionType:   models.CommissionTypeCPA,
				CommissionAmount: decPtr("500"),
			},
			saleAmount: "12345.67",
			expected:   "500",
		},
		{
			name: "rate applies to a positive sale",
			program: &models.Program{
				CommissionType: models.CommissionTypeHybrid,
				CommissionRate: decPtr("5"),
			},
			saleAmount: "10000",
			expected:   "500",
		},
		{
			name: "rate result rounds to 2 decimal places",
			program: &models.Program{
				CommissionType: models.CommissionTypeHybrid,
				CommissionRate: decPtr("3.5"),
			},
			saleAmount: "999.99",
			expected:   "35",
		},
		{
			name: "rate with zero sale falls back to the flat amount",
			program: &models.Program{
				CommissionType:   models.CommissionTypeHybrid,
				CommissionRate:   decPtr("5"),
				CommissionAmount: decPtr("300"),
			},
			saleAmount: "0",
			expected:   "300",
		},
		{
			name: "cpa program without amount falls through to the rate",
			program: &models.Program{
				CommissionType: models.CommissionTypeCPA,
				CommissionRate: decPtr("10"),
			},
			saleAmount: "2500",
			expected:   "250",
		},
		{
			name: "no rate and no amount pays zero",
			program: &models.Program{
				CommissionType: models.CommissionTypeHybrid,
			},
			saleAmount: "10000",
			expected:   "0",
		},
		{
			name: "negative configured amount clamps to zero",
			program: &models.Program{
				CommissionType:   models.CommissionTypeCPA,
				CommissionAmount: decPtr("-100"),
			},
			saleAmount: "0",
			expected:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := decimal.RequireFromString(tt.saleAmount)
			got := CalculateCommission(tt.program, sale)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got.String())
		})
	}
}

func TestCalculateCommissionNilProgram(t *testing.T) {
	got := CalculateCommission(nil, decimal.NewFromInt(1000))
	assert.True(t, got.IsZero())
}
