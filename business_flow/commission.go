package businessflow

import (
	"github.com/adwave/asp-platform/models"
	"github.com/shopspring/decimal"
)

var percentDivisor = decimal.NewFromInt(100)

// CalculateCommission computes the commission for one conversion.
// Branch order is fixed:
//  1. CPA program with a configured amount pays the flat amount.
//  2. A configured rate with a positive sale amount pays sale * rate / 100.
//  3. Otherwise the flat amount if configured, else zero.
//
// The result is rounded to 2 decimal places and is never negative.
func CalculateCommission(program *models.Program, saleAmount decimal.Decimal) decimal.Decimal {
	if program == nil {
		return decimal.Zero
	}

	var commission decimal.Decimal
	switch {
	case program.CommissionType == models.CommissionTypeCPA && program.CommissionAmount != nil:
		commission = *program.CommissionAmount
	case program.CommissionRate != nil && saleAmount.IsPositive():
		commission = saleAmount.Mul(*program.CommissionRate).Div(percentDivisor)
	case program.CommissionAmount != nil:
		commission = *program.CommissionAmount
	default:
		return decimal.Zero
	}

	commission = commission.Round(2)
	if commission.IsNegative() {
		return decimal.Zero
	}
	return commission
}
