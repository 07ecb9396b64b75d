package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

func TestCalculateRental_GatedWithoutRent(t *testing.T) {
	for _, rent := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		m := CalculateRental(RentalInput{
			MonthlyRent:   rent,
			PropertyValue: decimal.NewFromInt(200000),
			DownPayment:   decimal.NewFromInt(40000),
		}, domain.DefaultRentalAssumptions())

		assert.False(t, m.HasRentalData)
		assert.True(t, m.MonthlyExpenses.IsZero())
		assert.True(t, m.MonthlyCashFlow.IsZero())
		assert.True(t, m.CapRate.IsZero())
		assert.True(t, m.CashOnCashReturn.IsZero())
		assert.True(t, m.GrossRentMultiplier.IsZero())
	}
}

func TestCalculateRental_StandardDeal(t *testing.T) {
	a := domain.DefaultRentalAssumptions()
	a.LoanAmount = decimal.NewFromInt(160000)

	m := CalculateRental(RentalInput{
		MonthlyRent:   decimal.NewFromInt(1800),
		PropertyValue: decimal.NewFromInt(200000),
		DownPayment:   decimal.NewFromInt(40000),
	}, a)

	assert.True(t, m.HasRentalData)
	// 18% of rent (324) + (1200+2400)/12 (300) + 0 HOA
	assert.True(t, m.MonthlyExpenses.Equal(decimal.NewFromInt(624)), "expenses: %s", m.MonthlyExpenses)
	// 160000 at 7% over 30 years
	assert.True(t, m.MonthlyMortgage.Equal(decimal.RequireFromString("1064.48")), "mortgage: %s", m.MonthlyMortgage)
	assert.True(t, m.MonthlyCashFlow.Equal(decimal.RequireFromString("111.52")), "cash flow: %s", m.MonthlyCashFlow)
	assert.True(t, m.AnnualCashFlow.Equal(decimal.RequireFromString("1338.24")), "annual: %s", m.AnnualCashFlow)
	// (1800-624)*12 / 200000 * 100
	assert.True(t, m.CapRate.Equal(decimal.RequireFromString("7.06")), "cap rate: %s", m.CapRate)
	// 1338.24 / 40000 * 100
	assert.True(t, m.CashOnCashReturn.Equal(decimal.RequireFromString("3.35")), "coc: %s", m.CashOnCashReturn)
	// 200000 / 21600
	assert.True(t, m.GrossRentMultiplier.Equal(decimal.RequireFromString("9.26")), "grm: %s", m.GrossRentMultiplier)
}

func TestCalculateRental_DivisionGuards(t *testing.T) {
	a := domain.DefaultRentalAssumptions()

	m := CalculateRental(RentalInput{
		MonthlyRent:   decimal.NewFromInt(1500),
		PropertyValue: decimal.Zero,
		DownPayment:   decimal.Zero,
	}, a)

	assert.True(t, m.HasRentalData)
	assert.True(t, m.CapRate.IsZero(), "cap rate must be 0 without a property value")
	assert.True(t, m.CashOnCashReturn.IsZero(), "CoC must be 0 without a down payment")
	assert.True(t, m.GrossRentMultiplier.IsZero())
}

func TestCalculateRental_Idempotent(t *testing.T) {
	in := RentalInput{
		MonthlyRent:   decimal.NewFromInt(2100),
		PropertyValue: decimal.NewFromInt(250000),
		DownPayment:   decimal.NewFromInt(50000),
	}
	a := domain.DefaultRentalAssumptions()
	a.LoanAmount = decimal.NewFromInt(200000)

	assert.Equal(t, CalculateRental(in, a), CalculateRental(in, a))
}
