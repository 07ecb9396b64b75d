package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/mortgage"
)

var twelve = decimal.NewFromInt(12)

// RentalInput holds the deal numbers a rental analysis runs on
type RentalInput struct {
	MonthlyRent   decimal.Decimal
	PropertyValue decimal.Decimal
	DownPayment   decimal.Decimal
}

// RentalMetrics is the computed result of a rental analysis
// When HasRentalData is false no other field is meaningful: the analysis was
// gated out because monthly rent was not a positive number
type RentalMetrics struct {
	HasRentalData       bool
	MonthlyExpenses     decimal.Decimal
	MonthlyMortgage     decimal.Decimal
	MonthlyCashFlow     decimal.Decimal
	AnnualCashFlow      decimal.Decimal
	CapRate             decimal.Decimal // percent
	CashOnCashReturn    decimal.Decimal // percent
	GrossRentMultiplier decimal.Decimal
}

// CalculateRental derives rental metrics from rent, the property numbers,
// and expense/financing assumptions
// Logic:
//   - monthlyExpenses = rent*(vacancy+management+maintenance)/100
//     + (insurance+tax)/12 + HOA
//   - monthlyMortgage = amortized payment over the assumptions' loan fields
//   - cash flow       = rent - expenses - mortgage (x12 for annual)
//   - capRate         = NOI / propertyValue * 100 (0 when value is 0)
//   - cashOnCash      = annualCashFlow / downPayment * 100 (0 when down is 0)
//   - GRM             = propertyValue / annual rent
//
// Pure and total: division-by-zero cases map to 0, never NaN
func CalculateRental(in RentalInput, a domain.RentalAssumptions) RentalMetrics {
	if !in.MonthlyRent.IsPositive() {
		return RentalMetrics{}
	}

	percentOfRent := a.VacancyRate.Add(a.ManagementRate).Add(a.MaintenanceRate)
	monthlyExpenses := in.MonthlyRent.Mul(percentOfRent).Div(hundred).
		Add(a.InsuranceAnnual.Add(a.TaxAnnual).Div(twelve)).
		Add(a.HOAMonthly).
		Round(2)

	monthlyMortgage := mortgage.MonthlyPayment(a.LoanAmount, a.InterestRate, a.TermYears)

	monthlyCashFlow := in.MonthlyRent.Sub(monthlyExpenses).Sub(monthlyMortgage)
	annualCashFlow := monthlyCashFlow.Mul(twelve)

	capRate := decimal.Zero
	if in.PropertyValue.IsPositive() {
		annualNOI := in.MonthlyRent.Sub(monthlyExpenses).Mul(twelve)
		capRate = annualNOI.Div(in.PropertyValue).Mul(hundred).Round(2)
	}

	cashOnCash := decimal.Zero
	if in.DownPayment.IsPositive() {
		cashOnCash = annualCashFlow.Div(in.DownPayment).Mul(hundred).Round(2)
	}

	grm := in.PropertyValue.Div(in.MonthlyRent.Mul(twelve)).Round(2)

	return RentalMetrics{
		HasRentalData:       true,
		MonthlyExpenses:     monthlyExpenses,
		MonthlyMortgage:     monthlyMortgage,
		MonthlyCashFlow:     monthlyCashFlow,
		AnnualCashFlow:      annualCashFlow,
		CapRate:             capRate,
		CashOnCashReturn:    cashOnCash,
		GrossRentMultiplier: grm,
	}
}
