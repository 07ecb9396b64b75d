// Package mortgage computes fixed monthly principal-and-interest payments.
package mortgage

import "github.com/shopspring/decimal"

var (
	one          = decimal.NewFromInt(1)
	monthsInYear = decimal.NewFromInt(12)
)

// MonthlyPayment returns the fixed monthly principal-and-interest payment for
// a loan, rounded to cents
// Logic:
//   - loanAmount <= 0 or termYears <= 0: no loan, payment is 0
//   - annualRatePercent <= 0: straight-line, loanAmount / (termYears * 12)
//   - otherwise the standard amortization formula:
//     payment = L * i * (1+i)^n / ((1+i)^n - 1), i = rate/100/12, n = termYears*12
//
// Pure and total: every input maps to a defined result, no errors
func MonthlyPayment(loanAmount, annualRatePercent decimal.Decimal, termYears int) decimal.Decimal {
	if loanAmount.LessThanOrEqual(decimal.Zero) || termYears <= 0 {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(termYears)).Mul(monthsInYear)

	if annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return loanAmount.Div(months).Round(2)
	}

	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(100)).Div(monthsInYear)
	growth := one.Add(monthlyRate).Pow(months)

	payment := loanAmount.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one))
	return payment.Round(2)
}
