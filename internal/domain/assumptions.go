package domain

import "github.com/shopspring/decimal"

// RentalAssumptions is the flat expense/financing configuration a rental
// analysis runs against. Callers start from DefaultRentalAssumptions and
// override per analysis; nothing here is persisted
type RentalAssumptions struct {
	VacancyRate     decimal.Decimal // percent of gross rent
	ManagementRate  decimal.Decimal // percent of gross rent
	MaintenanceRate decimal.Decimal // percent of gross rent
	InsuranceAnnual decimal.Decimal
	TaxAnnual       decimal.Decimal
	HOAMonthly      decimal.Decimal
	LoanAmount      decimal.Decimal
	InterestRate    decimal.Decimal // annual percent
	TermYears       int
}

// DefaultRentalAssumptions returns the standard starting assumptions
func DefaultRentalAssumptions() RentalAssumptions {
	return RentalAssumptions{
		VacancyRate:     decimal.NewFromInt(5),
		ManagementRate:  decimal.NewFromInt(8),
		MaintenanceRate: decimal.NewFromInt(5),
		InsuranceAnnual: decimal.NewFromInt(1200),
		TaxAnnual:       decimal.NewFromInt(2400),
		HOAMonthly:      decimal.Zero,
		LoanAmount:      decimal.Zero,
		InterestRate:    decimal.NewFromInt(7),
		TermYears:       30,
	}
}

// FlipAssumptions holds the fixed-rate cost assumptions for a flip analysis
type FlipAssumptions struct {
	SellingCostRate decimal.Decimal // percent of ARV
	ClosingCosts    decimal.Decimal // flat estimate
	HoldingCosts    decimal.Decimal // flat estimate
}

// DefaultFlipAssumptions returns the standard flip cost assumptions
// (8% of ARV in selling costs, flat closing/holding estimates)
func DefaultFlipAssumptions() FlipAssumptions {
	return FlipAssumptions{
		SellingCostRate: decimal.NewFromInt(8),
		ClosingCosts:    decimal.NewFromInt(5000),
		HoldingCosts:    decimal.NewFromInt(5000),
	}
}
