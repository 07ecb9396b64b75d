// Package analysis computes flip and rental deal metrics for a property.
package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// maoRatio is the "70% rule": offer at most 70% of ARV minus repairs.
	// A fixed industry heuristic, deliberately not configurable
	maoRatio = decimal.NewFromFloat(0.70)
)

// FlipInput holds the deal numbers a flip analysis runs on
type FlipInput struct {
	PurchasePrice decimal.Decimal
	RepairCost    decimal.Decimal
	ARV           decimal.Decimal
}

// FlipMetrics is the computed result of a flip analysis
// Negative profit is a valid, reportable outcome, not an error
type FlipMetrics struct {
	TotalInvestment       decimal.Decimal
	SellingCosts          decimal.Decimal
	GrossProfit           decimal.Decimal
	NetProfit             decimal.Decimal
	ROI                   decimal.Decimal // percent
	MaximumAllowableOffer decimal.Decimal
}

// CalculateFlip derives flip metrics from the deal numbers and cost assumptions
// Logic:
//   - totalInvestment = purchase + repairs + closing + holding
//   - sellingCosts    = ARV * sellingCostRate
//   - grossProfit     = ARV - totalInvestment
//   - netProfit       = grossProfit - sellingCosts
//   - roi             = netProfit / totalInvestment * 100 (0 when investment is 0)
//   - MAO             = ARV * 0.70 - repairs
//
// Pure and total: no side effects, no error conditions
func CalculateFlip(in FlipInput, a domain.FlipAssumptions) FlipMetrics {
	totalInvestment := in.PurchasePrice.
		Add(in.RepairCost).
		Add(a.ClosingCosts).
		Add(a.HoldingCosts)

	sellingCosts := in.ARV.Mul(a.SellingCostRate).Div(hundred).Round(2)
	grossProfit := in.ARV.Sub(totalInvestment)
	netProfit := grossProfit.Sub(sellingCosts)

	roi := decimal.Zero
	if totalInvestment.IsPositive() {
		roi = netProfit.Div(totalInvestment).Mul(hundred).Round(2)
	}

	mao := in.ARV.Mul(maoRatio).Sub(in.RepairCost)

	return FlipMetrics{
		TotalInvestment:       totalInvestment,
		SellingCosts:          sellingCosts,
		GrossProfit:           grossProfit,
		NetProfit:             netProfit,
		ROI:                   roi,
		MaximumAllowableOffer: mao,
	}
}
