package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

func TestCalculateFlip_StandardDeal(t *testing.T) {
	in := FlipInput{
		PurchasePrice: decimal.NewFromInt(185000),
		RepairCost:    decimal.NewFromInt(42000),
		ARV:           decimal.NewFromInt(290000),
	}

	m := CalculateFlip(in, domain.DefaultFlipAssumptions())

	// 185000 + 42000 + 5000 closing + 5000 holding
	assert.True(t, m.TotalInvestment.Equal(decimal.NewFromInt(237000)), "total: %s", m.TotalInvestment)
	// 8% of ARV
	assert.True(t, m.SellingCosts.Equal(decimal.NewFromInt(23200)), "selling: %s", m.SellingCosts)
	assert.True(t, m.GrossProfit.Equal(decimal.NewFromInt(53000)), "gross: %s", m.GrossProfit)
	assert.True(t, m.NetProfit.Equal(decimal.NewFromInt(29800)), "net: %s", m.NetProfit)
	// 29800 / 237000 * 100
	assert.True(t, m.ROI.Equal(decimal.RequireFromString("12.57")), "roi: %s", m.ROI)
	// 290000 * 0.70 - 42000
	assert.True(t, m.MaximumAllowableOffer.Equal(decimal.NewFromInt(161000)), "mao: %s", m.MaximumAllowableOffer)
}

func TestCalculateFlip_SeventyPercentRule(t *testing.T) {
	in := FlipInput{
		ARV:        decimal.NewFromInt(300000),
		RepairCost: decimal.NewFromInt(30000),
	}

	m := CalculateFlip(in, domain.FlipAssumptions{})

	assert.True(t, m.MaximumAllowableOffer.Equal(decimal.NewFromInt(180000)),
		"expected 300000*0.7 - 30000 = 180000, got %s", m.MaximumAllowableOffer)
}

func TestCalculateFlip_ZeroInvestmentGuardsROI(t *testing.T) {
	m := CalculateFlip(FlipInput{ARV: decimal.NewFromInt(100000)}, domain.FlipAssumptions{})

	assert.True(t, m.TotalInvestment.IsZero())
	assert.True(t, m.ROI.IsZero(), "ROI must be 0 when total investment is 0, got %s", m.ROI)
}

func TestCalculateFlip_NegativeProfitIsValid(t *testing.T) {
	in := FlipInput{
		PurchasePrice: decimal.NewFromInt(200000),
		RepairCost:    decimal.NewFromInt(50000),
		ARV:           decimal.NewFromInt(200000),
	}

	m := CalculateFlip(in, domain.DefaultFlipAssumptions())

	assert.True(t, m.GrossProfit.Equal(decimal.NewFromInt(-60000)), "gross: %s", m.GrossProfit)
	assert.True(t, m.NetProfit.Equal(decimal.NewFromInt(-76000)), "net: %s", m.NetProfit)
	assert.True(t, m.ROI.Equal(decimal.RequireFromString("-29.23")), "roi: %s", m.ROI)
}

func TestCalculateFlip_Idempotent(t *testing.T) {
	in := FlipInput{
		PurchasePrice: decimal.NewFromInt(150000),
		RepairCost:    decimal.NewFromInt(25000),
		ARV:           decimal.NewFromInt(240000),
	}

	first := CalculateFlip(in, domain.DefaultFlipAssumptions())
	second := CalculateFlip(in, domain.DefaultFlipAssumptions())

	assert.Equal(t, first, second)
}
