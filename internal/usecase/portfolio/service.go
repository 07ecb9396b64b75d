package portfolio

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/analysis"
)

// Summary aggregates deal numbers across every tracked property
type Summary struct {
	TotalProperties    int
	ByStatus           map[domain.PropertyStatus]int
	TotalPurchasePrice decimal.Decimal
	TotalRepairCost    decimal.Decimal

	// ProjectedNetProfit sums flip net profit (default assumptions) over the
	// AnalyzedProperties: those carrying their own positive ARV. Properties
	// without one are counted but excluded from the projection
	ProjectedNetProfit decimal.Decimal
	AnalyzedProperties int
}

// Service computes portfolio-level aggregates
type Service struct {
	PropertyRepo domain.PropertyRepository
}

// NewService creates a new portfolio Service instance
func NewService(propertyRepo domain.PropertyRepository) *Service {
	return &Service{PropertyRepo: propertyRepo}
}

// GetSummary aggregates across all properties
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	properties, err := s.PropertyRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	summary := &Summary{
		ByStatus:           make(map[domain.PropertyStatus]int),
		TotalPurchasePrice: decimal.Zero,
		TotalRepairCost:    decimal.Zero,
		ProjectedNetProfit: decimal.Zero,
	}

	assumptions := domain.DefaultFlipAssumptions()

	for _, p := range properties {
		summary.TotalProperties++
		summary.ByStatus[p.Status]++
		summary.TotalPurchasePrice = summary.TotalPurchasePrice.Add(p.PurchasePrice)
		summary.TotalRepairCost = summary.TotalRepairCost.Add(p.RepairCost)

		if p.ARV.IsPositive() {
			metrics := analysis.CalculateFlip(analysis.FlipInput{
				PurchasePrice: p.PurchasePrice,
				RepairCost:    p.RepairCost,
				ARV:           p.ARV,
			}, assumptions)
			summary.ProjectedNetProfit = summary.ProjectedNetProfit.Add(metrics.NetProfit)
			summary.AnalyzedProperties++
		}
	}

	return summary, nil
}
