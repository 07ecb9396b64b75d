// Package arv estimates a property's after-repair value from comparable sales.
package arv

import (
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

// Basis describes what an estimate's value represents
type Basis string

const (
	// BasisPricePerSquareFoot: Value is a dollars-per-sqft figure to be
	// multiplied by the subject property's own square footage
	BasisPricePerSquareFoot Basis = "PRICE_PER_SQFT"

	// BasisSalePrice: no comp carried usable square footage, Value is a
	// flat average of raw sold prices
	BasisSalePrice Basis = "SALE_PRICE"
)

// Estimate is a comp-derived value estimate. A nil *Estimate means no comp
// carried a usable price: "no estimate available", never a misleading $0
type Estimate struct {
	Value      decimal.Decimal
	Basis      Basis
	SampleSize int
}

// FromComps derives an estimate from a list of comparable sales
// Logic:
//  1. Comps with both a positive sold price and positive square footage
//     contribute price/sqft ratios; if any exist, return their arithmetic
//     mean rounded to the nearest whole dollar per sqft
//  2. Otherwise, fall back to the mean raw sold price across comps with a
//     positive price
//  3. No usable prices at all (or an empty list): return nil
func FromComps(comps []*domain.Comp) *Estimate {
	var perSqFt []decimal.Decimal
	var prices []decimal.Decimal

	for _, c := range comps {
		if c == nil || !c.SoldPrice.IsPositive() {
			continue
		}
		prices = append(prices, c.SoldPrice)
		if c.SquareFootage > 0 {
			ratio := c.SoldPrice.Div(decimal.NewFromInt(int64(c.SquareFootage)))
			perSqFt = append(perSqFt, ratio)
		}
	}

	if len(perSqFt) > 0 {
		return &Estimate{
			Value:      mean(perSqFt).Round(0),
			Basis:      BasisPricePerSquareFoot,
			SampleSize: len(perSqFt),
		}
	}

	if len(prices) > 0 {
		return &Estimate{
			Value:      mean(prices).Round(2),
			Basis:      BasisSalePrice,
			SampleSize: len(prices),
		}
	}

	return nil
}

// ProjectedValue resolves the estimate against the subject property:
// per-sqft estimates are scaled by the subject's square footage, flat
// sale-price estimates are returned as-is
func (e *Estimate) ProjectedValue(subjectSquareFootage int) decimal.Decimal {
	if e.Basis == BasisPricePerSquareFoot {
		if subjectSquareFootage <= 0 {
			return decimal.Zero
		}
		return e.Value.Mul(decimal.NewFromInt(int64(subjectSquareFootage)))
	}
	return e.Value
}

func mean(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}
