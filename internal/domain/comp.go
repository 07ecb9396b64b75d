package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comp represents a comparable sale used to estimate a subject property's ARV
// Comps are input-only: the estimator reads them, nothing mutates them
type Comp struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	Address       string
	SoldPrice     decimal.Decimal
	SquareFootage int
	SoldDate      time.Time
	DistanceMiles decimal.Decimal
}

// Validate ensures the comp adheres to domain rules
func (c *Comp) Validate() error {
	if c.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: comp must reference a property", ErrInvalid)
	}
	if c.SoldPrice.IsNegative() {
		return fmt.Errorf("%w: sold price cannot be negative", ErrInvalid)
	}
	if c.SquareFootage < 0 {
		return fmt.Errorf("%w: square footage cannot be negative", ErrInvalid)
	}
	if c.DistanceMiles.IsNegative() {
		return fmt.Errorf("%w: distance cannot be negative", ErrInvalid)
	}
	return nil
}
