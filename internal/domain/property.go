package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyStatus represents where a property sits in the acquisition pipeline
type PropertyStatus string

const (
	PropertyStatusLead          PropertyStatus = "LEAD"
	PropertyStatusAnalyzing     PropertyStatus = "ANALYZING"
	PropertyStatusUnderContract PropertyStatus = "UNDER_CONTRACT"
	PropertyStatusOwned         PropertyStatus = "OWNED"
	PropertyStatusSold          PropertyStatus = "SOLD"
)

// Property represents a subject property in the domain layer
type Property struct {
	ID            uuid.UUID
	Address       string
	City          string
	State         string
	ZipCode       string
	Bedrooms      int
	Bathrooms     decimal.Decimal // Half baths are common (e.g. 2.5)
	SquareFootage int
	PurchasePrice decimal.Decimal
	ARV           decimal.Decimal // After-Repair Value; zero means "not yet estimated"
	RepairCost    decimal.Decimal
	Status        PropertyStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate ensures the property adheres to domain rules
// Returns an error if validation fails
func (p *Property) Validate() error {
	if p.Address == "" {
		return fmt.Errorf("%w: property address cannot be empty", ErrInvalid)
	}

	switch p.Status {
	case PropertyStatusLead, PropertyStatusAnalyzing, PropertyStatusUnderContract,
		PropertyStatusOwned, PropertyStatusSold:
	default:
		return fmt.Errorf("%w: property status must be LEAD, ANALYZING, UNDER_CONTRACT, OWNED, or SOLD", ErrInvalid)
	}

	if p.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms cannot be negative", ErrInvalid)
	}
	if p.Bathrooms.IsNegative() {
		return fmt.Errorf("%w: bathrooms cannot be negative", ErrInvalid)
	}
	if p.SquareFootage < 0 {
		return fmt.Errorf("%w: square footage cannot be negative", ErrInvalid)
	}
	if p.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase price cannot be negative", ErrInvalid)
	}
	if p.ARV.IsNegative() {
		return fmt.Errorf("%w: ARV cannot be negative", ErrInvalid)
	}
	if p.RepairCost.IsNegative() {
		return fmt.Errorf("%w: repair cost cannot be negative", ErrInvalid)
	}

	return nil
}

// PropertyPatch represents a partial update to a property
// Nil fields are left untouched
type PropertyPatch struct {
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	Bedrooms      *int
	Bathrooms     *decimal.Decimal
	SquareFootage *int
	PurchasePrice *decimal.Decimal
	ARV           *decimal.Decimal
	RepairCost    *decimal.Decimal
	Status        *PropertyStatus
}

// IsZero reports whether the patch carries no changes
func (pp PropertyPatch) IsZero() bool {
	return pp.Address == nil && pp.City == nil && pp.State == nil && pp.ZipCode == nil &&
		pp.Bedrooms == nil && pp.Bathrooms == nil && pp.SquareFootage == nil &&
		pp.PurchasePrice == nil && pp.ARV == nil && pp.RepairCost == nil && pp.Status == nil
}

// Merge overlays other on top of pp: fields set in other win
func (pp PropertyPatch) Merge(other PropertyPatch) PropertyPatch {
	out := pp
	if other.Address != nil {
		out.Address = other.Address
	}
	if other.City != nil {
		out.City = other.City
	}
	if other.State != nil {
		out.State = other.State
	}
	if other.ZipCode != nil {
		out.ZipCode = other.ZipCode
	}
	if other.Bedrooms != nil {
		out.Bedrooms = other.Bedrooms
	}
	if other.Bathrooms != nil {
		out.Bathrooms = other.Bathrooms
	}
	if other.SquareFootage != nil {
		out.SquareFootage = other.SquareFootage
	}
	if other.PurchasePrice != nil {
		out.PurchasePrice = other.PurchasePrice
	}
	if other.ARV != nil {
		out.ARV = other.ARV
	}
	if other.RepairCost != nil {
		out.RepairCost = other.RepairCost
	}
	if other.Status != nil {
		out.Status = other.Status
	}
	return out
}

// ApplyTo mutates p with the fields set in the patch
func (pp PropertyPatch) ApplyTo(p *Property) {
	if pp.Address != nil {
		p.Address = *pp.Address
	}
	if pp.City != nil {
		p.City = *pp.City
	}
	if pp.State != nil {
		p.State = *pp.State
	}
	if pp.ZipCode != nil {
		p.ZipCode = *pp.ZipCode
	}
	if pp.Bedrooms != nil {
		p.Bedrooms = *pp.Bedrooms
	}
	if pp.Bathrooms != nil {
		p.Bathrooms = *pp.Bathrooms
	}
	if pp.SquareFootage != nil {
		p.SquareFootage = *pp.SquareFootage
	}
	if pp.PurchasePrice != nil {
		p.PurchasePrice = *pp.PurchasePrice
	}
	if pp.ARV != nil {
		p.ARV = *pp.ARV
	}
	if pp.RepairCost != nil {
		p.RepairCost = *pp.RepairCost
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
}
