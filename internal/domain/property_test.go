package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProperty_Validate(t *testing.T) {
	valid := func() Property {
		return Property{
			Address:       "1420 Oakhurst Ave",
			City:          "Fort Worth",
			State:         "TX",
			ZipCode:       "76111",
			Bedrooms:      3,
			Bathrooms:     decimal.NewFromFloat(2.5),
			SquareFootage: 1650,
			PurchasePrice: decimal.NewFromInt(185000),
			ARV:           decimal.NewFromInt(290000),
			RepairCost:    decimal.NewFromInt(42000),
			Status:        PropertyStatusAnalyzing,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Property)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid property",
			mutate:  func(p *Property) {},
			wantErr: false,
		},
		{
			name:    "empty address",
			mutate:  func(p *Property) { p.Address = "" },
			wantErr: true,
			errMsg:  "address cannot be empty",
		},
		{
			name:    "invalid status",
			mutate:  func(p *Property) { p.Status = PropertyStatus("FLIPPED") },
			wantErr: true,
			errMsg:  "property status must be",
		},
		{
			name:    "negative bedrooms",
			mutate:  func(p *Property) { p.Bedrooms = -1 },
			wantErr: true,
			errMsg:  "bedrooms cannot be negative",
		},
		{
			name:    "negative bathrooms",
			mutate:  func(p *Property) { p.Bathrooms = decimal.NewFromFloat(-0.5) },
			wantErr: true,
			errMsg:  "bathrooms cannot be negative",
		},
		{
			name:    "negative square footage",
			mutate:  func(p *Property) { p.SquareFootage = -100 },
			wantErr: true,
			errMsg:  "square footage cannot be negative",
		},
		{
			name:    "negative purchase price",
			mutate:  func(p *Property) { p.PurchasePrice = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "purchase price cannot be negative",
		},
		{
			name:    "negative ARV",
			mutate:  func(p *Property) { p.ARV = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "ARV cannot be negative",
		},
		{
			name:    "negative repair cost",
			mutate:  func(p *Property) { p.RepairCost = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "repair cost cannot be negative",
		},
		{
			name:    "zero numerics are allowed",
			mutate:  func(p *Property) { p.PurchasePrice = decimal.Zero; p.ARV = decimal.Zero; p.RepairCost = decimal.Zero },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPropertyPatch_Merge(t *testing.T) {
	addr := "100 Main St"
	price1 := decimal.NewFromInt(150000)
	price2 := decimal.NewFromInt(160000)
	status := PropertyStatusOwned

	first := PropertyPatch{Address: &addr, PurchasePrice: &price1}
	second := PropertyPatch{PurchasePrice: &price2, Status: &status}

	merged := first.Merge(second)

	// Later fields win, untouched fields survive
	assert.Equal(t, &addr, merged.Address)
	assert.Equal(t, &price2, merged.PurchasePrice)
	assert.Equal(t, &status, merged.Status)
	assert.Nil(t, merged.City)
}

func TestPropertyPatch_ApplyTo(t *testing.T) {
	p := Property{
		Address:       "1420 Oakhurst Ave",
		PurchasePrice: decimal.NewFromInt(185000),
		Status:        PropertyStatusLead,
	}

	price := decimal.NewFromInt(179000)
	status := PropertyStatusUnderContract
	patch := PropertyPatch{PurchasePrice: &price, Status: &status}

	patch.ApplyTo(&p)

	assert.Equal(t, "1420 Oakhurst Ave", p.Address)
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(179000)))
	assert.Equal(t, PropertyStatusUnderContract, p.Status)
}

func TestPropertyPatch_IsZero(t *testing.T) {
	assert.True(t, PropertyPatch{}.IsZero())

	beds := 4
	assert.False(t, PropertyPatch{Bedrooms: &beds}.IsZero())
}
