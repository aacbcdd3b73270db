package domain

import "github.com/shopspring/decimal"

// PV01 is the dollar value risk of a held quantity of one product.
// The PV01 field is per unit of quantity.
type PV01 struct {
	Product  Bond
	PV01     decimal.Decimal
	Quantity int64
}

// Total is quantity times per-unit PV01.
func (p PV01) Total() decimal.Decimal {
	return p.PV01.Mul(decimal.NewFromInt(p.Quantity))
}

// BucketedSector is a named group of products whose risk is
// aggregated together.
type BucketedSector struct {
	Name     string
	Products []Bond
}

// SectorRisk is the quantity-weighted mean PV01 across a sector.
type SectorRisk struct {
	Sector   BucketedSector
	PV01     decimal.Decimal
	Quantity int64
}
