package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// RiskService converts position updates into PV01 risk, per CUSIP and
// bucketed by sector.
type RiskService struct {
	fabric.Cache[string, domain.PV01]
	catalog *bond.Catalog
}

// NewRiskService creates a risk service over the given catalog.
func NewRiskService(catalog *bond.Catalog) *RiskService {
	return &RiskService{
		Cache:   fabric.NewCache[string, domain.PV01](),
		catalog: catalog,
	}
}

// AddPosition prices the aggregate position of a product and notifies
// listeners. Registered on PositionService via a bridging listener.
func (s *RiskService) AddPosition(p *domain.Position) error {
	perUnit, err := s.catalog.PV01(p.Product.ID())
	if err != nil {
		return fmt.Errorf("risk for %s: %w", p.Product.ID(), err)
	}
	pv01 := domain.PV01{
		Product:  p.Product,
		PV01:     perUnit,
		Quantity: p.Aggregate(),
	}
	s.Put(p.Product.ID(), pv01)
	s.Notify(pv01)
	return nil
}

// OnMessage ingests a PV01 record directly.
func (s *RiskService) OnMessage(pv domain.PV01) error {
	s.Put(pv.Product.ID(), pv)
	s.Notify(pv)
	return nil
}

// GetBucketedRisk aggregates a sector by quantity-weighted mean PV01.
// Products with no cached risk contribute zero quantity; a sector with
// zero total quantity reports zero PV01.
func (s *RiskService) GetBucketedRisk(sector domain.BucketedSector) domain.SectorRisk {
	var totalQty int64
	weighted := decimal.Zero
	for _, product := range sector.Products {
		pv01, err := s.GetData(product.ID())
		if err != nil {
			continue
		}
		totalQty += pv01.Quantity
		weighted = weighted.Add(pv01.PV01.Mul(decimal.NewFromInt(pv01.Quantity)))
	}

	risk := domain.SectorRisk{Sector: sector, Quantity: totalQty}
	if totalQty != 0 {
		risk.PV01 = weighted.Div(decimal.NewFromInt(totalQty))
	}
	return risk
}
