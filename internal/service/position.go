package service

import (
	"fmt"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// PositionService tracks per-book and aggregate positions. The cache is
// pre-populated with an empty position for every catalog CUSIP, so a
// missing entry on a booked trade is a programming error, not bad input.
type PositionService struct {
	fabric.Cache[string, *domain.Position]
}

// NewPositionService creates a position service seeded from the catalog.
func NewPositionService(catalog *bond.Catalog) *PositionService {
	s := &PositionService{Cache: fabric.NewCache[string, *domain.Position]()}
	for _, cusip := range catalog.CUSIPs() {
		b, err := catalog.Bond(cusip)
		if err != nil {
			panic(fmt.Sprintf("position service: %v", err))
		}
		s.Put(cusip, domain.NewPosition(b))
	}
	return s
}

// AddTrade applies a booked trade to the product's position and notifies
// listeners with the mutated position. Registered on TradeBookingService
// via a bridging listener.
func (s *PositionService) AddTrade(t domain.Trade) error {
	p, err := s.GetData(t.Product.ID())
	if err != nil {
		return fmt.Errorf("position for trade %s: %w", t.TradeID, err)
	}
	p.Add(t.Book, t.Quantity, t.Side)
	s.Notify(p)
	return nil
}

// GetAggregatePosition returns the signed sum across all books for a
// product.
func (s *PositionService) GetAggregatePosition(productID string) (int64, error) {
	p, err := s.GetData(productID)
	if err != nil {
		return 0, err
	}
	return p.Aggregate(), nil
}

// OnMessage replaces a cached position outright. The core graph feeds
// positions through AddTrade; this is the connector-facing ingest point.
func (s *PositionService) OnMessage(p *domain.Position) error {
	s.Put(p.Product.ID(), p)
	s.Notify(p)
	return nil
}
