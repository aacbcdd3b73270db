// Package service implements the domain services wired into the dataflow
// fabric: pricing, streaming, GUI throttling, market data, execution,
// trade booking, positions, risk, inquiries and historical persistence.
//
// Every service runs on the single pipeline goroutine. OnMessage on any
// service completes the entire transitive downstream propagation before
// returning.
package service

import (
	"fmt"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// PricingService caches the latest mid/spread quote per product and fans
// it out to the GUI and algo streaming edges.
type PricingService struct {
	fabric.Cache[string, domain.Price]
}

// NewPricingService creates an empty pricing service.
func NewPricingService() *PricingService {
	return &PricingService{Cache: fabric.NewCache[string, domain.Price]()}
}

// OnMessage ingests a price from the inbound connector.
func (s *PricingService) OnMessage(p domain.Price) error {
	if p.BidOfferSpread.IsNegative() {
		return fmt.Errorf("price for %s: %w", p.Product.ID(), domain.ErrNegativeSpread)
	}
	s.Put(p.Product.ID(), p)
	s.Notify(p)
	return nil
}
