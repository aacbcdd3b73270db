package service

import (
	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// MarketDataService caches the latest top-of-book snapshot per product.
type MarketDataService struct {
	fabric.Cache[string, domain.OrderBook]
}

// NewMarketDataService creates an empty market data service.
func NewMarketDataService() *MarketDataService {
	return &MarketDataService{Cache: fabric.NewCache[string, domain.OrderBook]()}
}

// OnMessage ingests an order book from the inbound connector.
func (s *MarketDataService) OnMessage(ob domain.OrderBook) error {
	s.Put(ob.Product.ID(), ob)
	s.Notify(ob)
	return nil
}

// GetBestBidOffer returns the top of both stacks for a product.
func (s *MarketDataService) GetBestBidOffer(productID string) (domain.BidOffer, error) {
	ob, err := s.GetData(productID)
	if err != nil {
		return domain.BidOffer{}, err
	}
	return ob.Best(), nil
}
