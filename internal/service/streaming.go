package service

import (
	"github.com/shopspring/decimal"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

var decimalTwo = decimal.NewFromInt(2)

// AlgoStreamingService turns prices into two-way price streams. Visible
// sizes alternate 2mm/1mm on subsequent updates; hidden size is twice the
// visible size at all times.
type AlgoStreamingService struct {
	fabric.Cache[string, domain.PriceStream]
	count int
}

// NewAlgoStreamingService creates the streaming algo with the counter at
// its initial state (first update streams 2mm visible).
func NewAlgoStreamingService() *AlgoStreamingService {
	return &AlgoStreamingService{Cache: fabric.NewCache[string, domain.PriceStream]()}
}

// PublishPrice builds a PriceStream around the mid and notifies listeners.
// Registered on PricingService via a bridging listener.
func (s *AlgoStreamingService) PublishPrice(p domain.Price) {
	half := p.BidOfferSpread.Div(decimalTwo)
	visible := int64(1_000_000)
	if s.count == 0 {
		visible = 2_000_000
	}
	s.count = 1 - s.count

	stream := domain.PriceStream{
		Product: p.Product,
		Bid: domain.PriceStreamOrder{
			Price:           p.Mid.Sub(half),
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
			Side:            domain.Bid,
		},
		Offer: domain.PriceStreamOrder{
			Price:           p.Mid.Add(half),
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
			Side:            domain.Offer,
		},
	}
	s.Put(p.Product.ID(), stream)
	s.Notify(stream)
}

// OnMessage satisfies the service contract; streams are produced by
// PublishPrice, not ingested.
func (s *AlgoStreamingService) OnMessage(ps domain.PriceStream) error {
	s.Put(ps.Product.ID(), ps)
	s.Notify(ps)
	return nil
}

// StreamingService forwards price streams to its listeners. It is a pure
// fan-out node decoupling algo generation from historical persistence and
// any future distribution.
type StreamingService struct {
	fabric.Cache[string, domain.PriceStream]
}

// NewStreamingService creates an empty streaming service.
func NewStreamingService() *StreamingService {
	return &StreamingService{Cache: fabric.NewCache[string, domain.PriceStream]()}
}

// PublishPrice forwards a two-way price to the listeners.
func (s *StreamingService) PublishPrice(ps domain.PriceStream) {
	s.Put(ps.Product.ID(), ps)
	s.Notify(ps)
}

// OnMessage ingests a stream the same way PublishPrice does.
func (s *StreamingService) OnMessage(ps domain.PriceStream) error {
	s.PublishPrice(ps)
	return nil
}
