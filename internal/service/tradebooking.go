package service

import (
	"strconv"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// TradeBookingService books trades from the inbound connector and from
// the execution bridge. Keyed on trade id.
type TradeBookingService struct {
	fabric.Cache[string, domain.Trade]
}

// NewTradeBookingService creates an empty booking service.
func NewTradeBookingService() *TradeBookingService {
	return &TradeBookingService{Cache: fabric.NewCache[string, domain.Trade]()}
}

// BookTrade books a trade into its book and notifies listeners.
func (s *TradeBookingService) BookTrade(t domain.Trade) {
	s.Put(t.TradeID, t)
	s.Notify(t)
}

// OnMessage ingests a trade from the inbound connector.
func (s *TradeBookingService) OnMessage(t domain.Trade) error {
	s.BookTrade(t)
	return nil
}

// ExecutionBridge synthesizes a trade from every execution and books it,
// cycling through the books TRSY2, TRSY3, TRSY1. Execution-originated
// trade ids are the numeric order ids, which cannot collide with inbound
// trade ids.
type ExecutionBridge struct {
	fabric.NopListener[domain.ExecutionOrder]
	booking *TradeBookingService
	count   int64
}

// NewExecutionBridge creates a bridge into the given booking service.
func NewExecutionBridge(booking *TradeBookingService) *ExecutionBridge {
	return &ExecutionBridge{booking: booking}
}

// OnAdd books one trade per execution.
func (b *ExecutionBridge) OnAdd(e domain.ExecutionOrder) {
	b.count++
	side := domain.Sell
	if e.Side == domain.Bid {
		side = domain.Buy
	}
	trade := domain.Trade{
		Product:  e.Product,
		TradeID:  e.OrderID,
		Price:    e.Price,
		Book:     "TRSY" + strconv.FormatInt(1+b.count%3, 10),
		Quantity: e.VisibleQuantity,
		Side:     side,
	}
	b.booking.BookTrade(trade)
}
