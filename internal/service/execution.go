package service

import (
	"strconv"

	"github.com/shopspring/decimal"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// Only aggress when the book is at the minimum tradable tick.
var maxAggressSpread = decimal.NewFromInt(1).Div(decimal.NewFromInt(128))

// AlgoExecutionService crosses the spread when it is at its tightest,
// alternating the aggressing side to balance flow.
type AlgoExecutionService struct {
	fabric.Cache[string, domain.ExecutionOrder]
	count int64
}

// NewAlgoExecutionService creates the execution algo with its order
// counter at zero.
func NewAlgoExecutionService() *AlgoExecutionService {
	return &AlgoExecutionService{Cache: fabric.NewCache[string, domain.ExecutionOrder]()}
}

// Execute decides whether to aggress against a book. Books with a spread
// above 1/128 are dropped without emitting. Registered on
// MarketDataService via a bridging listener.
func (s *AlgoExecutionService) Execute(ob domain.OrderBook) {
	s.count++
	side := domain.Offer
	if s.count%2 == 1 {
		side = domain.Bid
	}
	if ob.Spread().GreaterThan(maxAggressSpread) {
		return
	}

	best := ob.Best()
	price := best.Bid.Price
	quantity := best.Offer.Quantity
	if side == domain.Offer {
		price = best.Offer.Price
		quantity = best.Bid.Quantity
	}

	orderID := strconv.FormatInt(s.count, 10)
	order := domain.ExecutionOrder{
		Product:         ob.Product,
		Side:            side,
		OrderID:         orderID,
		Type:            domain.MarketOrder,
		Price:           price,
		VisibleQuantity: quantity,
		HiddenQuantity:  quantity,
		ParentOrderID:   orderID,
		IsChild:         false,
	}
	s.Put(ob.Product.ID(), order)
	s.Notify(order)
}

// OnMessage satisfies the service contract; orders are produced by
// Execute, not ingested.
func (s *AlgoExecutionService) OnMessage(o domain.ExecutionOrder) error {
	s.Put(o.Product.ID(), o)
	s.Notify(o)
	return nil
}

// ExecutionService forwards execution orders to its listeners: the
// historical sink and the trade booking bridge.
type ExecutionService struct {
	fabric.Cache[string, domain.ExecutionOrder]
}

// NewExecutionService creates an empty execution service.
func NewExecutionService() *ExecutionService {
	return &ExecutionService{Cache: fabric.NewCache[string, domain.ExecutionOrder]()}
}

// ExecuteOrder routes an order to a market and notifies listeners. The
// market is not transmitted downstream.
func (s *ExecutionService) ExecuteOrder(o domain.ExecutionOrder, _ domain.Market) {
	s.Put(o.Product.ID(), o)
	s.Notify(o)
}

// OnMessage ingests an order the same way ExecuteOrder does.
func (s *ExecutionService) OnMessage(o domain.ExecutionOrder) error {
	s.ExecuteOrder(o, domain.CME)
	return nil
}
