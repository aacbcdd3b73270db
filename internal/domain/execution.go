package domain

import "github.com/shopspring/decimal"

// OrderType is the execution order type.
type OrderType int

const (
	FOK OrderType = iota + 1
	IOC
	MarketOrder
	Limit
	Stop
)

// String returns the string representation of OrderType.
func (t OrderType) String() string {
	switch t {
	case FOK:
		return "FOK"
	case IOC:
		return "IOC"
	case MarketOrder:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case Stop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Market is the venue an order is routed to. It is carried on the
// ExecuteOrder entry point but not transmitted downstream.
type Market int

const (
	BrokerTec Market = iota + 1
	ESpeed
	CME
)

// ExecutionOrder is an order that can be placed on an exchange.
type ExecutionOrder struct {
	Product         Bond
	Side            PricingSide
	OrderID         string
	Type            OrderType
	Price           decimal.Decimal
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChild         bool
}
