package domain

import "github.com/shopspring/decimal"

// PricingSide is the side of a passive market data order.
type PricingSide int

const (
	Bid PricingSide = iota + 1
	Offer
)

// String returns the string representation of PricingSide.
func (s PricingSide) String() string {
	switch s {
	case Bid:
		return "BID"
	case Offer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// Order is a market data order with price, quantity and side.
type Order struct {
	Price    decimal.Decimal
	Quantity int64
	Side     PricingSide
}

// BidOffer pairs the best bid with the best offer.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// OrderBook holds the bid and offer stacks for a product.
// Index 0 of each stack is the best level.
type OrderBook struct {
	Product Bond
	Bids    []Order
	Offers  []Order
}

// Spread is best offer price minus best bid price.
func (ob OrderBook) Spread() decimal.Decimal {
	return ob.Offers[0].Price.Sub(ob.Bids[0].Price)
}

// Best returns the top of both stacks.
func (ob OrderBook) Best() BidOffer {
	return BidOffer{Bid: ob.Bids[0], Offer: ob.Offers[0]}
}
