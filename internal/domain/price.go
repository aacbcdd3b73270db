package domain

import "github.com/shopspring/decimal"

// Price is an internal mid/spread quote for a product.
// The spread is in absolute price units and must be non-negative.
type Price struct {
	Product        Bond
	Mid            decimal.Decimal
	BidOfferSpread decimal.Decimal
}

// PriceStreamOrder is one side of a streamed two-way market.
// Hidden quantity is twice the visible quantity at all times.
type PriceStreamOrder struct {
	Price           decimal.Decimal
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            PricingSide
}

// PriceStream is a streamed two-way market for a product.
type PriceStream struct {
	Product Bond
	Bid     PriceStreamOrder
	Offer   PriceStreamOrder
}
