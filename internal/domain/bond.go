package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IdentifierKind tells which scheme a product identifier belongs to.
type IdentifierKind int

const (
	IdentifierCUSIP IdentifierKind = iota + 1
	IdentifierISIN
)

// String returns the string representation of IdentifierKind.
func (k IdentifierKind) String() string {
	switch k {
	case IdentifierCUSIP:
		return "CUSIP"
	case IdentifierISIN:
		return "ISIN"
	default:
		return "UNKNOWN"
	}
}

// Bond is a fixed income product. Immutable after catalog load.
type Bond struct {
	CUSIP    string
	IDKind   IdentifierKind
	Ticker   string
	Coupon   decimal.Decimal // annual rate, e.g. 0.00125 for 0.125%
	Maturity time.Time
}

// ID returns the product identifier services key their caches on.
func (b Bond) ID() string {
	return b.CUSIP
}
