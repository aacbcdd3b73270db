package domain

import "github.com/shopspring/decimal"

// Side is the direction of a trade or inquiry.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

// String returns the string representation of Side.
func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide reads a BUY/SELL token from a feed record.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "BUY":
		return Buy, true
	case "SELL":
		return Sell, true
	default:
		return 0, false
	}
}

// Trading books positions accumulate in.
const (
	BookTRSY1 = "TRSY1"
	BookTRSY2 = "TRSY2"
	BookTRSY3 = "TRSY3"
)

// Books lists the trading books in reporting order.
var Books = []string{BookTRSY1, BookTRSY2, BookTRSY3}

// Trade is a booked trade in a particular book.
type Trade struct {
	Product  Bond
	TradeID  string
	Price    decimal.Decimal
	Book     string
	Quantity int64
	Side     Side
}
