package domain

import "github.com/shopspring/decimal"

// InquiryState is the lifecycle state of a customer inquiry.
type InquiryState int

const (
	Received InquiryState = iota + 1
	Quoted
	Done
	Rejected
	CustomerRejected
)

// String returns the string representation of InquiryState.
func (s InquiryState) String() string {
	switch s {
	case Received:
		return "RECEIVED"
	case Quoted:
		return "QUOTED"
	case Done:
		return "DONE"
	case Rejected:
		return "REJECTED"
	case CustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions are possible.
func (s InquiryState) Terminal() bool {
	return s == Done || s == Rejected || s == CustomerRejected
}

// Inquiry is a customer inquiry working through the quote lifecycle.
// Keyed on inquiry id, not product id: each inquiry is unique.
type Inquiry struct {
	InquiryID string
	Product   Bond
	Side      Side
	Quantity  int64
	Price     decimal.Decimal
	State     InquiryState
}
