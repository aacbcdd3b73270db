package service

import (
	"github.com/shopspring/decimal"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// Quotes come back at par.
var parPrice = decimal.NewFromInt(100)

// InquiryService runs the customer inquiry state machine:
//
//	RECEIVED -> quote at par -> QUOTED -> DONE (notified once)
//	anything else            -> REJECTED (notified once)
//
// The quote connector is a pseudo-loopback: quoting a RECEIVED inquiry
// flips it to QUOTED and feeds it back through OnMessage. DONE updates
// are notified by the service itself; the connector ignores them.
type InquiryService struct {
	fabric.Cache[string, domain.Inquiry]
	quotes fabric.Publisher[domain.Inquiry]
}

// NewInquiryService creates an inquiry service with its quote loopback
// attached.
func NewInquiryService() *InquiryService {
	s := &InquiryService{Cache: fabric.NewCache[string, domain.Inquiry]()}
	s.quotes = &QuoteConnector{service: s}
	return s
}

// OnMessage advances the inquiry state machine by one transition.
func (s *InquiryService) OnMessage(inq domain.Inquiry) error {
	switch inq.State {
	case domain.Received:
		inq.Price = parPrice
		return s.SendQuote(inq)
	case domain.Quoted:
		inq.State = domain.Done
		// DONE ack to the client; the connector ignores it
		if err := s.SendQuote(inq); err != nil {
			return err
		}
		return s.OnMessage(inq)
	case domain.Done:
		s.Put(inq.InquiryID, inq)
		s.Notify(inq)
		return nil
	default:
		// unexpected state: reject and notify, never retry, never
		// abort the feed
		s.RejectInquiry(inq)
		return nil
	}
}

// SendQuote sends a quote back to the client through the quote connector.
func (s *InquiryService) SendQuote(inq domain.Inquiry) error {
	return s.quotes.Publish(inq)
}

// RejectInquiry marks an inquiry rejected and notifies listeners. Not
// retried.
func (s *InquiryService) RejectInquiry(inq domain.Inquiry) {
	inq.State = domain.Rejected
	s.Put(inq.InquiryID, inq)
	s.Notify(inq)
}

// QuoteConnector simulates the client round trip: a RECEIVED inquiry
// comes back QUOTED through a second OnMessage pass; DONE updates are a
// no-op.
type QuoteConnector struct {
	service *InquiryService
}

// Publish handles one leg of the quote round trip.
func (c *QuoteConnector) Publish(inq domain.Inquiry) error {
	if inq.State != domain.Received {
		return nil
	}
	inq.State = domain.Quoted
	return c.service.OnMessage(inq)
}
