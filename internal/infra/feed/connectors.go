package feed

import (
	"time"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
)

// Handler is the ingest half of a service, as seen from a connector.
type Handler[V any] interface {
	OnMessage(v V) error
}

// InboundConnector pairs a subscriber with a record parser and the
// service it feeds.
type InboundConnector[V any] struct {
	sub     *Subscriber
	parse   func(*bond.Catalog, string) (V, error)
	catalog *bond.Catalog
	service Handler[V]
}

// NewPriceConnector feeds the pricing service from the prices feed.
func NewPriceConnector(sub *Subscriber, catalog *bond.Catalog, svc Handler[domain.Price]) *InboundConnector[domain.Price] {
	return &InboundConnector[domain.Price]{sub: sub, parse: ParsePrice, catalog: catalog, service: svc}
}

// NewTradeConnector feeds the booking service from the trades feed.
func NewTradeConnector(sub *Subscriber, catalog *bond.Catalog, svc Handler[domain.Trade]) *InboundConnector[domain.Trade] {
	return &InboundConnector[domain.Trade]{sub: sub, parse: ParseTrade, catalog: catalog, service: svc}
}

// NewMarketDataConnector feeds the market data service from the
// marketdata feed.
func NewMarketDataConnector(sub *Subscriber, catalog *bond.Catalog, svc Handler[domain.OrderBook]) *InboundConnector[domain.OrderBook] {
	return &InboundConnector[domain.OrderBook]{sub: sub, parse: ParseOrderBook, catalog: catalog, service: svc}
}

// NewInquiryConnector feeds the inquiry service from the inquiries feed.
func NewInquiryConnector(sub *Subscriber, catalog *bond.Catalog, svc Handler[domain.Inquiry]) *InboundConnector[domain.Inquiry] {
	return &InboundConnector[domain.Inquiry]{sub: sub, parse: ParseInquiry, catalog: catalog, service: svc}
}

// Subscribe drives the feed to EOF, pushing one OnMessage per record.
// The full downstream propagation of each record completes before the
// next one is requested.
func (c *InboundConnector[V]) Subscribe() error {
	defer c.sub.Close()
	return c.sub.Run(func(line string) error {
		v, err := c.parse(c.catalog, line)
		if err != nil {
			return err
		}
		return c.service.OnMessage(v)
	})
}

// OutboundConnector formats entities onto an acknowledged line feed,
// stamping each with the wall clock.
type OutboundConnector[V any] struct {
	pub    *Publisher
	format func(tsMillis int64, v V) string
	now    func() time.Time
}

func newOutbound[V any](pub *Publisher, format func(int64, V) string) *OutboundConnector[V] {
	return &OutboundConnector[V]{pub: pub, format: format, now: time.Now}
}

// NewPositionConnector publishes the positions feed.
func NewPositionConnector(pub *Publisher) *OutboundConnector[*domain.Position] {
	return newOutbound(pub, FormatPosition)
}

// NewRiskConnector publishes the risk feed.
func NewRiskConnector(pub *Publisher) *OutboundConnector[domain.PV01] {
	return newOutbound(pub, FormatRisk)
}

// NewExecutionConnector publishes the executions feed.
func NewExecutionConnector(pub *Publisher) *OutboundConnector[domain.ExecutionOrder] {
	return newOutbound(pub, FormatExecution)
}

// NewStreamConnector publishes the streaming feed.
func NewStreamConnector(pub *Publisher) *OutboundConnector[domain.PriceStream] {
	return newOutbound(pub, FormatStream)
}

// NewGUIConnector publishes the throttled gui feed.
func NewGUIConnector(pub *Publisher) *OutboundConnector[domain.Price] {
	return newOutbound(pub, FormatGUI)
}

// NewInquiryPublisher publishes the allinquiries feed.
func NewInquiryPublisher(pub *Publisher) *OutboundConnector[domain.Inquiry] {
	return newOutbound(pub, FormatInquiry)
}

// SetClock replaces the wall clock, for tests.
func (c *OutboundConnector[V]) SetClock(now func() time.Time) {
	c.now = now
}

// Publish stamps and sends one entity.
func (c *OutboundConnector[V]) Publish(v V) error {
	return c.pub.Send(c.format(c.now().UnixMilli(), v))
}

// Close sends the EOF sentinel and releases the channel.
func (c *OutboundConnector[V]) Close() error {
	return c.pub.Close()
}
