package feed

import (
	"strconv"
	"strings"

	"treasury_go/internal/domain"
	"treasury_go/pkg/frac"
)

// Emitted record formats, each prefixed by a millisecond wall-clock
// timestamp. The formatters take the timestamp so publishers stay
// deterministic under test.

// FormatPosition renders ts,cusip,q_TRSY1,q_TRSY2,q_TRSY3,aggregate.
func FormatPosition(tsMillis int64, p *domain.Position) string {
	fields := []string{
		strconv.FormatInt(tsMillis, 10),
		p.Product.ID(),
	}
	for _, book := range domain.Books {
		fields = append(fields, strconv.FormatInt(p.Quantity(book), 10))
	}
	fields = append(fields, strconv.FormatInt(p.Aggregate(), 10))
	return strings.Join(fields, ",")
}

// FormatRisk renders ts,cusip,total_pv01 with total = quantity * per-unit.
func FormatRisk(tsMillis int64, pv domain.PV01) string {
	return strings.Join([]string{
		strconv.FormatInt(tsMillis, 10),
		pv.Product.ID(),
		pv.Total().String(),
	}, ",")
}

// FormatExecution renders
// ts,cusip,orderId,MARKET,side,price,visibleQty,hiddenQty with the side
// rendered BUY/SELL.
func FormatExecution(tsMillis int64, o domain.ExecutionOrder) string {
	side := domain.Sell
	if o.Side == domain.Bid {
		side = domain.Buy
	}
	return strings.Join([]string{
		strconv.FormatInt(tsMillis, 10),
		o.Product.ID(),
		o.OrderID,
		o.Type.String(),
		side.String(),
		frac.Format(o.Price),
		strconv.FormatInt(o.VisibleQuantity, 10),
		strconv.FormatInt(o.HiddenQuantity, 10),
	}, ",")
}

// FormatStream renders ts,cusip,bidPrice,offerPrice in fractional
// notation.
func FormatStream(tsMillis int64, ps domain.PriceStream) string {
	return strings.Join([]string{
		strconv.FormatInt(tsMillis, 10),
		ps.Product.ID(),
		frac.Format(ps.Bid.Price),
		frac.Format(ps.Offer.Price),
	}, ",")
}

// FormatGUI renders ts,cusip,mid,spread in plain decimal.
func FormatGUI(tsMillis int64, p domain.Price) string {
	return strings.Join([]string{
		strconv.FormatInt(tsMillis, 10),
		p.Product.ID(),
		p.Mid.String(),
		p.BidOfferSpread.String(),
	}, ",")
}

// FormatInquiry renders ts,cusip,price,state for terminal inquiries,
// price in fractional notation.
func FormatInquiry(tsMillis int64, inq domain.Inquiry) string {
	return strings.Join([]string{
		strconv.FormatInt(tsMillis, 10),
		inq.Product.ID(),
		frac.Format(inq.Price),
		inq.State.String(),
	}, ",")
}
