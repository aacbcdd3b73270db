package feed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
	"treasury_go/pkg/frac"
)

// Feed names used in diagnostics.
const (
	FeedPrices     = "prices"
	FeedTrades     = "trades"
	FeedMarketData = "marketdata"
	FeedInquiries  = "inquiries"
)

var spreadUnit = decimal.NewFromInt(128)

func malformed(feed, line string, err error) error {
	return &domain.MalformedRecordError{Feed: feed, Line: line, Err: err}
}

// ParsePrice reads a prices record: cusip,price,spread-digit.
// The spread digit d encodes a spread of d/128.
func ParsePrice(catalog *bond.Catalog, line string) (domain.Price, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != 3 {
		return domain.Price{}, malformed(FeedPrices, line, errors.New("want 3 fields"))
	}
	product, err := catalog.Bond(tokens[0])
	if err != nil {
		return domain.Price{}, err
	}
	mid, err := frac.Parse(tokens[1])
	if err != nil {
		return domain.Price{}, malformed(FeedPrices, line, err)
	}
	if len(tokens[2]) != 1 || tokens[2][0] < '0' || tokens[2][0] > '9' {
		return domain.Price{}, malformed(FeedPrices, line, errors.New("bad spread digit"))
	}
	spread := decimal.NewFromInt(int64(tokens[2][0] - '0')).Div(spreadUnit)
	return domain.Price{Product: product, Mid: mid, BidOfferSpread: spread}, nil
}

// ParseTrade reads a trades record: cusip,tradeId,book,price,side,quantity.
// The price is accepted in fractional or plain decimal notation.
func ParseTrade(catalog *bond.Catalog, line string) (domain.Trade, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != 6 {
		return domain.Trade{}, malformed(FeedTrades, line, errors.New("want 6 fields"))
	}
	product, err := catalog.Bond(tokens[0])
	if err != nil {
		return domain.Trade{}, err
	}
	book := tokens[2]
	if book != domain.BookTRSY1 && book != domain.BookTRSY2 && book != domain.BookTRSY3 {
		return domain.Trade{}, malformed(FeedTrades, line, fmt.Errorf("unknown book %q", book))
	}
	price, err := parseAnyPrice(tokens[3])
	if err != nil {
		return domain.Trade{}, malformed(FeedTrades, line, err)
	}
	side, ok := domain.ParseSide(tokens[4])
	if !ok {
		return domain.Trade{}, malformed(FeedTrades, line, fmt.Errorf("unknown side %q", tokens[4]))
	}
	quantity, err := strconv.ParseInt(tokens[5], 10, 64)
	if err != nil || quantity <= 0 {
		return domain.Trade{}, malformed(FeedTrades, line, errors.New("quantity must be > 0"))
	}
	return domain.Trade{
		Product:  product,
		TradeID:  tokens[1],
		Price:    price,
		Book:     book,
		Quantity: quantity,
		Side:     side,
	}, nil
}

// ParseOrderBook reads a marketdata record:
// cusip,b1..b5,o1..o5. Bid levels arrive tightest last and are stacked
// best-first in memory; offer levels arrive tightest first. Level L
// carries L million quantity on both sides.
func ParseOrderBook(catalog *bond.Catalog, line string) (domain.OrderBook, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != 11 {
		return domain.OrderBook{}, malformed(FeedMarketData, line, errors.New("want 11 fields"))
	}
	product, err := catalog.Bond(tokens[0])
	if err != nil {
		return domain.OrderBook{}, err
	}

	bids := make([]domain.Order, 5)
	offers := make([]domain.Order, 5)
	for i := 0; i < 5; i++ {
		bidPrice, err := frac.Parse(tokens[5-i])
		if err != nil {
			return domain.OrderBook{}, malformed(FeedMarketData, line, err)
		}
		offerPrice, err := frac.Parse(tokens[6+i])
		if err != nil {
			return domain.OrderBook{}, malformed(FeedMarketData, line, err)
		}
		quantity := int64(i+1) * 1_000_000
		bids[i] = domain.Order{Price: bidPrice, Quantity: quantity, Side: domain.Bid}
		offers[i] = domain.Order{Price: offerPrice, Quantity: quantity, Side: domain.Offer}
	}
	return domain.OrderBook{Product: product, Bids: bids, Offers: offers}, nil
}

// ParseInquiry reads an inquiries record: inquiryId,cusip,side. Quantity
// and price default to zero; the state machine starts at RECEIVED. A
// trailing empty field is tolerated.
func ParseInquiry(catalog *bond.Catalog, line string) (domain.Inquiry, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) == 4 && tokens[3] == "" {
		tokens = tokens[:3]
	}
	if len(tokens) != 3 {
		return domain.Inquiry{}, malformed(FeedInquiries, line, errors.New("want 3 fields"))
	}
	product, err := catalog.Bond(tokens[1])
	if err != nil {
		return domain.Inquiry{}, err
	}
	side, ok := domain.ParseSide(tokens[2])
	if !ok {
		return domain.Inquiry{}, malformed(FeedInquiries, line, fmt.Errorf("unknown side %q", tokens[2]))
	}
	return domain.Inquiry{
		InquiryID: tokens[0],
		Product:   product,
		Side:      side,
		State:     domain.Received,
	}, nil
}

func parseAnyPrice(s string) (decimal.Decimal, error) {
	if strings.ContainsRune(s, '-') {
		return frac.Parse(s)
	}
	return decimal.NewFromString(s)
}
