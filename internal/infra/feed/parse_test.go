package feed

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
)

func TestParsePrice(t *testing.T) {
	catalog := bond.NewCatalog()

	p, err := ParsePrice(catalog, "91282CAX9,100-000,2")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Mid.Equal(decimal.NewFromInt(100)) {
		t.Errorf("mid = %v, want 100", p.Mid)
	}
	// spread digit 2 encodes 2/128
	if !p.BidOfferSpread.Equal(decimal.RequireFromString("0.015625")) {
		t.Errorf("spread = %v, want 0.015625", p.BidOfferSpread)
	}
	if p.Product.ID() != "91282CAX9" {
		t.Errorf("product = %s", p.Product.ID())
	}
}

func TestParsePricePlusTick(t *testing.T) {
	catalog := bond.NewCatalog()
	p, err := ParsePrice(catalog, "91282CAX9,99-31+,1")
	if err != nil {
		t.Fatal(err)
	}
	want := decimal.RequireFromString("99.984375") // 99 + 31/32 + 4/256
	if !p.Mid.Equal(want) {
		t.Errorf("mid = %v, want %v", p.Mid, want)
	}
}

func TestParsePriceErrors(t *testing.T) {
	catalog := bond.NewCatalog()

	if _, err := ParsePrice(catalog, "000000000,100-000,2"); !errors.Is(err, domain.ErrUnknownProduct) {
		t.Errorf("unknown product: got %v", err)
	}

	var malformed *domain.MalformedRecordError
	for _, line := range []string{"91282CAX9,100-000", "91282CAX9,garbage,2", "91282CAX9,100-000,x", "91282CAX9,100-000,22"} {
		_, err := ParsePrice(catalog, line)
		if !errors.As(err, &malformed) {
			t.Errorf("line %q: expected MalformedRecordError, got %v", line, err)
		}
	}
}

func TestParseTrade(t *testing.T) {
	catalog := bond.NewCatalog()

	tr, err := ParseTrade(catalog, "91282CAX9,T1,TRSY1,100-000,BUY,1000000")
	if err != nil {
		t.Fatal(err)
	}
	if tr.TradeID != "T1" || tr.Book != domain.BookTRSY1 || tr.Side != domain.Buy {
		t.Errorf("trade = %+v", tr)
	}
	if tr.Quantity != 1_000_000 {
		t.Errorf("quantity = %d", tr.Quantity)
	}
	if !tr.Price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("price = %v", tr.Price)
	}
}

func TestParseTradeDecimalPrice(t *testing.T) {
	catalog := bond.NewCatalog()
	tr, err := ParseTrade(catalog, "91282CAX9,T2,TRSY2,99.0,SELL,2000000")
	if err != nil {
		t.Fatal(err)
	}
	if !tr.Price.Equal(decimal.NewFromInt(99)) {
		t.Errorf("price = %v, want 99", tr.Price)
	}
}

func TestParseTradeErrors(t *testing.T) {
	catalog := bond.NewCatalog()
	var malformed *domain.MalformedRecordError
	bad := []string{
		"91282CAX9,T1,TRSY9,100-000,BUY,1000000", // unknown book
		"91282CAX9,T1,TRSY1,100-000,HOLD,1000000",
		"91282CAX9,T1,TRSY1,100-000,BUY,0",
		"91282CAX9,T1,TRSY1,100-000,BUY,-5",
		"91282CAX9,T1,TRSY1,100-000,BUY",
	}
	for _, line := range bad {
		if _, err := ParseTrade(catalog, line); !errors.As(err, &malformed) {
			t.Errorf("line %q: expected MalformedRecordError, got %v", line, err)
		}
	}
}

func TestParseOrderBook(t *testing.T) {
	catalog := bond.NewCatalog()
	// bids arrive tightest last, offers tightest first
	line := "91282CAX9,99-305,99-306,99-307,99-310,99-311,99-312,99-313,99-314,99-315,99-316"

	ob, err := ParseOrderBook(catalog, line)
	if err != nil {
		t.Fatal(err)
	}
	if len(ob.Bids) != 5 || len(ob.Offers) != 5 {
		t.Fatalf("stack sizes = %d/%d", len(ob.Bids), len(ob.Offers))
	}

	bestBid, _ := ParsePrice(catalog, "91282CAX9,99-311,0")
	if !ob.Bids[0].Price.Equal(bestBid.Mid) {
		t.Errorf("best bid = %v, want 99-311", ob.Bids[0].Price)
	}
	bestOffer, _ := ParsePrice(catalog, "91282CAX9,99-312,0")
	if !ob.Offers[0].Price.Equal(bestOffer.Mid) {
		t.Errorf("best offer = %v, want 99-312", ob.Offers[0].Price)
	}

	// level L carries L million on both sides
	for i := 0; i < 5; i++ {
		want := int64(i+1) * 1_000_000
		if ob.Bids[i].Quantity != want || ob.Offers[i].Quantity != want {
			t.Errorf("level %d: quantities = %d/%d, want %d", i+1, ob.Bids[i].Quantity, ob.Offers[i].Quantity, want)
		}
	}

	// spread 1/256
	if !ob.Spread().Equal(decimal.RequireFromString("0.00390625")) {
		t.Errorf("spread = %v", ob.Spread())
	}
}

func TestParseInquiry(t *testing.T) {
	catalog := bond.NewCatalog()

	for _, line := range []string{"Q1,91282CAX9,BUY", "Q1,91282CAX9,BUY,"} {
		inq, err := ParseInquiry(catalog, line)
		if err != nil {
			t.Fatalf("line %q: %v", line, err)
		}
		if inq.InquiryID != "Q1" || inq.Side != domain.Buy || inq.State != domain.Received {
			t.Errorf("inquiry = %+v", inq)
		}
		if inq.Quantity != 0 || !inq.Price.IsZero() {
			t.Errorf("quantity and price must default to zero: %+v", inq)
		}
	}
}
