package service

import (
	"errors"
	"testing"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

func TestPositionServicePrePopulated(t *testing.T) {
	catalog := bond.NewCatalog()
	svc := NewPositionService(catalog)

	for _, cusip := range catalog.CUSIPs() {
		p, err := svc.GetData(cusip)
		if err != nil {
			t.Fatalf("missing pre-created position for %s: %v", cusip, err)
		}
		if p.Aggregate() != 0 {
			t.Errorf("%s starts with aggregate %d", cusip, p.Aggregate())
		}
	}
}

func TestPositionConservation(t *testing.T) {
	// S1: one BUY of 1mm into TRSY1
	svc := NewPositionService(bond.NewCatalog())
	var notified []*domain.Position
	svc.AddListener(fabric.ListenerFunc[*domain.Position](func(p *domain.Position) {
		notified = append(notified, p)
	}))

	if err := svc.AddTrade(trade(t, "T1", domain.BookTRSY1, 1_000_000, domain.Buy)); err != nil {
		t.Fatal(err)
	}

	if len(notified) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notified))
	}
	p := notified[0]
	if p.Quantity(domain.BookTRSY1) != 1_000_000 {
		t.Errorf("TRSY1 = %d", p.Quantity(domain.BookTRSY1))
	}
	if agg, err := svc.GetAggregatePosition("91282CAX9"); err != nil || agg != 1_000_000 {
		t.Errorf("aggregate = %d, %v", agg, err)
	}

	// S2: a SELL of 400k in TRSY2 nets to 600k
	if err := svc.AddTrade(trade(t, "T2", domain.BookTRSY2, 400_000, domain.Sell)); err != nil {
		t.Fatal(err)
	}
	if agg, _ := svc.GetAggregatePosition("91282CAX9"); agg != 600_000 {
		t.Errorf("aggregate after sell = %d, want 600000", agg)
	}
	if p.Quantity(domain.BookTRSY2) != -400_000 {
		t.Errorf("TRSY2 = %d, want -400000", p.Quantity(domain.BookTRSY2))
	}
	if p.Quantity(domain.BookTRSY3) != 0 {
		t.Errorf("TRSY3 = %d, want 0", p.Quantity(domain.BookTRSY3))
	}
}

func TestPositionUnknownProductTrade(t *testing.T) {
	svc := NewPositionService(bond.NewCatalog())
	unknown := domain.Trade{
		Product:  domain.Bond{CUSIP: "000000000"},
		TradeID:  "T9",
		Book:     domain.BookTRSY1,
		Quantity: 1,
		Side:     domain.Buy,
	}
	if err := svc.AddTrade(unknown); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown product, got %v", err)
	}
}
