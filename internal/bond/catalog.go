// Package bond holds the static U.S. Treasury catalog the pipeline trades.
// The catalog is built once at startup and passed around as an immutable
// handle; services never reach for ambient global state.
package bond

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"treasury_go/internal/domain"
)

// Sector names for bucketed risk.
const (
	SectorFrontEnd = "FrontEnd"
	SectorBelly    = "Belly"
	SectorLongEnd  = "LongEnd"
)

type entry struct {
	cusip    string
	tenor    string
	coupon   string // annual rate
	maturity string // YYYY-MM-DD
	pv01     string // per $1 of quantity
	sector   string
}

// Coupon and maturity data from treasurydirect.gov; PV01 is approximated
// as tenor/100 in the absence of a yield curve.
var entries = []entry{
	{"91282CAX9", "2Y", "0.00125", "2022-11-30", "0.02", SectorFrontEnd},
	{"91282CBA80", "3Y", "0.00125", "2023-12-15", "0.03", SectorFrontEnd},
	{"91282CAZ4", "5Y", "0.00375", "2025-11-30", "0.05", SectorBelly},
	{"91282CAY7", "7Y", "0.00625", "2027-11-30", "0.07", SectorBelly},
	{"91282CAV3", "10Y", "0.00875", "2030-11-15", "0.10", SectorBelly},
	{"912810ST6", "20Y", "0.01375", "2040-11-15", "0.20", SectorLongEnd},
	{"912810SS8", "30Y", "0.01625", "2050-11-15", "0.30", SectorLongEnd},
}

// Catalog maps CUSIPs to bond static data and PV01 values.
type Catalog struct {
	cusips  []string
	bonds   map[string]domain.Bond
	pv01s   map[string]decimal.Decimal
	sectors map[string][]domain.Bond
}

// NewCatalog builds the catalog of the seven on-the-run Treasuries.
func NewCatalog() *Catalog {
	c := &Catalog{
		bonds:   make(map[string]domain.Bond, len(entries)),
		pv01s:   make(map[string]decimal.Decimal, len(entries)),
		sectors: make(map[string][]domain.Bond),
	}
	for _, e := range entries {
		maturity, err := time.Parse("2006-01-02", e.maturity)
		if err != nil {
			panic(fmt.Sprintf("bond: bad maturity for %s: %v", e.cusip, err))
		}
		b := domain.Bond{
			CUSIP:    e.cusip,
			IDKind:   domain.IdentifierCUSIP,
			Ticker:   "T",
			Coupon:   decimal.RequireFromString(e.coupon),
			Maturity: maturity,
		}
		c.cusips = append(c.cusips, e.cusip)
		c.bonds[e.cusip] = b
		c.pv01s[e.cusip] = decimal.RequireFromString(e.pv01)
		c.sectors[e.sector] = append(c.sectors[e.sector], b)
	}
	return c
}

// CUSIPs returns every catalog CUSIP in tenor order.
func (c *Catalog) CUSIPs() []string {
	return c.cusips
}

// Bond looks up a product by CUSIP.
func (c *Catalog) Bond(cusip string) (domain.Bond, error) {
	b, ok := c.bonds[cusip]
	if !ok {
		return domain.Bond{}, fmt.Errorf("cusip %s: %w", cusip, domain.ErrUnknownProduct)
	}
	return b, nil
}

// PV01 returns the per-unit PV01 of a product.
func (c *Catalog) PV01(cusip string) (decimal.Decimal, error) {
	v, ok := c.pv01s[cusip]
	if !ok {
		return decimal.Zero, fmt.Errorf("cusip %s: %w", cusip, domain.ErrUnknownProduct)
	}
	return v, nil
}

// Sector returns the named bucketed sector together with its products.
func (c *Catalog) Sector(name string) (domain.BucketedSector, error) {
	products, ok := c.sectors[name]
	if !ok {
		return domain.BucketedSector{}, fmt.Errorf("sector %s: %w", name, domain.ErrUnknownProduct)
	}
	return domain.BucketedSector{Name: name, Products: products}, nil
}

// Sectors returns the sector names in tenor order.
func (c *Catalog) Sectors() []string {
	return []string{SectorFrontEnd, SectorBelly, SectorLongEnd}
}
