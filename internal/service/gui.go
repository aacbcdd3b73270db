package service

import (
	"time"

	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
)

// GUIService rate-limits price updates into the GUI sink. Updates inside
// the throttle window, or past the sample cap, are dropped silently.
//
// lastEmit starts at the zero time so the first tick always emits; the
// shipped system initialized it to construction time, which could swallow
// the first tick. Either policy satisfies the throttle invariant.
type GUIService struct {
	fabric.Cache[string, domain.Price]

	out        fabric.Publisher[domain.Price]
	throttle   time.Duration
	maxSamples int

	now      func() time.Time
	lastEmit time.Time
	emitted  int
}

// NewGUIService creates a throttled GUI sink publishing through out.
func NewGUIService(out fabric.Publisher[domain.Price], throttle time.Duration, maxSamples int) *GUIService {
	return &GUIService{
		Cache:      fabric.NewCache[string, domain.Price](),
		out:        out,
		throttle:   throttle,
		maxSamples: maxSamples,
		now:        time.Now,
	}
}

// SetClock replaces the wall clock, for tests.
func (s *GUIService) SetClock(now func() time.Time) {
	s.now = now
}

// ProvideData offers a price to the throttle. Registered on
// PricingService via a bridging listener.
func (s *GUIService) ProvideData(p domain.Price) error {
	t := s.now()
	if t.Sub(s.lastEmit) < s.throttle || s.emitted >= s.maxSamples {
		return nil
	}
	s.lastEmit = t
	s.emitted++
	s.Put(p.Product.ID(), p)
	if err := s.out.Publish(p); err != nil {
		return err
	}
	s.Notify(p)
	return nil
}

// OnMessage routes connector input through the same throttle.
func (s *GUIService) OnMessage(p domain.Price) error {
	return s.ProvideData(p)
}

// Emitted returns how many samples have been published.
func (s *GUIService) Emitted() int {
	return s.emitted
}
