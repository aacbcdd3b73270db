// Package app assembles the dataflow graph and drives the four inbound
// feeds through it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"treasury_go/internal/bond"
	"treasury_go/internal/domain"
	"treasury_go/internal/fabric"
	"treasury_go/internal/infra"
	"treasury_go/internal/infra/feed"
	"treasury_go/internal/infra/storage"
	"treasury_go/internal/infra/wshub"
	"treasury_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Catalog *bond.Catalog
	Store   *storage.Store
	Hub     *wshub.Hub
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads config, logging, the bond catalog and the archive.
func (b *Bootstrap) Initialize(configPath string) error {
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	b.Catalog = bond.NewCatalog()

	if cfg.Storage.Path != "" {
		store, err := storage.NewStore(cfg.Storage.Path)
		if err != nil {
			return err
		}
		b.Store = store
		slog.Info("historical archive ready", slog.String("path", cfg.Storage.Path))
	}

	if cfg.WSHub.Enabled {
		b.Hub = wshub.NewHub()
		go func() {
			slog.Info("tick hub listening", slog.String("addr", cfg.WSHub.Addr))
			if err := http.ListenAndServe(cfg.WSHub.Addr, b.Hub); err != nil {
				slog.Error("tick hub stopped", slog.Any("error", err))
			}
		}()
	}

	return nil
}

// Pipeline is the assembled service graph plus its boundary connectors.
type Pipeline struct {
	cfg     *infra.Config
	catalog *bond.Catalog
	store   *storage.Store
	hub     *wshub.Hub

	Pricing       *service.PricingService
	AlgoStreaming *service.AlgoStreamingService
	Streaming     *service.StreamingService
	GUI           *service.GUIService
	MarketData    *service.MarketDataService
	AlgoExecution *service.AlgoExecutionService
	Execution     *service.ExecutionService
	TradeBooking  *service.TradeBookingService
	Position      *service.PositionService
	Risk          *service.RiskService
	Inquiry       *service.InquiryService

	outbound []interface{ Close() error }
}

// BuildPipeline dials the six outbound feeds and wires the graph,
// leaves first.
func (b *Bootstrap) BuildPipeline() (*Pipeline, error) {
	cfg := b.Config
	p := &Pipeline{cfg: cfg, catalog: b.Catalog, store: b.Store, hub: b.Hub}

	out := cfg.Feeds.Outbound
	positionConn, err := dialOutbound(cfg, out.Positions, feed.NewPositionConnector)
	if err != nil {
		return nil, err
	}
	p.track(positionConn)
	riskConn, err := dialOutbound(cfg, out.Risk, feed.NewRiskConnector)
	if err != nil {
		return nil, err
	}
	p.track(riskConn)
	execConn, err := dialOutbound(cfg, out.Executions, feed.NewExecutionConnector)
	if err != nil {
		return nil, err
	}
	p.track(execConn)
	streamConn, err := dialOutbound(cfg, out.Streaming, feed.NewStreamConnector)
	if err != nil {
		return nil, err
	}
	p.track(streamConn)
	guiConn, err := dialOutbound(cfg, out.GUI, feed.NewGUIConnector)
	if err != nil {
		return nil, err
	}
	p.track(guiConn)
	inquiryConn, err := dialOutbound(cfg, out.AllInquiries, feed.NewInquiryPublisher)
	if err != nil {
		return nil, err
	}
	p.track(inquiryConn)

	p.wire(positionConn, riskConn, execConn, streamConn, guiConn, inquiryConn)
	return p, nil
}

func dialOutbound[V any](cfg *infra.Config, ep infra.FeedEndpoint,
	build func(*feed.Publisher) *feed.OutboundConnector[V]) (*feed.OutboundConnector[V], error) {
	pub, err := feed.DialPublisher(cfg.Addr(ep), ep.File)
	if err != nil {
		return nil, err
	}
	slog.Info("outbound feed connected", slog.String("file", ep.File))
	return build(pub), nil
}

func (p *Pipeline) track(c interface{ Close() error }) {
	p.outbound = append(p.outbound, c)
}

func (p *Pipeline) wire(
	positionConn *feed.OutboundConnector[*domain.Position],
	riskConn *feed.OutboundConnector[domain.PV01],
	execConn *feed.OutboundConnector[domain.ExecutionOrder],
	streamConn *feed.OutboundConnector[domain.PriceStream],
	guiConn *feed.OutboundConnector[domain.Price],
	inquiryConn *feed.OutboundConnector[domain.Inquiry],
) {
	store := service.RecordStore(nil)
	if p.store != nil {
		store = p.store
	}

	// trades branch: booking -> position -> (historical, risk -> historical)
	p.Risk = service.NewRiskService(p.catalog)
	p.Risk.AddListener(service.NewHistoricalDataService[domain.PV01]("risk", riskConn, store))

	p.Position = service.NewPositionService(p.catalog)
	p.Position.AddListener(fabric.ListenerFunc[*domain.Position](func(pos *domain.Position) {
		if err := p.Risk.AddPosition(pos); err != nil {
			panic(fmt.Sprintf("risk edge: %v", err))
		}
	}))
	p.Position.AddListener(service.NewHistoricalDataService[*domain.Position]("positions", positionConn, store))

	p.TradeBooking = service.NewTradeBookingService()
	p.TradeBooking.AddListener(fabric.ListenerFunc[domain.Trade](func(t domain.Trade) {
		if err := p.Position.AddTrade(t); err != nil {
			panic(fmt.Sprintf("position edge: %v", err))
		}
	}))

	// marketdata branch: marketdata -> algo execution -> execution ->
	// (historical, booking bridge)
	p.Execution = service.NewExecutionService()
	p.Execution.AddListener(service.NewExecutionBridge(p.TradeBooking))
	p.Execution.AddListener(service.NewHistoricalDataService[domain.ExecutionOrder]("executions", execConn, store))

	p.AlgoExecution = service.NewAlgoExecutionService()
	p.AlgoExecution.AddListener(fabric.ListenerFunc[domain.ExecutionOrder](func(o domain.ExecutionOrder) {
		p.Execution.ExecuteOrder(o, domain.CME)
	}))

	p.MarketData = service.NewMarketDataService()
	p.MarketData.AddListener(fabric.ListenerFunc[domain.OrderBook](p.AlgoExecution.Execute))

	// prices branch: pricing -> (gui, algo streaming -> streaming -> historical)
	p.GUI = service.NewGUIService(guiConn, p.cfg.GUIThrottle(), p.cfg.GUI.MaxSamples)

	p.Streaming = service.NewStreamingService()
	p.Streaming.AddListener(service.NewHistoricalDataService[domain.PriceStream]("streaming", streamConn, store))

	p.AlgoStreaming = service.NewAlgoStreamingService()
	p.AlgoStreaming.AddListener(fabric.ListenerFunc[domain.PriceStream](p.Streaming.PublishPrice))

	p.Pricing = service.NewPricingService()
	p.Pricing.AddListener(fabric.ListenerFunc[domain.Price](func(pr domain.Price) {
		if err := p.GUI.ProvideData(pr); err != nil {
			panic(fmt.Sprintf("gui edge: %v", err))
		}
	}))
	p.Pricing.AddListener(fabric.ListenerFunc[domain.Price](p.AlgoStreaming.PublishPrice))

	// inquiries branch: inquiry loops through its quote connector, then
	// terminal states persist
	p.Inquiry = service.NewInquiryService()
	p.Inquiry.AddListener(service.NewHistoricalDataService[domain.Inquiry]("allinquiries", inquiryConn, store))

	if p.hub != nil {
		p.Streaming.AddListener(fabric.ListenerFunc[domain.PriceStream](func(ps domain.PriceStream) {
			p.hub.Broadcast("streaming", ps)
		}))
		p.GUI.AddListener(fabric.ListenerFunc[domain.Price](func(pr domain.Price) {
			p.hub.Broadcast("gui", pr)
		}))
	}
}

// Run drives the four inbound feeds sequentially in the fixed startup
// order: trades, market data, prices, inquiries. Each record's full
// downstream propagation completes before the next record is read.
func (p *Pipeline) Run(ctx context.Context) error {
	in := p.cfg.Feeds.Inbound

	feeds := []struct {
		name string
		run  func() error
	}{
		{feed.FeedTrades, func() error {
			sub, err := feed.DialSubscriber(p.cfg.Addr(in.Trades), in.Trades.File)
			if err != nil {
				return err
			}
			return feed.NewTradeConnector(sub, p.catalog, p.TradeBooking).Subscribe()
		}},
		{feed.FeedMarketData, func() error {
			sub, err := feed.DialSubscriber(p.cfg.Addr(in.MarketData), in.MarketData.File)
			if err != nil {
				return err
			}
			return feed.NewMarketDataConnector(sub, p.catalog, p.MarketData).Subscribe()
		}},
		{feed.FeedPrices, func() error {
			sub, err := feed.DialSubscriber(p.cfg.Addr(in.Prices), in.Prices.File)
			if err != nil {
				return err
			}
			return feed.NewPriceConnector(sub, p.catalog, p.Pricing).Subscribe()
		}},
		{feed.FeedInquiries, func() error {
			sub, err := feed.DialSubscriber(p.cfg.Addr(in.Inquiries), in.Inquiries.File)
			if err != nil {
				return err
			}
			return feed.NewInquiryConnector(sub, p.catalog, p.Inquiry).Subscribe()
		}},
	}

	for _, f := range feeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		slog.Info("feed starting", slog.String("feed", f.name))
		if err := f.run(); err != nil {
			return fmt.Errorf("feed %s: %w", f.name, err)
		}
		slog.Info("feed drained", slog.String("feed", f.name))
	}
	return nil
}

// Close tears down the outbound channels (each emits its EOF sentinel),
// the archive and the tick hub.
func (p *Pipeline) Close() error {
	var firstErr error
	for _, c := range p.outbound {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if p.store != nil {
		if err := p.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if p.hub != nil {
		p.hub.Close()
	}
	return firstErr
}
