package app

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"treasury_go/internal/bond"
	"treasury_go/internal/infra"
)

// startReader emulates a helper reader process serving one feed file.
func startReader(t *testing.T, records []string) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		defer ln.Close()
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		br := bufio.NewReader(conn)
		for _, rec := range records {
			if _, err := br.ReadString('\n'); err != nil {
				return
			}
			conn.Write([]byte(rec + "\n"))
		}
		if _, err := br.ReadString('\n'); err != nil {
			return
		}
		conn.Write([]byte("EOF\n"))
	}()
	return ln.Addr().(*net.TCPAddr).Port
}

// capturedFeed collects what a helper writer process would append.
type capturedFeed struct {
	mu    sync.Mutex
	lines []string
	done  chan struct{}
}

func (c *capturedFeed) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// startWriter emulates a helper writer process capturing one feed.
func startWriter(t *testing.T) (int, *capturedFeed) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	captured := &capturedFeed{done: make(chan struct{})}
	go func() {
		defer ln.Close()
		conn, err := ln.Accept()
		if err != nil {
			close(captured.done)
			return
		}
		defer conn.Close()
		defer close(captured.done)
		br := bufio.NewReader(conn)
		if _, err := br.ReadString('\n'); err != nil {
			return
		}
		conn.Write([]byte("success\n"))
		for {
			line, err := br.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\n")
			if line == "EOF" {
				return
			}
			captured.mu.Lock()
			captured.lines = append(captured.lines, line)
			captured.mu.Unlock()
			conn.Write([]byte("success\n"))
		}
	}()
	return ln.Addr().(*net.TCPAddr).Port, captured
}

// afterTimestamp strips the millisecond timestamp prefix.
func afterTimestamp(t *testing.T, line string) string {
	t.Helper()
	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		t.Fatalf("no timestamp prefix in %q", line)
	}
	return line[idx+1:]
}

func TestPipelineEndToEnd(t *testing.T) {
	tightBook := "91282CAX9,99-305,99-306,99-307,99-310,99-311,99-312,99-313,99-314,99-315,99-316"
	wideBook := "91282CAX9,99-274,99-275,99-276,99-277,99-300,99-310,99-311,99-312,99-313,99-314"

	cfg := &infra.Config{}
	cfg.Feeds.Host = "127.0.0.1"

	cfg.Feeds.Inbound.Trades = infra.FeedEndpoint{
		Port: startReader(t, []string{
			"91282CAX9,T1,TRSY1,100-000,BUY,1000000",
			"91282CAX9,T2,TRSY2,100-000,SELL,400000",
		}),
		File: "trades.txt",
	}
	cfg.Feeds.Inbound.MarketData = infra.FeedEndpoint{
		Port: startReader(t, []string{tightBook, tightBook, wideBook}),
		File: "marketdata.txt",
	}
	cfg.Feeds.Inbound.Prices = infra.FeedEndpoint{
		Port: startReader(t, []string{"91282CAX9,100-000,2", "91282CAX9,100-000,2"}),
		File: "prices.txt",
	}
	cfg.Feeds.Inbound.Inquiries = infra.FeedEndpoint{
		Port: startReader(t, []string{"Q1,91282CAX9,BUY"}),
		File: "inquiries.txt",
	}

	feeds := map[string]*infra.FeedEndpoint{
		"positions":    &cfg.Feeds.Outbound.Positions,
		"risk":         &cfg.Feeds.Outbound.Risk,
		"executions":   &cfg.Feeds.Outbound.Executions,
		"streaming":    &cfg.Feeds.Outbound.Streaming,
		"gui":          &cfg.Feeds.Outbound.GUI,
		"allinquiries": &cfg.Feeds.Outbound.AllInquiries,
	}
	captures := make(map[string]*capturedFeed)
	for name, ep := range feeds {
		port, captured := startWriter(t)
		*ep = infra.FeedEndpoint{Port: port, File: name + ".txt"}
		captures[name] = captured
	}

	cfg.GUI.MaxSamples = 100 // throttle interval zero: every tick passes

	bootstrap := &Bootstrap{Config: cfg, Catalog: bond.NewCatalog()}
	pipeline, err := bootstrap.BuildPipeline()
	if err != nil {
		t.Fatal(err)
	}

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := pipeline.Close(); err != nil {
		t.Fatal(err)
	}

	for name, captured := range captures {
		select {
		case <-captured.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("writer %s never saw EOF", name)
		}
	}

	// positions: the two inbound trades first, then the two synthesized
	// from executions
	positions := captures["positions"].snapshot()
	if len(positions) != 4 {
		t.Fatalf("positions lines = %d, want 4: %v", len(positions), positions)
	}
	if got := afterTimestamp(t, positions[0]); got != "91282CAX9,1000000,0,0,1000000" {
		t.Errorf("position after T1 = %s", got)
	}
	if got := afterTimestamp(t, positions[1]); got != "91282CAX9,1000000,-400000,0,600000" {
		t.Errorf("position after T2 = %s", got)
	}

	risk := captures["risk"].snapshot()
	if len(risk) != 4 {
		t.Fatalf("risk lines = %d, want 4: %v", len(risk), risk)
	}
	if got := afterTimestamp(t, risk[0]); got != "91282CAX9,20000" {
		t.Errorf("risk after T1 = %s", got)
	}
	if got := afterTimestamp(t, risk[1]); got != "91282CAX9,12000" {
		t.Errorf("risk after T2 = %s", got)
	}

	// executions: two aggressions on the tight book, none on the wide one
	executions := captures["executions"].snapshot()
	if len(executions) != 2 {
		t.Fatalf("execution lines = %d, want 2: %v", len(executions), executions)
	}
	if got := afterTimestamp(t, executions[0]); got != "91282CAX9,1,MARKET,BUY,99-311,1000000,1000000" {
		t.Errorf("first execution = %s", got)
	}
	if got := afterTimestamp(t, executions[1]); got != "91282CAX9,2,MARKET,SELL,99-312,1000000,1000000" {
		t.Errorf("second execution = %s", got)
	}

	// streaming: both price ticks stream symmetric bid/offer around the mid
	streaming := captures["streaming"].snapshot()
	if len(streaming) != 2 {
		t.Fatalf("streaming lines = %d, want 2: %v", len(streaming), streaming)
	}
	for i, line := range streaming {
		if got := afterTimestamp(t, line); got != "91282CAX9,99-316,100-002" {
			t.Errorf("streaming line %d = %s", i, got)
		}
	}

	gui := captures["gui"].snapshot()
	if len(gui) == 0 {
		t.Fatal("gui feed is empty")
	}
	if got := afterTimestamp(t, gui[0]); got != "91282CAX9,100,0.015625" {
		t.Errorf("gui line = %s", got)
	}

	inquiries := captures["allinquiries"].snapshot()
	if len(inquiries) != 1 {
		t.Fatalf("allinquiries lines = %d, want 1: %v", len(inquiries), inquiries)
	}
	if got := afterTimestamp(t, inquiries[0]); got != "91282CAX9,100-000,DONE" {
		t.Errorf("inquiry line = %s", got)
	}
}
