package infra

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FeedEndpoint names one helper reader/writer channel: the TCP port the
// helper listens on and the file it serves or writes.
type FeedEndpoint struct {
	Port int    `yaml:"port"`
	File string `yaml:"file"`
}

// Config holds the whole pipeline configuration.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feeds struct {
		Host string `yaml:"host"`

		Inbound struct {
			Prices     FeedEndpoint `yaml:"prices"`
			Trades     FeedEndpoint `yaml:"trades"`
			MarketData FeedEndpoint `yaml:"marketdata"`
			Inquiries  FeedEndpoint `yaml:"inquiries"`
		} `yaml:"inbound"`

		Outbound struct {
			Positions    FeedEndpoint `yaml:"positions"`
			Risk         FeedEndpoint `yaml:"risk"`
			Executions   FeedEndpoint `yaml:"executions"`
			Streaming    FeedEndpoint `yaml:"streaming"`
			GUI          FeedEndpoint `yaml:"gui"`
			AllInquiries FeedEndpoint `yaml:"allinquiries"`
		} `yaml:"outbound"`
	} `yaml:"feeds"`

	GUI struct {
		ThrottleMS int `yaml:"throttle_ms"`
		MaxSamples int `yaml:"max_samples"`
	} `yaml:"gui"`

	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`

	WSHub struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"wshub"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Feeds.Host == "" {
		c.Feeds.Host = "127.0.0.1"
	}
	if c.GUI.ThrottleMS == 0 {
		c.GUI.ThrottleMS = 300
	}
	if c.GUI.MaxSamples == 0 {
		c.GUI.MaxSamples = 100
	}
	if c.WSHub.Addr == "" {
		c.WSHub.Addr = "localhost:8090"
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	inbound := map[string]FeedEndpoint{
		"prices":     c.Feeds.Inbound.Prices,
		"trades":     c.Feeds.Inbound.Trades,
		"marketdata": c.Feeds.Inbound.MarketData,
		"inquiries":  c.Feeds.Inbound.Inquiries,
	}
	outbound := map[string]FeedEndpoint{
		"positions":    c.Feeds.Outbound.Positions,
		"risk":         c.Feeds.Outbound.Risk,
		"executions":   c.Feeds.Outbound.Executions,
		"streaming":    c.Feeds.Outbound.Streaming,
		"gui":          c.Feeds.Outbound.GUI,
		"allinquiries": c.Feeds.Outbound.AllInquiries,
	}
	for name, ep := range inbound {
		if ep.Port <= 0 || ep.File == "" {
			return fmt.Errorf("inbound feed %s needs a port and a file", name)
		}
	}
	for name, ep := range outbound {
		if ep.Port <= 0 || ep.File == "" {
			return fmt.Errorf("outbound feed %s needs a port and a file", name)
		}
	}
	if c.GUI.ThrottleMS < 0 || c.GUI.MaxSamples < 0 {
		return fmt.Errorf("gui throttle and max samples must not be negative")
	}
	return nil
}

// Addr joins the feed host with an endpoint's port.
func (c *Config) Addr(ep FeedEndpoint) string {
	return fmt.Sprintf("%s:%d", c.Feeds.Host, ep.Port)
}

// GUIThrottle returns the GUI throttle interval as a duration.
func (c *Config) GUIThrottle() time.Duration {
	return time.Duration(c.GUI.ThrottleMS) * time.Millisecond
}
