package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Flow names used as keys of LLM.Flows.
const (
	FlowWeb        = "web"
	FlowAdvisory   = "advisory"
	FlowCommentary = "commentary"
)

// FlowConfig holds the fixed sampling parameters of one prompt flow.
type FlowConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	temperatureSet bool
}

// UnmarshalYAML records whether temperature was given, since 0 is a valid value.
func (f *FlowConfig) UnmarshalYAML(n *yaml.Node) error {
	var raw struct {
		Model       string   `yaml:"model"`
		MaxTokens   int      `yaml:"max_tokens"`
		Temperature *float64 `yaml:"temperature"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	f.Model = raw.Model
	f.MaxTokens = raw.MaxTokens
	if raw.Temperature != nil {
		f.Temperature = *raw.Temperature
		f.temperatureSet = true
	}
	return nil
}

type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		CookieSecure   bool     `yaml:"cookie_secure"`
		SessionCookie  string   `yaml:"session_cookie"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Auth struct {
		Driver string `yaml:"driver"` // sqlite or postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"auth"`
	Session struct {
		Store    string        `yaml:"store"` // memory or redis
		RedisURL string        `yaml:"redis_url"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"session"`
	News struct {
		Provider string        `yaml:"provider"` // NEWSAPI, FINNHUB or SCRAPE
		BaseURL  string        `yaml:"base_url"`
		Category string        `yaml:"category"`
		Timeout  time.Duration `yaml:"timeout"`
		Scrape   struct {
			URL         string `yaml:"url"`
			Container   string `yaml:"container"`
			Title       string `yaml:"title"`
			Description string `yaml:"description"`
		} `yaml:"scrape"`
	} `yaml:"news"`
	Market struct {
		Provider string        `yaml:"provider"` // YAHOO, KITE or ALPACA
		BaseURL  string        `yaml:"base_url"`
		Period   string        `yaml:"period"`
		Exchange string        `yaml:"exchange"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"market"`
	LLM struct {
		Provider string                `yaml:"provider"` // OPENAI, CLAUDE or GEMINI
		BaseURL  string                `yaml:"base_url"`
		Timeout  time.Duration         `yaml:"timeout"`
		Flows    map[string]FlowConfig `yaml:"flows"`
	} `yaml:"llm"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.SessionCookie == "" {
		c.Server.SessionCookie = "fa_session"
	}
	if c.Auth.Driver == "" {
		c.Auth.Driver = "sqlite"
	}
	if c.Auth.DSN == "" && c.Auth.Driver == "sqlite" {
		c.Auth.DSN = "data/users.db"
	}
	if c.Auth.DSN == "" && c.Auth.Driver == "postgres" {
		c.Auth.DSN = os.Getenv("DATABASE_URL")
	}
	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}
	if c.Session.RedisURL == "" {
		c.Session.RedisURL = os.Getenv("REDIS_URL")
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.News.Provider == "" {
		c.News.Provider = "NEWSAPI"
	}
	if c.News.Category == "" {
		c.News.Category = "business"
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 30 * time.Second
	}
	if c.Market.Provider == "" {
		c.Market.Provider = "YAHOO"
	}
	if c.Market.Period == "" {
		c.Market.Period = "1y"
	}
	if c.Market.Exchange == "" {
		c.Market.Exchange = "NSE"
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 30 * time.Second
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "OPENAI"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	defaults := map[string]FlowConfig{
		FlowWeb:        {Model: "gpt-4", MaxTokens: 1500, Temperature: 0.2},
		FlowAdvisory:   {Model: "gpt-3.5-turbo", MaxTokens: 300, Temperature: 0.5},
		FlowCommentary: {Model: "gpt-3.5-turbo", MaxTokens: 300, Temperature: 0.5},
	}
	if c.LLM.Flows == nil {
		c.LLM.Flows = make(map[string]FlowConfig, len(defaults))
	}
	for name, def := range defaults {
		f := c.LLM.Flows[name]
		if f.Model == "" {
			f.Model = def.Model
		}
		if f.MaxTokens == 0 {
			f.MaxTokens = def.MaxTokens
		}
		if !f.temperatureSet {
			f.Temperature = def.Temperature
			f.temperatureSet = true
		}
		c.LLM.Flows[name] = f
	}
}

// Flow returns the parameters of a named flow.
func (c *Config) Flow(name string) FlowConfig {
	return c.LLM.Flows[name]
}

func (c *Config) Validate() error {
	if c.Auth.Driver != "sqlite" && c.Auth.Driver != "postgres" {
		return fmt.Errorf("invalid auth.driver '%s': must be 'sqlite' or 'postgres'", c.Auth.Driver)
	}
	if c.Auth.DSN == "" {
		return errors.New("auth.dsn cannot be empty")
	}
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("invalid session.store '%s': must be 'memory' or 'redis'", c.Session.Store)
	}
	if c.Session.Store == "redis" && c.Session.RedisURL == "" {
		return errors.New("session.redis_url (or REDIS_URL) is required for the redis session store")
	}
	switch c.News.Provider {
	case "NEWSAPI", "FINNHUB":
	case "SCRAPE":
		if c.News.Scrape.URL == "" || c.News.Scrape.Container == "" || c.News.Scrape.Title == "" {
			return errors.New("news.scrape requires url, container and title selectors")
		}
	default:
		return fmt.Errorf("invalid news.provider '%s': must be 'NEWSAPI', 'FINNHUB' or 'SCRAPE'", c.News.Provider)
	}
	if c.Market.Provider != "YAHOO" && c.Market.Provider != "KITE" && c.Market.Provider != "ALPACA" {
		return fmt.Errorf("invalid market.provider '%s': must be 'YAHOO', 'KITE' or 'ALPACA'", c.Market.Provider)
	}
	for name, f := range c.LLM.Flows {
		if f.MaxTokens <= 0 {
			return fmt.Errorf("llm.flows.%s.max_tokens must be positive, got %d", name, f.MaxTokens)
		}
		if f.Temperature < 0 || f.Temperature > 2 {
			return fmt.Errorf("llm.flows.%s.temperature must be between 0-2, got %.2f", name, f.Temperature)
		}
	}
	return nil
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
