package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config holds all user-facing configuration for attraction-scout.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	Scrape ScrapeConfig `toml:"scrape"`
	Cache  CacheConfig  `toml:"cache"`
	Verify VerifyConfig `toml:"verify"`
	Chat   ChatConfig   `toml:"chat"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type ScrapeConfig struct {
	BaseURL        string  `toml:"base_url"`
	UserAgent      string  `toml:"user_agent"`
	Accept         string  `toml:"accept"`
	AcceptLanguage string  `toml:"accept_language"`
	RateLimit      float64 `toml:"rate_limit"`
	MaxPages       int     `toml:"max_pages"`
	PageDelay      string  `toml:"page_delay"`
	Timeout        string  `toml:"timeout"`
}

type CacheConfig struct {
	TTL        string `toml:"ttl"`
	MaxEntries int    `toml:"max_entries"`
}

type VerifyConfig struct {
	MaxAttempts int    `toml:"max_attempts"`
	RetryDelay  string `toml:"retry_delay"`
}

type ChatConfig struct {
	BaseURL      string `toml:"base_url"`
	Model        string `toml:"model"`
	APIKeyEnv    string `toml:"api_key_env"`
	SystemPrompt string `toml:"system_prompt"`
}

const (
	defaultTimeout    = 30 * time.Second
	defaultTTL        = 24 * time.Hour
	defaultRetryDelay = time.Second
	defaultPageDelay  = time.Second
)

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:   DataConfig{Dir: filepath.Join(xdg.DataHome, "attraction-scout")},
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Scrape: ScrapeConfig{
			BaseURL:   "https://www.tripadvisor.cn",
			RateLimit: 1.0,
			MaxPages:  5,
			PageDelay: defaultPageDelay.String(),
			Timeout:   defaultTimeout.String(),
		},
		Cache:  CacheConfig{TTL: defaultTTL.String()},
		Verify: VerifyConfig{MaxAttempts: 3, RetryDelay: defaultRetryDelay.String()},
		Chat: ChatConfig{
			BaseURL:   "https://api.siliconflow.cn/v1/chat/completions",
			Model:     "Qwen/Qwen2.5-7B-Instruct",
			APIKeyEnv: "SILICON_API_KEY",
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FetchTimeout is the per-request HTTP timeout.
func (s ScrapeConfig) FetchTimeout() time.Duration {
	return parseDuration(s.Timeout, defaultTimeout)
}

// Pause is the fixed wait before each listing page after the first.
func (s ScrapeConfig) Pause() time.Duration {
	return parseDuration(s.PageDelay, defaultPageDelay)
}

// Expiry is how long a cached lookup stays fresh.
func (c CacheConfig) Expiry() time.Duration {
	return parseDuration(c.TTL, defaultTTL)
}

// Delay is the fixed wait between verification attempts.
func (v VerifyConfig) Delay() time.Duration {
	return parseDuration(v.RetryDelay, defaultRetryDelay)
}

// APIKey reads the chat API key from the configured environment variable.
func (c ChatConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
