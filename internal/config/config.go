package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the note augmentation core. Every
// credential is optional: an absent key disables the corresponding
// provider instead of failing validation, so the system degrades to
// whatever no-credential sources remain.
type Config struct {
	// API keys for credentialed providers
	AlphavantageAPIKey string `mapstructure:"alphavantage_api_key"`
	FinnhubAPIKey      string `mapstructure:"finnhub_api_key"`
	NewsAPIKey         string `mapstructure:"newsapi_api_key"`
	SocialBearerToken  string `mapstructure:"social_bearer_token"`

	// Base URLs for API endpoints (configurable for testing)
	ChartBaseURL        string `mapstructure:"chart_base_url"`
	AlphavantageBaseURL string `mapstructure:"alphavantage_base_url"`
	FinnhubBaseURL      string `mapstructure:"finnhub_base_url"`
	CoingeckoBaseURL    string `mapstructure:"coingecko_base_url"`
	NewsAPIBaseURL      string `mapstructure:"newsapi_base_url"`
	NewsFeedBaseURL     string `mapstructure:"news_feed_base_url"`
	SocialAPIBaseURL    string `mapstructure:"social_api_base_url"`
	PredictiveBaseURL   string `mapstructure:"predictive_base_url"`
	ManifoldBaseURL     string `mapstructure:"manifold_base_url"`

	// Social syndication mirror hosts; the primary is tried first, the
	// fallback only when the primary yields nothing.
	SocialMirrorHost         string `mapstructure:"social_mirror_host"`
	SocialMirrorFallbackHost string `mapstructure:"social_mirror_fallback_host"`

	// Cache TTL overrides for the two domain classes
	FinancialTTL time.Duration `mapstructure:"financial_ttl"`
	NewsTTL      time.Duration `mapstructure:"news_ttl"`

	// Per-request timeout applied to every provider call
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables (all optional):
//   - ALPHAVANTAGE_API_KEY
//   - FINNHUB_API_KEY
//   - NEWSAPI_API_KEY
//   - SOCIAL_BEARER_TOKEN
//   - *_BASE_URL overrides for each provider endpoint
//   - FINANCIAL_TTL / NEWS_TTL cache overrides
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.AutomaticEnv()

	// Set defaults for base URLs
	v.SetDefault("chart_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("finnhub_base_url", "https://finnhub.io/api/v1")
	v.SetDefault("coingecko_base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("newsapi_base_url", "https://newsapi.org/v2")
	v.SetDefault("news_feed_base_url", "https://news.google.com")
	v.SetDefault("social_api_base_url", "https://api.twitter.com/2")
	v.SetDefault("predictive_base_url", "https://gamma-api.polymarket.com")
	v.SetDefault("manifold_base_url", "https://api.manifold.markets")
	v.SetDefault("social_mirror_host", "https://nitter.net")
	v.SetDefault("social_mirror_fallback_host", "https://nitter.poast.org")

	// Cache TTLs: short class for financial, long class for news/social
	v.SetDefault("financial_ttl", "5m")
	v.SetDefault("news_ttl", "15m")
	v.SetDefault("request_timeout", "8s")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.notes-augment")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables for API keys
	v.BindEnv("alphavantage_api_key", "ALPHAVANTAGE_API_KEY")
	v.BindEnv("finnhub_api_key", "FINNHUB_API_KEY")
	v.BindEnv("newsapi_api_key", "NEWSAPI_API_KEY")
	v.BindEnv("social_bearer_token", "SOCIAL_BEARER_TOKEN")

	// Bind environment variables for base URLs and TTLs
	v.BindEnv("chart_base_url", "CHART_BASE_URL")
	v.BindEnv("alphavantage_base_url", "ALPHAVANTAGE_BASE_URL")
	v.BindEnv("finnhub_base_url", "FINNHUB_BASE_URL")
	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("newsapi_base_url", "NEWSAPI_BASE_URL")
	v.BindEnv("news_feed_base_url", "NEWS_FEED_BASE_URL")
	v.BindEnv("social_api_base_url", "SOCIAL_API_BASE_URL")
	v.BindEnv("predictive_base_url", "PREDICTIVE_BASE_URL")
	v.BindEnv("manifold_base_url", "MANIFOLD_BASE_URL")
	v.BindEnv("social_mirror_host", "SOCIAL_MIRROR_HOST")
	v.BindEnv("social_mirror_fallback_host", "SOCIAL_MIRROR_FALLBACK_HOST")
	v.BindEnv("financial_ttl", "FINANCIAL_TTL")
	v.BindEnv("news_ttl", "NEWS_TTL")
	v.BindEnv("request_timeout", "REQUEST_TIMEOUT")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.FinancialTTL <= 0 {
		config.FinancialTTL = 5 * time.Minute
	}
	if config.NewsTTL <= 0 {
		config.NewsTTL = 15 * time.Minute
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 8 * time.Second
	}

	return config, nil
}
