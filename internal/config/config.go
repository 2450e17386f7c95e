package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port             string
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	LogLevel         string
	LogFormat        string
	CORSAllowOrigins []string

	YahooBaseURL     string
	BinanceBaseURL   string
	FetchTimeoutSecs int
	SeriesCacheSecs  int
	PriceCacheSecs   int
	QuoteWarmSpec    string

	CalibrationThreshold float64
	ReasonLimit          int
	StrategyConfigPath   string

	MCPTransport          string
	MCPHTTPEnabled        bool
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int
}

const (
	DefaultYahooBaseURL   = "https://query1.finance.yahoo.com"
	DefaultBinanceBaseURL = "https://api.binance.com"
	DefaultQuoteWarmSpec  = "@every 30s"
)

func Load() *Config {
	cfg := &Config{
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		MCPAuthToken:       os.Getenv("MCP_AUTH_TOKEN"),
		StrategyConfigPath: strings.TrimSpace(os.Getenv("STRATEGY_CONFIG_PATH")),
	}

	if cfg.TelegramBotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, telegram bot disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL not set, bar archive disabled")
	}
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat != "console" {
		cfg.LogFormat = "json"
	}

	cfg.CORSAllowOrigins = splitList(os.Getenv("CORS_ALLOW_ORIGINS"))
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}

	cfg.YahooBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("YAHOO_BASE_URL")), "/")
	if cfg.YahooBaseURL == "" {
		cfg.YahooBaseURL = DefaultYahooBaseURL
	}
	cfg.BinanceBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BINANCE_BASE_URL")), "/")
	if cfg.BinanceBaseURL == "" {
		cfg.BinanceBaseURL = DefaultBinanceBaseURL
	}

	cfg.FetchTimeoutSecs = positiveInt("FETCH_TIMEOUT_SECS", 10)
	cfg.SeriesCacheSecs = positiveInt("SERIES_CACHE_SECS", 60)
	cfg.PriceCacheSecs = positiveInt("PRICE_CACHE_SECS", 10)

	cfg.QuoteWarmSpec = DefaultQuoteWarmSpec
	if v, ok := os.LookupEnv("QUOTE_WARM_SPEC"); ok {
		v = strings.TrimSpace(v)
		switch {
		case v == "" || strings.EqualFold(v, "off"):
			cfg.QuoteWarmSpec = ""
		case validSchedule(v):
			cfg.QuoteWarmSpec = v
		default:
			log.Warn().Str("value", v).Str("default", DefaultQuoteWarmSpec).Msg("invalid QUOTE_WARM_SPEC, using default")
		}
	}

	cfg.CalibrationThreshold = 0.5
	if v := strings.TrimSpace(os.Getenv("CALIBRATION_THRESHOLD")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			cfg.CalibrationThreshold = n
		} else {
			log.Warn().Str("value", v).Msg("invalid CALIBRATION_THRESHOLD, defaulting to 0.5")
		}
	}

	cfg.ReasonLimit = positiveInt("REASON_LIMIT", 3)

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Warn().Str("value", cfg.MCPTransport).Msg("unsupported MCP_TRANSPORT, defaulting to stdio")
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPEnabled = strings.EqualFold(strings.TrimSpace(os.Getenv("MCP_HTTP_ENABLED")), "true")

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}

	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 15)
	cfg.MCPRateLimitPerMin = positiveInt("MCP_RATE_LIMIT_PER_MIN", 60)

	return cfg
}

func validSchedule(spec string) bool {
	_, err := cron.ParseStandard(spec)
	return err == nil
}

func positiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("invalid value, using default")
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
