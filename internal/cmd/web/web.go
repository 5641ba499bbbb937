// Package web parses web service flags and launches the browser API.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/eighthwonder/eighthwonder/internal/platform/cmd"
	"github.com/eighthwonder/eighthwonder/internal/platform/logging"
	"github.com/eighthwonder/eighthwonder/internal/platform/otel"
	"github.com/eighthwonder/eighthwonder/internal/services/web"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/wow"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr       string        `env:"EIGHTH_WONDER_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	BackendURL     string        `env:"EIGHTH_WONDER_WEB_BACKEND_URL" envDefault:"http://localhost:5000"`
	BackendTimeout time.Duration `env:"EIGHTH_WONDER_WEB_BACKEND_TIMEOUT" envDefault:"10s"`
	CDNBaseURL     string        `env:"EIGHTH_WONDER_WEB_CDN_BASE_URL"`
	CachePath      string        `env:"EIGHTH_WONDER_WEB_CACHE_PATH" envDefault:"data/web-cache.db"`
	RedisAddr      string        `env:"EIGHTH_WONDER_WEB_REDIS_ADDR"`
	SessionSecret  string        `env:"EIGHTH_WONDER_WEB_SESSION_SECRET"`
	SessionTTL     time.Duration `env:"EIGHTH_WONDER_WEB_SESSION_TTL" envDefault:"24h"`

	RegionsCacheTTL    time.Duration `env:"EIGHTH_WONDER_WEB_REGIONS_CACHE_TTL" envDefault:"24h"`
	RealmsCacheTTL     time.Duration `env:"EIGHTH_WONDER_WEB_REALMS_CACHE_TTL" envDefault:"24h"`
	CharactersCacheTTL time.Duration `env:"EIGHTH_WONDER_WEB_CHARACTERS_CACHE_TTL" envDefault:"5m"`

	LogLevel  string `env:"EIGHTH_WONDER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"EIGHTH_WONDER_LOG_FORMAT" envDefault:"text"`

	Telemetry otel.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Guild backend base URL")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "Timeout for each backend request")
	fs.StringVar(&cfg.CDNBaseURL, "cdn-base-url", cfg.CDNBaseURL, "Image CDN base URL")
	fs.StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "SQLite response cache path (empty disables it)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for a shared response cache")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret signing the session cookie")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Visitor session lifetime")
	fs.DurationVar(&cfg.RegionsCacheTTL, "regions-cache-ttl", cfg.RegionsCacheTTL, "Cache lifetime of the region list")
	fs.DurationVar(&cfg.RealmsCacheTTL, "realms-cache-ttl", cfg.RealmsCacheTTL, "Cache lifetime of realm lists")
	fs.DurationVar(&cfg.CharactersCacheTTL, "characters-cache-ttl", cfg.CharactersCacheTTL, "Cache lifetime of character lookups")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")
	fs.StringVar(&cfg.Telemetry.Endpoint, "otel-endpoint", cfg.Telemetry.Endpoint, "OTLP HTTP collector endpoint (empty disables tracing)")
	fs.Float64Var(&cfg.Telemetry.SampleRatio, "otel-sample-ratio", cfg.Telemetry.SampleRatio, "Share of root requests traced, 0 to 1")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig maps the command configuration onto the web server inputs.
func (cfg Config) ServerConfig() web.Config {
	return web.Config{
		HTTPAddr:       cfg.HTTPAddr,
		BackendURL:     cfg.BackendURL,
		BackendTimeout: cfg.BackendTimeout,
		CDNBaseURL:     cfg.CDNBaseURL,
		CachePath:      cfg.CachePath,
		RedisAddr:      cfg.RedisAddr,
		SessionSecret:  cfg.SessionSecret,
		SessionTTL:     cfg.SessionTTL,
		CacheTTLs: wow.CacheTTLs{
			Regions:    cfg.RegionsCacheTTL,
			Realms:     cfg.RealmsCacheTTL,
			Characters: cfg.CharactersCacheTTL,
		},
	}
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	options := entrypoint.RunOptions{Telemetry: &cfg.Telemetry}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, options, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, cfg.ServerConfig())
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
