package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envPrefix:"HOSTEL_SERVER_"`
	Database   DatabaseConfig   `yaml:"database" envPrefix:"HOSTEL_DATABASE_"`
	Auth       AuthConfig       `yaml:"auth" envPrefix:"HOSTEL_AUTH_"`
	Booking    BookingConfig    `yaml:"booking" envPrefix:"HOSTEL_BOOKING_"`
	Seed       SeedConfig       `yaml:"seed" envPrefix:"HOSTEL_SEED_"`
	Push       PushConfig       `yaml:"push" envPrefix:"HOSTEL_PUSH_"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool" envPrefix:"HOSTEL_WORKER_POOL_"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port int `yaml:"port" env:"PORT"`
	// RateLimitPerSec applies to every API request, per client IP. Zero or
	// unset uses the default; a negative rate disables the limit.
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec" env:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst  int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
	// WriteRateLimitPerMin applies to public submissions (bookings, contact,
	// seed, login), with the same zero and negative rules.
	WriteRateLimitPerMin float64  `yaml:"write_rate_limit_per_min" env:"WRITE_RATE_LIMIT_PER_MIN"`
	WriteRateLimitBurst  int      `yaml:"write_rate_limit_burst" env:"WRITE_RATE_LIMIT_BURST"`
	CacheTTLSeconds      int      `yaml:"cache_ttl_seconds" env:"CACHE_TTL_SECONDS"`
	CORSOrigins          []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	// TrustedProxies are the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the peer address is the client IP.
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" envSeparator:","`
	LogLevel       string   `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string   `yaml:"log_format" env:"LOG_FORMAT"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver                 string `yaml:"driver" env:"DRIVER"`
	DSN                    string `yaml:"dsn" env:"DSN"`
	MaxOpenConns           int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns           int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes" env:"CONN_MAX_LIFETIME_MINUTES"`
	LogLevel               string `yaml:"log_level" env:"LOG_LEVEL"`
}

// AuthConfig holds operator credential settings.
type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer        string        `yaml:"issuer" env:"ISSUER"`
	TokenTTLHours int           `yaml:"token_ttl_hours" env:"TOKEN_TTL_HOURS"`
	TokenTTL      time.Duration `yaml:"-" env:"-"`
}

// BookingConfig holds booking workflow settings.
type BookingConfig struct {
	// Timezone decides what "today" means for move-in date checks.
	Timezone         string `yaml:"timezone" env:"TIMEZONE"`
	CapacityTracking bool   `yaml:"capacity_tracking" env:"CAPACITY_TRACKING"`
}

// SeedConfig holds the bootstrap operator created by the seed endpoint.
type SeedConfig struct {
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
	AdminName     string `yaml:"admin_name" env:"ADMIN_NAME"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key" env:"VAPID_PUBLIC_KEY"`
	PrivateKey string `yaml:"vapid_private_key" env:"VAPID_PRIVATE_KEY"`
	Subject    string `yaml:"subject" env:"SUBJECT"`
	TTL        int    `yaml:"ttl" env:"TTL"`
}

// Enabled reports whether both VAPID keys are present.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size" env:"SIZE"`
}

const minJWTSecretLen = 32

// Load reads the configuration from the given path, then applies
// HOSTEL_* environment overrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8001
	}
	cfg.Server.RateLimitPerSec = rateOrDefault(cfg.Server.RateLimitPerSec, 10)
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 20
	}
	cfg.Server.WriteRateLimitPerMin = rateOrDefault(cfg.Server.WriteRateLimitPerMin, 6)
	if cfg.Server.WriteRateLimitBurst <= 0 {
		cfg.Server.WriteRateLimitBurst = 3
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.LogFormat == "" {
		cfg.Server.LogFormat = "json"
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "hostel-booking"
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	cfg.Auth.TokenTTL = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "UTC"
	}

	if cfg.Seed.AdminName == "" {
		cfg.Seed.AdminName = "Admin"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
}

// rateOrDefault maps an unset rate to def and a negative one to 0, which
// the router treats as unlimited.
func rateOrDefault(v, def float64) float64 {
	switch {
	case v < 0:
		return 0
	case v == 0:
		return def
	}
	return v
}

// Validate rejects configurations the server cannot start with.
func (cfg *Config) Validate() error {
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	for _, p := range cfg.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("server.trusted_proxies: %q is not an IP or CIDR", p)
			}
		}
	}
	if len(cfg.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d bytes", minJWTSecretLen)
	}
	if _, err := time.LoadLocation(cfg.Booking.Timezone); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if (cfg.Seed.AdminEmail == "") != (cfg.Seed.AdminPassword == "") {
		return errors.New("seed.admin_email and seed.admin_password must be set together")
	}
	return nil
}
