package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Quote struct {
		BaseURL        string
		APIKey         string
		TimeoutSeconds int
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		SecureCookie    bool
	}
	Ledger struct {
		StartingCash string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/finance.db")
	v.SetDefault("quote.baseurl", "https://cloud.iexapis.com")
	v.SetDefault("quote.apikey", "")
	v.SetDefault("quote.timeoutseconds", 8)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("auth.securecookie", false)
	v.SetDefault("ledger.startingcash", "10000.00")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "finance-exports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	if err := v.BindEnv("quote.apikey", "FINANCE_QUOTE_APIKEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Quote.APIKey) == "" {
		errs = append(errs, errors.New("quote api key is required (API_KEY)"))
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth jwt secret is required"))
	}
	if _, err := c.StartingCash(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// StartingCash parses the balance credited to new accounts.
func (c Config) StartingCash() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Ledger.StartingCash)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger starting cash %q: %w", c.Ledger.StartingCash, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("ledger starting cash %q must not be negative", c.Ledger.StartingCash)
	}
	return d, nil
}

// QuoteTimeout is the per-request limit for price lookups.
func (c Config) QuoteTimeout() time.Duration {
	return time.Duration(c.Quote.TimeoutSeconds) * time.Second
}

// TokenTTL is the lifetime of a session token.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
