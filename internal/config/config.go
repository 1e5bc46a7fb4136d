package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// API stores Delika backend settings.
type API struct {
	// BaseURL is the root of the main rider API group.
	BaseURL string
	// TripsBaseURL is the root of the trips API group (rider on/off-trip marks).
	TripsBaseURL string
	// StandardPricingID is the fixed submission holding the reference prices.
	StandardPricingID string
	// Timeout bounds every single backend request.
	Timeout time.Duration
}

// Config stores rider client settings.
type Config struct {
	API       API
	TokenPath string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Config{
		API:       DefaultAPI(),
		TokenPath: DefaultTokenPath(),
	}

	if v := os.Getenv("DELIKA_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("DELIKA_TRIPS_BASE_URL"); v != "" {
		cfg.API.TripsBaseURL = v
	}
	if v := os.Getenv("DELIKA_STANDARD_PRICING_ID"); v != "" {
		cfg.API.StandardPricingID = v
	}
	if v := os.Getenv("DELIKA_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DELIKA_REQUEST_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("DELIKA_TOKEN_PATH"); v != "" {
		cfg.TokenPath = v
	}

	pflag.StringVar(&cfg.API.BaseURL, "api-base-url", cfg.API.BaseURL, "Delika API base URL")
	pflag.StringVar(&cfg.API.TripsBaseURL, "trips-base-url", cfg.API.TripsBaseURL, "Delika trips API base URL")
	pflag.DurationVar(&cfg.API.Timeout, "request-timeout", cfg.API.Timeout, "backend request timeout")
	pflag.StringVar(&cfg.TokenPath, "token-path", cfg.TokenPath, "path of the stored auth token")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	for _, base := range []string{cfg.API.BaseURL, cfg.API.TripsBaseURL} {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base URL: %q", base)
		}
	}
	if cfg.API.StandardPricingID == "" {
		return fmt.Errorf("standard pricing submission id is empty")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid request timeout: %v", cfg.API.Timeout)
	}
	if cfg.TokenPath == "" {
		return fmt.Errorf("token path is empty")
	}
	return nil
}
