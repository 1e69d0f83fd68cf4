package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if strings.TrimSpace(c.Auth.JWTIssuer) == "" {
		errs = append(errs, errors.New("auth.jwt_issuer is required"))
	}
	if c.Auth.ClockSkew < 0 {
		errs = append(errs, fmt.Errorf("auth.clock_skew must be >= 0 (got %v)", c.Auth.ClockSkew))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes))
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns))
	}

	if c.Redis.Enabled() {
		if u, err := url.Parse(c.Redis.URL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			errs = append(errs, errors.New("redis.url must be a redis:// or rediss:// URL"))
		}
		if c.Redis.ProfileTTL <= 0 {
			errs = append(errs, fmt.Errorf("redis.profile_ttl must be > 0 (got %v)", c.Redis.ProfileTTL))
		}
	}

	if err := c.Briefs.validate(); err != nil {
		errs = append(errs, fmt.Errorf("briefs: %w", err))
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	return errors.Join(errs...)
}

const maxPageSizeCeiling = 1000

func (b BriefsConfig) validate() error {
	if b.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", b.DefaultPageSize)
	}
	if b.MaxPageSize < b.DefaultPageSize {
		return fmt.Errorf("max_page_size (%d) must be >= default_page_size (%d)", b.MaxPageSize, b.DefaultPageSize)
	}
	if b.MaxPageSize > maxPageSizeCeiling {
		return fmt.Errorf("max_page_size must be <= %d (got %d)", maxPageSizeCeiling, b.MaxPageSize)
	}
	return nil
}
