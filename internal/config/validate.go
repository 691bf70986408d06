package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("database.lock_timeout must be >= 0 (got %s)", c.Database.LockTimeout)
	}

	if err := c.Moderation.validate(); err != nil {
		return fmt.Errorf("moderation: %w", err)
	}

	if c.RateLimit.SubmitPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit: submit_per_minute and burst must be > 0")
	}

	if c.RefreshQueue.RedisURL != "" && strings.TrimSpace(c.RefreshQueue.Key) == "" {
		return fmt.Errorf("refresh_queue.key must be set when redis_url is configured")
	}

	if c.Search.BatchSize <= 0 {
		return fmt.Errorf("search.batch_size must be > 0 (got %d)", c.Search.BatchSize)
	}

	return nil
}

func (m *ModerationConfig) validate() error {
	if m.ListMaxLimit < 1 {
		return fmt.Errorf("list_max_limit must be >= 1 (got %d)", m.ListMaxLimit)
	}
	if m.ListDefaultLimit < 1 || m.ListDefaultLimit > m.ListMaxLimit {
		return fmt.Errorf("list_default_limit must be in 1..%d (got %d)", m.ListMaxLimit, m.ListDefaultLimit)
	}
	if m.SubmitAttempts < 1 {
		return fmt.Errorf("submit_attempts must be >= 1 (got %d)", m.SubmitAttempts)
	}
	return nil
}

// ClampLimit applies the configured default and maximum to a requested
// list limit. Zero or negative means the default.
func (m ModerationConfig) ClampLimit(requested int) int {
	if requested <= 0 {
		return m.ListDefaultLimit
	}
	if requested > m.ListMaxLimit {
		return m.ListMaxLimit
	}
	return requested
}
