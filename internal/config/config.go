package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Moderation   ModerationConfig   `yaml:"moderation"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	RefreshQueue RefreshQueueConfig `yaml:"refresh_queue"`
	Search       SearchConfig       `yaml:"search"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"Retry-After,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// LockTimeout bounds how long a statement waits on a row lock before the
	// store reports a transient error.
	LockTimeout    time.Duration `yaml:"lock_timeout"    env:"DATABASE_LOCK_TIMEOUT"    env-default:"5s"`
	MigrateOnStart bool          `yaml:"migrate_on_start" env:"DATABASE_MIGRATE_ON_START" env-default:"true"`
}

// AuthConfig holds access-token validation settings. Tokens are issued by
// the external session service.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"archimap"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ModerationConfig holds proposal store settings.
type ModerationConfig struct {
	ListDefaultLimit int `yaml:"list_default_limit" env:"MODERATION_LIST_DEFAULT_LIMIT" env-default:"2000"`
	ListMaxLimit     int `yaml:"list_max_limit"     env:"MODERATION_LIST_MAX_LIMIT"     env-default:"5000"`
	SubmitAttempts   int `yaml:"submit_attempts"    env:"MODERATION_SUBMIT_ATTEMPTS"    env-default:"3"`
}

// RateLimitConfig limits proposal submissions per client.
type RateLimitConfig struct {
	SubmitPerMinute int `yaml:"submit_per_minute" env:"RATE_LIMIT_SUBMIT_PER_MINUTE" env-default:"30"`
	Burst           int `yaml:"burst"             env:"RATE_LIMIT_BURST"             env-default:"10"`
}

// RefreshQueueConfig configures the search refresh queue. An empty URL
// disables it.
type RefreshQueueConfig struct {
	RedisURL string `yaml:"redis_url" env:"REFRESH_QUEUE_REDIS_URL"`
	Key      string `yaml:"key"       env:"REFRESH_QUEUE_KEY"       env-default:"archimap:search:refresh"`
}

// SearchConfig configures the search indexer process.
type SearchConfig struct {
	MeiliURL     string        `yaml:"meili_url"     env:"SEARCH_MEILI_URL"     env-default:"http://localhost:7700"`
	MeiliAPIKey  string        `yaml:"meili_api_key" env:"SEARCH_MEILI_API_KEY"`
	Index        string        `yaml:"index"         env:"SEARCH_INDEX"         env-default:"buildings"`
	PollInterval time.Duration `yaml:"poll_interval" env:"SEARCH_POLL_INTERVAL" env-default:"2s"`
	BatchSize    int           `yaml:"batch_size"    env:"SEARCH_BATCH_SIZE"    env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
