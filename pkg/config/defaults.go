package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "wedmarket"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRedisAddr = ""
	DefaultRedisDB   = 0

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxRangeDays = 93
	// MinRangeDays is the span of one 42-cell month grid.
	MinRangeDays = 41
	DefaultTimeZone     = "UTC"

	DefaultFetchTimeout = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultDotEnvFile   = ".env"
)
