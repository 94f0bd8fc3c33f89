package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "pgstay"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort     = "8080"
	DefaultLogLevel = "info"
	DefaultDotEnv   = ".env"

	DefaultLastFiltersTTL         = 30 * time.Minute
	DefaultCatalogRefreshSchedule = "@every 5m"
	DefaultSessionTTL             = 2 * time.Hour
	DefaultDefaultMaxRent         = 50000
	DefaultTimeZone               = "Asia/Kolkata"

	DefaultKafkaEnabled   = false
	DefaultEventsTopic    = "pgstay.marketplace.events"
	DefaultEventsDLQTopic = "pgstay.marketplace.events.dlq"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
