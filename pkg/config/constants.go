package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMySQL    = "mysql"

	EventsDriverMemory = "memory"
	EventsDriverRedis  = "redis"
)

const (
	EnvAppEnv              = "STOREFRONT_APP_ENV"
	EnvPort                = "STOREFRONT_APP_PORT"
	EnvStorageDriver       = "STOREFRONT_STORAGE_DRIVER"
	EnvStorageQuotaBytes   = "STOREFRONT_STORAGE_QUOTA_BYTES"
	EnvEventsDriver        = "STOREFRONT_EVENTS_DRIVER"
	EnvDBDSN               = "STOREFRONT_DB_DSN"
	EnvRedisURL            = "STOREFRONT_REDIS_URL"
	EnvRedisAddr           = "STOREFRONT_REDIS_ADDR"
	EnvCatalogTruncateKeep = "STOREFRONT_CATALOG_TRUNCATE_KEEP"
	EnvCORSAllowedOrigins  = "STOREFRONT_CORS_ALLOWED_ORIGINS"
)

const (
	DefaultCatalogTruncateKeep       = 5
	DefaultCatalogMaxSecondaryImages = 2
)
