package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Events  EventsConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port            string        `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"STOREFRONT_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the backend that plays the role of the browser storage origin.
type StorageConfig struct {
	Driver      string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"memory"`
	Namespace   string `envconfig:"STOREFRONT_STORAGE_NAMESPACE" default:"storefront"`
	QuotaBytes  int    `envconfig:"STOREFRONT_STORAGE_QUOTA_BYTES" default:"5242880"`
	AutoMigrate bool   `envconfig:"STOREFRONT_STORAGE_AUTO_MIGRATE" default:"false"`
}

// DriverName returns the lower-cased storage driver.
func (s StorageConfig) DriverName() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

// IsSQL reports whether the driver is served by the gorm document table.
func (s StorageConfig) IsSQL() bool {
	switch s.DriverName() {
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMySQL:
		return true
	}
	return false
}

type EventsConfig struct {
	Driver        string `envconfig:"STOREFRONT_EVENTS_DRIVER" default:"memory"`
	ChannelPrefix string `envconfig:"STOREFRONT_EVENTS_CHANNEL_PREFIX" default:"storefront:changes"`
}

// DriverName returns the lower-cased broker driver.
func (e EventsConfig) DriverName() string {
	return strings.ToLower(strings.TrimSpace(e.Driver))
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a redis endpoint was provided.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// CatalogConfig tunes the product catalog and the admin editor's storage degradation.
type CatalogConfig struct {
	LegacyKey          string `envconfig:"STOREFRONT_CATALOG_LEGACY_KEY" default:"storeProducts"`
	TruncateKeep       int    `envconfig:"STOREFRONT_CATALOG_TRUNCATE_KEEP" default:"5"`
	MaxSecondaryImages int    `envconfig:"STOREFRONT_CATALOG_MAX_SECONDARY_IMAGES" default:"2"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (c *Config) validate() error {
	switch c.Storage.DriverName() {
	case StorageDriverMemory:
	case StorageDriverRedis:
		if !c.Redis.Configured() {
			return fmt.Errorf("%s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMySQL:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required for the %s storage driver", EnvDBDSN, c.Storage.DriverName())
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	switch c.Events.DriverName() {
	case EventsDriverMemory:
	case EventsDriverRedis:
		if !c.Redis.Configured() {
			return fmt.Errorf("%s or %s is required for the redis events driver", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported events driver %q", c.Events.Driver)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("%s must not be negative", EnvStorageQuotaBytes)
	}
	if c.Catalog.TruncateKeep <= 0 {
		return fmt.Errorf("%s must be positive", EnvCatalogTruncateKeep)
	}
	return nil
}
