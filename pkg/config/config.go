package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "NIGHTMARKET"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "NIGHTMARKET_DB_DSN"
	EnvDBHost = "NIGHTMARKET_DB_HOST"
	EnvDBUser = "NIGHTMARKET_DB_USER"
	EnvDBName = "NIGHTMARKET_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Maps         MapsConfig
	Cache        CacheConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NIGHTMARKET_APP_ENV" default:"development"`
	Port         string `envconfig:"NIGHTMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NIGHTMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NIGHTMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NIGHTMARKET_DB_DSN"`
	Driver string `envconfig:"NIGHTMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NIGHTMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"NIGHTMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NIGHTMARKET_DB_USER"`
	LegacyPassword string `envconfig:"NIGHTMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"NIGHTMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"NIGHTMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NIGHTMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NIGHTMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NIGHTMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NIGHTMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NIGHTMARKET_REDIS_URL"`
	Address      string        `envconfig:"NIGHTMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"NIGHTMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"NIGHTMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NIGHTMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NIGHTMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NIGHTMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NIGHTMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NIGHTMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether any Redis endpoint was supplied. The cache layer
// is optional; the API runs uncached when this is false.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

// MapsConfig carries the map-provider credentials handed to the explorer
// frontend. An empty token degrades the map widget, never the API.
type MapsConfig struct {
	AccessToken string `envconfig:"NIGHTMARKET_MAPBOX_ACCESS_TOKEN"`
	Style       string `envconfig:"NIGHTMARKET_MAPBOX_STYLE" default:"mapbox://styles/mapbox/streets-v12"`
}

type CacheConfig struct {
	ListTTL   time.Duration `envconfig:"NIGHTMARKET_CACHE_LIST_TTL" default:"5m"`
	DetailTTL time.Duration `envconfig:"NIGHTMARKET_CACHE_DETAIL_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NIGHTMARKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NIGHTMARKET_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	// SQLite mode takes a file path, not a postgres URL.
	if strings.EqualFold(db.Driver, "sqlite") {
		db.DSN = "nightmarket.db"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
