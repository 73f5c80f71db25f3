package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Realtime     RealtimeConfig
	Reconcile    ReconcileConfig
	RateLimit    RateLimitConfig
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
	Env          string `envconfig:"SYNAPSE_APP_ENV" required:"true"`
	Port         string `envconfig:"SYNAPSE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SYNAPSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SYNAPSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SYNAPSE_DB_DSN"`
	Driver string `envconfig:"SYNAPSE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SYNAPSE_DB_HOST"`
	LegacyPort     int    `envconfig:"SYNAPSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SYNAPSE_DB_USER"`
	LegacyPassword string `envconfig:"SYNAPSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SYNAPSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SYNAPSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SYNAPSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SYNAPSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SYNAPSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SYNAPSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SYNAPSE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SYNAPSE_REDIS_ADDR"`
	Password     string        `envconfig:"SYNAPSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SYNAPSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SYNAPSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SYNAPSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SYNAPSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SYNAPSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SYNAPSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SYNAPSE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SYNAPSE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SYNAPSE_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"SYNAPSE_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the access-session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SYNAPSE_AUTO_MIGRATE" default:"false"`
}

type RealtimeConfig struct {
	PresenceTTL time.Duration `envconfig:"SYNAPSE_REALTIME_PRESENCE_TTL" default:"90s"`
	ChannelName string        `envconfig:"SYNAPSE_REALTIME_CHANNEL" default:"chat-events"`
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"SYNAPSE_RATE_LIMIT_ENABLED" default:"true"`
	Limit   int64         `envconfig:"SYNAPSE_RATE_LIMIT_REQUESTS" default:"120"`
	Window  time.Duration `envconfig:"SYNAPSE_RATE_LIMIT_WINDOW" default:"1m"`
}

type ReconcileConfig struct {
	Interval  time.Duration `envconfig:"SYNAPSE_RECONCILE_INTERVAL" default:"10m"`
	BatchSize int           `envconfig:"SYNAPSE_RECONCILE_BATCH_SIZE" default:"200"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
