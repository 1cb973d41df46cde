package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "CMBEAUTY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "CMBEAUTY_DB_DSN"
	EnvDBHost = "CMBEAUTY_DB_HOST"
	EnvDBUser = "CMBEAUTY_DB_USER"
	EnvDBName = "CMBEAUTY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Checkout     CheckoutConfig
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
	Env          string `envconfig:"CMBEAUTY_APP_ENV" required:"true"`
	Port         string `envconfig:"CMBEAUTY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CMBEAUTY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CMBEAUTY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CMBEAUTY_DB_DSN"`

	LegacyHost     string `envconfig:"CMBEAUTY_DB_HOST"`
	LegacyPort     int    `envconfig:"CMBEAUTY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CMBEAUTY_DB_USER"`
	LegacyPassword string `envconfig:"CMBEAUTY_DB_PASSWORD"`
	LegacyName     string `envconfig:"CMBEAUTY_DB_NAME"`
	LegacySSLMode  string `envconfig:"CMBEAUTY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CMBEAUTY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CMBEAUTY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CMBEAUTY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CMBEAUTY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CMBEAUTY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CMBEAUTY_REDIS_ADDR"`
	Password     string        `envconfig:"CMBEAUTY_REDIS_PASSWORD"`
	DB           int           `envconfig:"CMBEAUTY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CMBEAUTY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CMBEAUTY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CMBEAUTY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CMBEAUTY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CMBEAUTY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CMBEAUTY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CMBEAUTY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CMBEAUTY_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"CMBEAUTY_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CMBEAUTY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CMBEAUTY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CMBEAUTY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CMBEAUTY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CMBEAUTY_ARGON_KEY_LEN" default:"32"`
}

type CheckoutConfig struct {
	ConfirmationAttempts int `envconfig:"CMBEAUTY_CHECKOUT_CONFIRMATION_ATTEMPTS" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CMBEAUTY_AUTO_MIGRATE" default:"false"`
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
