package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is empty because every field names its variable explicitly.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv     = "SURVEYOPS_APP_ENV"
	EnvPort       = "SURVEYOPS_APP_PORT"
	EnvDBDSN      = "SURVEYOPS_DB_DSN"
	EnvDBHost     = "SURVEYOPS_DB_HOST"
	EnvDBUser     = "SURVEYOPS_DB_USER"
	EnvDBName     = "SURVEYOPS_DB_NAME"
	EnvRedisURL   = "SURVEYOPS_REDIS_URL"
	EnvJWTSecret  = "SURVEYOPS_JWT_SECRET"
	EnvJWTIssuer  = "SURVEYOPS_JWT_ISSUER"
	EnvJWTExpMins = "SURVEYOPS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"SURVEYOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"SURVEYOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SURVEYOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SURVEYOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SURVEYOPS_DB_DSN"`
	Driver string `envconfig:"SURVEYOPS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SURVEYOPS_DB_HOST"`
	LegacyPort     int    `envconfig:"SURVEYOPS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SURVEYOPS_DB_USER"`
	LegacyPassword string `envconfig:"SURVEYOPS_DB_PASSWORD"`
	LegacyName     string `envconfig:"SURVEYOPS_DB_NAME"`
	LegacySSLMode  string `envconfig:"SURVEYOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SURVEYOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SURVEYOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SURVEYOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SURVEYOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SURVEYOPS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SURVEYOPS_REDIS_ADDR"`
	Password     string        `envconfig:"SURVEYOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"SURVEYOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SURVEYOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SURVEYOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SURVEYOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SURVEYOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SURVEYOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SURVEYOPS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SURVEYOPS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SURVEYOPS_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiry returns the access token TTL.
func (j JWTConfig) Expiry() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SURVEYOPS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SURVEYOPS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SURVEYOPS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SURVEYOPS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SURVEYOPS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SURVEYOPS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate         bool `envconfig:"SURVEYOPS_AUTO_MIGRATE" default:"false"`
	SeedPredefinedRoles bool `envconfig:"SURVEYOPS_SEED_PREDEFINED_ROLES" default:"true"`
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
