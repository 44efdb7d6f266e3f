package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Stripe        StripeConfig
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
	Env          string `envconfig:"MINISHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"MINISHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MINISHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MINISHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MINISHOP_DB_DSN"`
	Driver string `envconfig:"MINISHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MINISHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"MINISHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MINISHOP_DB_USER"`
	LegacyPassword string `envconfig:"MINISHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"MINISHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"MINISHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MINISHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MINISHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MINISHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MINISHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MINISHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MINISHOP_REDIS_ADDR"`
	Password     string        `envconfig:"MINISHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"MINISHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MINISHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MINISHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MINISHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MINISHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MINISHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MINISHOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MINISHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MINISHOP_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"MINISHOP_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MINISHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MINISHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MINISHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MINISHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MINISHOP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MINISHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MINISHOP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MINISHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MINISHOP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MINISHOP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MINISHOP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"MINISHOP_AUTO_MIGRATE" default:"false"`
	SeedDemoData bool `envconfig:"MINISHOP_SEED_DEMO_DATA" default:"false"`
}

type StripeConfig struct {
	SecretKey      string        `envconfig:"MINISHOP_STRIPE_SECRET_KEY"`
	PublishableKey string        `envconfig:"MINISHOP_STRIPE_PUBLISHABLE_KEY"`
	Currency       string        `envconfig:"MINISHOP_STRIPE_CURRENCY" default:"inr"`
	Timeout        time.Duration `envconfig:"MINISHOP_STRIPE_TIMEOUT" default:"10s"`
}

// Configured reports whether both gateway credentials are present. Absence
// selects the simulated checkout path and is not an error.
func (s StripeConfig) Configured() bool {
	return strings.TrimSpace(s.SecretKey) != "" && strings.TrimSpace(s.PublishableKey) != ""
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
