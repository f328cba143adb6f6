package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Identity      IdentityConfig
	Mail          MailConfig
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
	Env          string `envconfig:"STRIDEKART_APP_ENV" required:"true"`
	Port         string `envconfig:"STRIDEKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STRIDEKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STRIDEKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STRIDEKART_DB_DSN"`
	Driver string `envconfig:"STRIDEKART_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STRIDEKART_DB_HOST"`
	Port     int    `envconfig:"STRIDEKART_DB_PORT" default:"5432"`
	User     string `envconfig:"STRIDEKART_DB_USER"`
	Password string `envconfig:"STRIDEKART_DB_PASSWORD"`
	Name     string `envconfig:"STRIDEKART_DB_NAME"`
	SSLMode  string `envconfig:"STRIDEKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STRIDEKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STRIDEKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STRIDEKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STRIDEKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either STRIDEKART_DB_DSN or host/user/name settings are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STRIDEKART_REDIS_URL" required:"true"`
	Password     string        `envconfig:"STRIDEKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"STRIDEKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STRIDEKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STRIDEKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STRIDEKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STRIDEKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STRIDEKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STRIDEKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STRIDEKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STRIDEKART_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"STRIDEKART_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STRIDEKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STRIDEKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STRIDEKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STRIDEKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STRIDEKART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"STRIDEKART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// IdentityConfig points at the external identity provider used for customer login.
type IdentityConfig struct {
	Issuer         string        `envconfig:"STRIDEKART_IDENTITY_ISSUER" required:"true"`
	Audience       string        `envconfig:"STRIDEKART_IDENTITY_AUDIENCE" required:"true"`
	JWKSURL        string        `envconfig:"STRIDEKART_IDENTITY_JWKS_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"STRIDEKART_IDENTITY_REQUEST_TIMEOUT" default:"10s"`
	KeyCacheTTL    time.Duration `envconfig:"STRIDEKART_IDENTITY_KEY_CACHE_TTL" default:"1h"`
}

type MailConfig struct {
	Host     string `envconfig:"STRIDEKART_SMTP_HOST"`
	Port     int    `envconfig:"STRIDEKART_SMTP_PORT" default:"587"`
	Username string `envconfig:"STRIDEKART_SMTP_USERNAME"`
	Password string `envconfig:"STRIDEKART_SMTP_PASSWORD"`
	From     string `envconfig:"STRIDEKART_SMTP_FROM"`
}

// Enabled reports whether outbound mail is configured at all.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STRIDEKART_AUTO_MIGRATE" default:"false"`
}
