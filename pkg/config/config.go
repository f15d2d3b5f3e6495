package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "LEADFLOW"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
	Telegram      TelegramConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	// envconfig's required tag accepts a set-but-empty variable.
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("LEADFLOW_JWT_SECRET must not be empty")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LEADFLOW_APP_ENV" default:"development"`
	Port         string `envconfig:"LEADFLOW_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"LEADFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEADFLOW_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"LEADFLOW_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LEADFLOW_DB_DSN"`
	Driver string `envconfig:"LEADFLOW_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"LEADFLOW_DB_HOST"`
	Port     int    `envconfig:"LEADFLOW_DB_PORT" default:"5432"`
	User     string `envconfig:"LEADFLOW_DB_USER"`
	Password string `envconfig:"LEADFLOW_DB_PASSWORD"`
	Name     string `envconfig:"LEADFLOW_DB_NAME"`
	SSLMode  string `envconfig:"LEADFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEADFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEADFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEADFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEADFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"LEADFLOW_DB_AUTO_MIGRATE" default:"false"`
}

// UseSQLite reports whether the dev sqlite storage switch is active.
func (db DBConfig) UseSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type JWTConfig struct {
	Secret          string `envconfig:"LEADFLOW_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"LEADFLOW_JWT_ISSUER" default:"leadflow"`
	ExpirationHours int    `envconfig:"LEADFLOW_JWT_EXPIRES_HOURS" default:"24"`
}

// Expiration returns the configured token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LEADFLOW_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LEADFLOW_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LEADFLOW_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LEADFLOW_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LEADFLOW_ARGON_KEY_LEN" default:"32"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LEADFLOW_REDIS_URL"`
	Address      string        `envconfig:"LEADFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"LEADFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEADFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEADFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEADFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEADFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEADFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEADFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all. The API
// degrades to unthrottled auth endpoints when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LEADFLOW_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type TelegramConfig struct {
	BotToken string `envconfig:"LEADFLOW_TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `envconfig:"LEADFLOW_TELEGRAM_CHAT_ID"`
}

// Configured reports whether lead notifications can be dispatched. Missing
// configuration must never prevent lead creation from succeeding.
func (t TelegramConfig) Configured() bool {
	return t.BotToken != "" && t.ChatID != 0
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.UseSQLite() {
		db.DSN = "leadflow.db"
		return nil
	}

	missing := []string{}
	for _, part := range []struct {
		envVar string
		value  string
	}{
		{"LEADFLOW_DB_HOST", db.Host},
		{"LEADFLOW_DB_USER", db.User},
		{"LEADFLOW_DB_NAME", db.Name},
	} {
		if part.value == "" {
			missing = append(missing, part.envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either LEADFLOW_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
