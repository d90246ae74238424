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
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	OTP          OTPConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	BigQuery     BigQueryConfig
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
	Env          string `envconfig:"MENNA_APP_ENV" required:"true"`
	Port         string `envconfig:"MENNA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MENNA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MENNA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MENNA_DB_DSN"`
	Driver string `envconfig:"MENNA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MENNA_DB_HOST"`
	LegacyPort     int    `envconfig:"MENNA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MENNA_DB_USER"`
	LegacyPassword string `envconfig:"MENNA_DB_PASSWORD"`
	LegacyName     string `envconfig:"MENNA_DB_NAME"`
	LegacySSLMode  string `envconfig:"MENNA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MENNA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MENNA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MENNA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MENNA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MENNA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MENNA_REDIS_ADDR"`
	Password     string        `envconfig:"MENNA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MENNA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MENNA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MENNA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MENNA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MENNA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MENNA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret           string `envconfig:"MENNA_JWT_SECRET" required:"true"`
	Issuer           string `envconfig:"MENNA_JWT_ISSUER" required:"true"`
	AccessTTLMinutes int    `envconfig:"MENNA_JWT_ACCESS_TTL_MINUTES" default:"30"`
	RefreshTTLDays   int    `envconfig:"MENNA_JWT_REFRESH_TTL_DAYS" default:"30"`
}

// AccessTTL returns the access token lifetime.
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTTLDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MENNA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MENNA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MENNA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MENNA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MENNA_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	LoginWindow time.Duration `envconfig:"MENNA_RATE_LIMIT_LOGIN_WINDOW" default:"5m"`
	LoginLimit  int           `envconfig:"MENNA_RATE_LIMIT_LOGIN_LIMIT" default:"5"`
	OTPWindow   time.Duration `envconfig:"MENNA_RATE_LIMIT_OTP_WINDOW" default:"5m"`
	OTPLimit    int           `envconfig:"MENNA_RATE_LIMIT_OTP_LIMIT" default:"3"`
}

type OTPConfig struct {
	CodeTTL     time.Duration `envconfig:"MENNA_OTP_CODE_TTL" default:"5m"`
	MaxAttempts int           `envconfig:"MENNA_OTP_MAX_ATTEMPTS" default:"5"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MENNA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"MENNA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MENNA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	AnalyticsTopic        string        `envconfig:"MENNA_PUBSUB_ANALYTICS_TOPIC" default:"menna-analytics-events"`
	AnalyticsSubscription string        `envconfig:"MENNA_PUBSUB_ANALYTICS_SUBSCRIPTION" default:"menna-analytics-events-sub"`
	IdempotencyTTL        time.Duration `envconfig:"MENNA_PUBSUB_IDEMPOTENCY_TTL" default:"24h"`
}

type BigQueryConfig struct {
	Dataset     string `envconfig:"MENNA_BIGQUERY_DATASET" default:"menna"`
	EventsTable string `envconfig:"MENNA_BIGQUERY_EVENTS_TABLE" default:"events"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MENNA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MENNA_AUTO_MIGRATE" default:"false"`
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
