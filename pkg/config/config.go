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
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	Nearby        NearbyConfig
	Cart          CartConfig
	Checkout      CheckoutConfig
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
	Env          string `envconfig:"GEOCART_APP_ENV" required:"true"`
	Port         string `envconfig:"GEOCART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GEOCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GEOCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GEOCART_DB_DSN"`
	Driver string `envconfig:"GEOCART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GEOCART_DB_HOST"`
	LegacyPort     int    `envconfig:"GEOCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GEOCART_DB_USER"`
	LegacyPassword string `envconfig:"GEOCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"GEOCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"GEOCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GEOCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GEOCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GEOCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GEOCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GEOCART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GEOCART_REDIS_ADDR"`
	Password     string        `envconfig:"GEOCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"GEOCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GEOCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GEOCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GEOCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GEOCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GEOCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GEOCART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GEOCART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GEOCART_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GEOCART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GEOCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GEOCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GEOCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GEOCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GEOCART_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig provisions the bootstrap admin account at startup. Both
// fields must be set together; leaving them empty disables the
// bootstrap and no admin account exists.
type AdminConfig struct {
	Email    string `envconfig:"GEOCART_ADMIN_EMAIL"`
	Password string `envconfig:"GEOCART_ADMIN_PASSWORD"`
}

// Enabled reports whether any bootstrap credential is set. A partially
// set pair is still "enabled" so the bootstrap can fail loudly instead
// of silently skipping.
func (a AdminConfig) Enabled() bool {
	return strings.TrimSpace(a.Email) != "" || strings.TrimSpace(a.Password) != ""
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"GEOCART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"GEOCART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"GEOCART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"GEOCART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"GEOCART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GEOCART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GEOCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// NearbyConfig bounds the store proximity search.
type NearbyConfig struct {
	DefaultRadiusKm float64 `envconfig:"GEOCART_NEARBY_DEFAULT_RADIUS_KM" default:"10"`
	MaxRadiusKm     float64 `envconfig:"GEOCART_NEARBY_MAX_RADIUS_KM" default:"100"`
	MaxResults      int     `envconfig:"GEOCART_NEARBY_MAX_RESULTS" default:"50"`
}

// CartConfig controls server-side cart sessions.
type CartConfig struct {
	TTL          time.Duration `envconfig:"GEOCART_CART_TTL" default:"168h"`
	MaxLineItems int           `envconfig:"GEOCART_CART_MAX_LINE_ITEMS" default:"100"`
	MaxQuantity  int           `envconfig:"GEOCART_CART_MAX_QUANTITY" default:"999"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"GEOCART_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GEOCART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GEOCART_AUTO_MIGRATE" default:"false"`
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
