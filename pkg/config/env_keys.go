package config

// Environment variable names shared between Load, tests, and the
// legacy DSN fallback error message.
const (
	EnvPrefix = "GEOCART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "GEOCART_APP_ENV"
	EnvPort       = "GEOCART_APP_PORT"
	EnvDBDSN      = "GEOCART_DB_DSN"
	EnvDBHost     = "GEOCART_DB_HOST"
	EnvDBUser     = "GEOCART_DB_USER"
	EnvDBName     = "GEOCART_DB_NAME"
	EnvRedisURL   = "GEOCART_REDIS_URL"
	EnvJWTSecret  = "GEOCART_JWT_SECRET"
	EnvJWTIssuer  = "GEOCART_JWT_ISSUER"
	EnvJWTExpMins = "GEOCART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
