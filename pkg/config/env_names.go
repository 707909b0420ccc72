package config

// EnvPrefix is the envconfig prefix for every variable this service reads.
const EnvPrefix = "retail"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "RETAIL_APP_ENV"
	EnvPort     = "RETAIL_APP_PORT"
	EnvLogLevel = "RETAIL_LOG_LEVEL"

	EnvDBDSN  = "RETAIL_DB_DSN"
	EnvDBHost = "RETAIL_DB_HOST"
	EnvDBPort = "RETAIL_DB_PORT"
	EnvDBUser = "RETAIL_DB_USER"
	EnvDBName = "RETAIL_DB_NAME"

	EnvRedisURL = "RETAIL_REDIS_URL"
)

// legacyDBEnvVars are the discrete connection vars accepted when
// RETAIL_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
