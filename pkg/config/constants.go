package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "POS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "POS_APP_ENV"
	EnvPort     = "POS_APP_PORT"
	EnvLogLevel = "POS_LOG_LEVEL"

	EnvDBDSN      = "POS_DB_DSN"
	EnvDBDriver   = "POS_DB_DRIVER"
	EnvDBHost     = "POS_DB_HOST"
	EnvDBPort     = "POS_DB_PORT"
	EnvDBUser     = "POS_DB_USER"
	EnvDBPassword = "POS_DB_PASSWORD"
	EnvDBName     = "POS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
