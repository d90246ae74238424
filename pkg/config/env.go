package config

// EnvPrefix is the envconfig prefix shared by every MENNA_* variable.
const EnvPrefix = "menna"

// Recognized application environments.
const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside envconfig tags.
const (
	EnvAppEnv = "MENNA_APP_ENV"
	EnvDBDSN  = "MENNA_DB_DSN"
	EnvDBHost = "MENNA_DB_HOST"
	EnvDBUser = "MENNA_DB_USER"
	EnvDBName = "MENNA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
