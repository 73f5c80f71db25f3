package config

const (
	EnvPrefix = "SYNAPSE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "SYNAPSE_APP_ENV"
	EnvPort       = "SYNAPSE_APP_PORT"
	EnvDBDSN      = "SYNAPSE_DB_DSN"
	EnvDBHost     = "SYNAPSE_DB_HOST"
	EnvDBUser     = "SYNAPSE_DB_USER"
	EnvDBName     = "SYNAPSE_DB_NAME"
	EnvRedisURL   = "SYNAPSE_REDIS_URL"
	EnvJWTSecret  = "SYNAPSE_JWT_SECRET"
	EnvJWTIssuer  = "SYNAPSE_JWT_ISSUER"
	EnvJWTExpMins = "SYNAPSE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
