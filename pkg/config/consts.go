package config

const (
	EnvPrefix = "minishop"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MINISHOP_DB_DSN"
	EnvDBHost = "MINISHOP_DB_HOST"
	EnvDBUser = "MINISHOP_DB_USER"
	EnvDBName = "MINISHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
