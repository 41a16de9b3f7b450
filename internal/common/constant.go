package common

// EnvPrefix prefixes every environment variable read by the config layer.
const EnvPrefix = "FINHIVE_"

// DefaultUserID is used by the CLI when no user is configured.
const DefaultUserID = "local-user"
