// Package config resolves deployment-time settings from the environment.
// A .env file is honoured for local development.
package config

import "github.com/joho/godotenv"

type Config interface {
	ClientConfig
	StubServerConfig
}

// ClientConfig covers the SDK and CLI.
type ClientConfig interface {
	GetAPIBaseURL() string
	GetDataDir() string
	GetAppName() string
	GetEnv() string
}

// StubServerConfig covers the local development backend.
type StubServerConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetTokenTTL() string
	GetAllowedOrigins() []string
	GetAuthRateLimitRPM() int
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
