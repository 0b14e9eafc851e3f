package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	dataDirVar    = "DATA_DIR"
	appNameVar    = "APP_NAME"
	portEnvVar    = "PORT"
)

type EnvVars struct{}

var _ ClientConfig = EnvVars{}
var _ StubServerConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080/api")
}

func (EnvVars) GetDataDir() string {
	if dir := os.Getenv(dataDirVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".health-management"
	}
	return filepath.Join(home, ".health-management")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Health Management")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "dev-only-secret")
}

func (EnvVars) GetTokenTTL() string {
	return GetEnv("TOKEN_TTL", "24h")
}

func (EnvVars) GetAllowedOrigins() []string {
	raw := GetEnv("CORS_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (EnvVars) GetAuthRateLimitRPM() int {
	raw := GetEnv("AUTH_RATE_LIMIT_RPM", "10")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
