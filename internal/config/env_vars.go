package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	nodeEnvVar    = "NODE_ENV"
	envProduction = "production"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3001")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Spotify Token Server")
}

// GetEnv returns the deployment environment, "development" unless
// NODE_ENV is set to "production".
func (EnvVars) GetEnv() string {
	env := os.Getenv(nodeEnvVar)
	if env == "" {
		return "development"
	}
	return env
}

func (e EnvVars) IsProduction() bool {
	return e.GetEnv() == envProduction
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
