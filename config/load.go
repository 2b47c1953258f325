package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load starts from Default, decodes the toml file at path over it when path
// is not empty, then applies the environment variables.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Configs) {
	cfg.Env = getEnv("ENV", cfg.Env)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("DB_DATABASE", cfg.Database.Database)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.LogLevel = getEnv("DB_LOG_LEVEL", cfg.Database.LogLevel)

	cfg.ApiServer.Host = getEnv("API_HOST", cfg.ApiServer.Host)
	cfg.ApiServer.Port = getEnv("API_PORT", cfg.ApiServer.Port)
	cfg.ApiServer.AllowedOrigins = getSliceEnv("API_ALLOWED_ORIGINS", cfg.ApiServer.AllowedOrigins)

	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Auth.AccessToken.Name = getEnv("ACCESS_TOKEN_NAME", cfg.Auth.AccessToken.Name)
	cfg.Auth.AccessToken.Expiration = getDurationEnv("ACCESS_TOKEN_EXPIRATION", cfg.Auth.AccessToken.Expiration)
	cfg.Auth.AdminEmails = getSliceEnv("ADMIN_EMAILS", cfg.Auth.AdminEmails)

	cfg.Redis.Addr = getEnv("REDIS_ADDRESS", cfg.Redis.Addr)
	cfg.Kafka.Addr = getEnv("KAFKA_ADDRESS", cfg.Kafka.Addr)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Console = getBoolEnv("LOG_CONSOLE", cfg.Log.Console)

	cfg.Facade.Mode = getEnv("RUNTIME_MODE", cfg.Facade.Mode)
	cfg.Facade.FallbackPoints = getInt64Env("FALLBACK_POINTS", cfg.Facade.FallbackPoints)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return defaultValue
}

// getSliceEnv splits a comma separated value.
func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
