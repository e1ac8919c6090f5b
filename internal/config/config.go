package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	FrontendURL    string
	HealthAdminKey string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3001"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		secret = "development-secret-key"
	}

	frontend := viper.GetString("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	return &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		RedisURL:       viper.GetString("REDIS_URL"),
		JWTSecret:      secret,
		JWTExpiresIn:   tokenTTL(viper.GetString("JWT_EXPIRES_IN")),
		FrontendURL:    frontend,
		HealthAdminKey: viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}

// tokenTTL parses JWT_EXPIRES_IN as a Go duration, defaulting to 7 days.
func tokenTTL(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 7 * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}
