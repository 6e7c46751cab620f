// Package config loads process configuration once at startup. The resulting
// struct is read-only after Load; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Secret        []byte // JWT signing secret
	HashCost      int    // bcrypt cost factor
	Port          string
	WeatherAPIKey string
}

// Load reads configuration from the environment. The signing secret and the
// hash cost are mandatory: a missing or unusable value is a startup error,
// never a silently broken runtime.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	roundsEnv := os.Getenv("SALT_ROUNDS")
	if roundsEnv == "" {
		return nil, fmt.Errorf("SALT_ROUNDS is required")
	}
	rounds, err := strconv.Atoi(roundsEnv)
	if err != nil {
		return nil, fmt.Errorf("SALT_ROUNDS must be an integer: %w", err)
	}
	if rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost {
		return nil, fmt.Errorf("SALT_ROUNDS must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Secret:        []byte(secret),
		HashCost:      rounds,
		Port:          port,
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
	}, nil
}
