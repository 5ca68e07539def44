package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr   = ":8080"
	defaultRetentionAge = "720h"
	defaultListLimit    = "200"
	defaultUploadKey    = "change-me-upload-key"
	// Dev-only allow-list; plaintext entries are rejected in prod-like envs.
	defaultAdminCreds = "admin:admin"
)

// Config holds everything the service reads from the environment.
type Config struct {
	AppEnv       string
	DatabaseURL  string
	ListenAddr   string
	UploadAPIKey string
	// AdminCredentials maps username to a bcrypt hash (or, in dev, a
	// plaintext password).
	AdminCredentials map[string]string
	RetentionAge     time.Duration
	ListLimit        int
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.UploadAPIKey = strings.TrimSpace(getEnv("UPLOAD_API_KEY", defaultUploadKey))

	var err error
	cfg.RetentionAge, err = parseDurationEnv("RETENTION_AGE", defaultRetentionAge)
	if err != nil {
		return nil, err
	}

	cfg.ListLimit, err = parseIntEnv("LIST_LIMIT", defaultListLimit)
	if err != nil {
		return nil, err
	}

	cfg.AdminCredentials, err = parseCredentials(getEnv("ADMIN_CREDENTIALS", defaultAdminCreds))
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseCredentials parses comma-separated user:secret pairs. The secret is
// either a bcrypt hash or, for dev setups, a plaintext password.
func parseCredentials(raw string) (map[string]string, error) {
	creds := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, secret, ok := strings.Cut(pair, ":")
		user = strings.TrimSpace(user)
		if !ok || user == "" || secret == "" {
			return nil, fmt.Errorf("invalid ADMIN_CREDENTIALS entry %q, want user:secret", pair)
		}
		if _, dup := creds[user]; dup {
			return nil, fmt.Errorf("duplicate ADMIN_CREDENTIALS user %q", user)
		}
		creds[user] = secret
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("ADMIN_CREDENTIALS must contain at least one user:secret pair")
	}
	return creds, nil
}

func validate(cfg *Config) error {
	if cfg.RetentionAge <= 0 {
		return fmt.Errorf("RETENTION_AGE must be > 0")
	}
	if cfg.ListLimit <= 0 {
		return fmt.Errorf("LIST_LIMIT must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.UploadAPIKey, defaultUploadKey) {
			return fmt.Errorf("in prod/release UPLOAD_API_KEY must be set and not default")
		}
		for user, secret := range cfg.AdminCredentials {
			if !IsBcryptHash(secret) {
				return fmt.Errorf("in prod/release ADMIN_CREDENTIALS for %q must be a bcrypt hash", user)
			}
		}
	}

	return nil
}

// IsBcryptHash reports whether a credential value looks like a bcrypt hash
// rather than a plaintext password.
func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
