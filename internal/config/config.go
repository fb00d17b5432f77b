package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server   ServerConfig
	Sessions SessionConfig
	Store    StoreConfig
	Email    EmailConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sessions, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Sessions: sessions,
		Store:    loadStoreConfig(),
		Email:    loadEmailConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		addr = ":" + port
	}

	origins := []string{"*"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return ServerConfig{Addr: addr, AllowedOrigins: origins}, nil
}

// SessionConfig controls how long idle conversations are kept.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	ttl, err := parseDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return SessionConfig{}, err
	}

	interval, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", 10*time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}

	return SessionConfig{TTL: ttl, SweepInterval: interval}, nil
}

// StoreConfig points at the transaction database. An empty path selects the
// seeded in-memory repository.
type StoreConfig struct {
	DBPath string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{DBPath: strings.TrimSpace(os.Getenv("TRANSACTIONS_DB"))}
}

// EmailConfig carries the EmailJS credentials and the support inbox address.
type EmailConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	BaseURL    string
	Recipient  string
}

// Enabled reports whether real email dispatch is configured; otherwise the
// service runs in log-only simulation mode.
func (c EmailConfig) Enabled() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

func loadEmailConfig() EmailConfig {
	return EmailConfig{
		ServiceID:  strings.TrimSpace(os.Getenv("EMAILJS_SERVICE_ID")),
		TemplateID: strings.TrimSpace(os.Getenv("EMAILJS_TEMPLATE_ID")),
		PublicKey:  strings.TrimSpace(os.Getenv("EMAILJS_PUBLIC_KEY")),
		BaseURL:    strings.TrimSpace(os.Getenv("EMAILJS_BASE_URL")),
		Recipient:  strings.TrimSpace(os.Getenv("SUPPORT_INBOX")),
	}
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}
