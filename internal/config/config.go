package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	JWTSecret   string
	MockLatency time.Duration
	RedisAddr   string
	AdminEmails []string
	CatalogPath string
}

// Load reads configuration from environment variables, honouring a local
// .env file when present.
func Load() Config {
	_ = godotenv.Load()

	addr := os.Getenv("ESHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// every mock backend call suspends for this long before committing
	latency := time.Second
	if v := os.Getenv("MOCK_LATENCY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			latency = time.Duration(ms) * time.Millisecond
		}
	}

	var admins []string
	for _, e := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			admins = append(admins, strings.ToLower(e))
		}
	}

	return Config{
		Addr:        addr,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MockLatency: latency,
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		AdminEmails: admins,
		CatalogPath: os.Getenv("CATALOG_PATH"),
	}
}

// IsAdminEmail reports whether the address is configured as an admin
// account.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, a := range c.AdminEmails {
		if a == email {
			return true
		}
	}
	return false
}
