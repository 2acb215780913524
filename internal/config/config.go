package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every environment-driven setting in one place so the rest
// of the app never reads os.Getenv directly.
type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string

	NotifyWorkers int
}

func Load() Config {
	return Config{
		Addr:          getenv("KNIT_STORE_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        getenvDuration("JWT_TTL", 72*time.Hour),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		CacheTTL:      getenvDuration("CACHE_TTL", time.Hour),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      getenv("SMTP_FROM", "Varu's Knit Store <no-reply@varuknitstore.in>"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		NotifyWorkers: getenvInt("NOTIFY_WORKERS", 4),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
