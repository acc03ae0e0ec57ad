package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr        string
	GinMode        string
	APIURL         string
	APITimeout     time.Duration
	JWTSecret      string
	AccessTTL      time.Duration
	SessionTTL     time.Duration
	DBDSN          string
	RedisAddr      string
	SearchCacheTTL time.Duration
	FormTTL        time.Duration
	CORSOrigins    []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	apiURL := strings.TrimRight(strings.TrimSpace(os.Getenv("API_URL")), "/")
	if apiURL == "" {
		apiURL = "http://localhost:3000/api"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/skyreserva?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		APIURL:         apiURL,
		APITimeout:     durationEnv("API_TIMEOUT", 30*time.Second),
		JWTSecret:      secret,
		AccessTTL:      durationEnv("ACCESS_TTL", 15*time.Minute),
		SessionTTL:     durationEnv("SESSION_TTL", 7*24*time.Hour),
		DBDSN:          dsn,
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SearchCacheTTL: durationEnv("SEARCH_CACHE_TTL", 60*time.Second),
		FormTTL:        durationEnv("BOOKING_FORM_TTL", 30*time.Minute),
		CORSOrigins:    listEnv("CORS_ALLOWED_ORIGINS"),
	}
}

// durationEnv accepts Go durations ("45s") or a plain number of seconds.
func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func listEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
