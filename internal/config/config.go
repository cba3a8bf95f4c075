package config

import (
	"crypto/rand"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from env. Missing external
// credentials degrade the endpoints that need them; they never crash
// the process.
type Config struct {
	Port               string
	DatabaseURL        string
	OMDBAPIKey         string
	TMDBAPIKey         string
	ValkeyAddr         string
	ValkeyPassword     string
	Env                string
	CursorSecret       []byte
	CORSAllowedOrigins []string

	SelectMaxAttempts int
	ProviderTimeout   time.Duration
	SeedDevData       bool

	AlwaysRedact []string
	NeverRedact  []string
}

func FromEnv() Config {
	c := Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OMDBAPIKey:        os.Getenv("OMDB_API_KEY"),
		TMDBAPIKey:        os.Getenv("TMDB_API_KEY"),
		ValkeyAddr:        os.Getenv("VALKEY_ADDR"),
		ValkeyPassword:    os.Getenv("VALKEY_PASSWORD"),
		Env:               getEnv("ENV", "development"),
		SelectMaxAttempts: getEnvInt("SELECT_MAX_ATTEMPTS", 5),
		ProviderTimeout:   time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 8)) * time.Second,
		SeedDevData:       os.Getenv("SEED_DEV_DATA") == "1",
		AlwaysRedact:      splitList(os.Getenv("ALWAYS_REDACT")),
		// Danny's people stay visible; the game is narrated around them.
		NeverRedact: splitList(getEnv("NEVER_REDACT", "Danny,Taylor,Pat")),
	}
	c.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if s := os.Getenv("CURSOR_SECRET"); s != "" {
		c.CursorSecret = []byte(s)
	} else {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err == nil {
			c.CursorSecret = buf
		} else {
			log.Printf("warning: failed to generate cursor secret: %v", err)
			c.CursorSecret = []byte("insecure-default")
		}
	}
	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
