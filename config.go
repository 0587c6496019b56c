package intelitalk

import (
	"crypto/sha256"
	"os"
	"strconv"
	"time"
)

// Config holds the portal settings. Everything comes from environment
// variables with development defaults; cmd/server loads .env first.
type Config struct {
	ListenAddr    string
	APIBaseURL    string
	CookieName    string
	SessionSecret string
	CookieTTL     time.Duration
	HTTPTimeout   time.Duration
	CookieSecure  bool
	Debug         bool
}

// LoadConfig reads the environment with sensible defaults. The cookie's
// Secure attribute follows debug mode unless set explicitly: a debug
// portal runs on plain HTTP, where browsers drop Secure cookies.
func LoadConfig() *Config {
	debug := getBool("DEBUG", false)

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":3000"),
		APIBaseURL:    getEnv("API_BASE_URL", DefaultAPIBaseURL),
		CookieName:    getEnv("SESSION_COOKIE", DefaultSessionCookie),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret-change-me"),
		CookieTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		HTTPTimeout:   getDuration("API_TIMEOUT", 15*time.Second),
		CookieSecure:  getBool("COOKIE_SECURE", !debug),
		Debug:         debug,
	}
}

// HashKey derives the 32 byte securecookie authentication key.
func (c *Config) HashKey() []byte {
	sum := sha256.Sum256([]byte(c.SessionSecret + ":hash"))
	return sum[:]
}

// BlockKey derives the 32 byte securecookie encryption key.
func (c *Config) BlockKey() []byte {
	sum := sha256.Sum256([]byte(c.SessionSecret + ":block"))
	return sum[:]
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return b
}
