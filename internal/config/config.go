package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BackendURL     string        // base URL of the Astral API (ex: https://api.astral.cool)
	BackendTimeout time.Duration // per-call timeout for the API client (default: 10s)
	SiteFile       string        // optional branding file (empty = built-in defaults)

	// Sessions
	SessionLifetime        time.Duration // absolute session lifetime (default: 24h)
	SessionRefreshInterval time.Duration // re-bootstrap interval after login (default: 13m)
	CookieSecure           bool          // mark the session cookie Secure

	// Redis (optional, empty address => in-memory sessions)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict probes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Auth form rate limiting
	LoginBurst        int // token bucket size per client IP
	LoginRefillPerMin int // tokens added per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("ASTRAL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("ASTRAL_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("ASTRAL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("ASTRAL_PRETTY_LOG", true),

		// Backend
		BackendURL:     strings.TrimRight(requireEnv("ASTRAL_BACKEND_URL"), "/"),
		BackendTimeout: mustDuration("ASTRAL_BACKEND_TIMEOUT", 10*time.Second),
		SiteFile:       getenv("ASTRAL_SITE_FILE", ""),

		// Sessions
		SessionLifetime:        mustDuration("ASTRAL_SESSION_LIFETIME", 24*time.Hour),
		SessionRefreshInterval: mustDuration("ASTRAL_SESSION_REFRESH_INTERVAL", 13*time.Minute),
		CookieSecure:           mustBool("ASTRAL_COOKIE_SECURE", true),

		// Redis settings
		RedisAddr:           getenv("ASTRAL_REDIS_ADDR", ""),
		RedisUser:           getenv("ASTRAL_REDIS_USERNAME", ""),
		RedisPassword:       getenv("ASTRAL_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("ASTRAL_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("ASTRAL_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("ASTRAL_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("ASTRAL_TRUST_PROXY", true),

		LoginBurst:        getenvInt("ASTRAL_LOGIN_BURST", 5),
		LoginRefillPerMin: getenvInt("ASTRAL_LOGIN_REFILL_PER_MIN", 10),
	}

	if cfg.SessionRefreshInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: ASTRAL_SESSION_REFRESH_INTERVAL must be positive, got %s", cfg.SessionRefreshInterval))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether sessions should be kept in Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
