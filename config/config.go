package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port          string
	BackendURL    string        // backend origin all API calls go to
	SiteBaseURL   string        // public base URL of this site, used for canonicals and sitemaps
	SourceBaseURL string        // origin content site, used to rebuild source URLs from slugs/ids
	DataDir       string        // local data directory (config snapshot)
	CacheTTL      time.Duration // TTL for cached backend GET responses
	Debug         bool
}

// LoadConfig loads the configuration from environment variables or defaults
func LoadConfig() *Config {
	cwd, _ := os.Getwd()
	defaultDataDir := filepath.Join(cwd, "data")

	return &Config{
		Port:          getEnv("PORT", "3000"),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:5000"),
		SiteBaseURL:   getEnv("SITE_BASE_URL", "https://gitanime-web.vercel.app"),
		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://v1.samehadaku.how"),
		DataDir:       getEnv("DATA_DIR", defaultDataDir),
		CacheTTL:      getDurationEnv("CACHE_TTL", 2*time.Minute),
		Debug:         getBoolEnv("DEBUG", false),
	}
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
