package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. Missing
// credentials do not stop the process: the affected endpoints answer 503
// until the deployment is fixed.
type Config struct {
	Addr               string
	SupabaseURL        string
	SupabaseServiceKey string
	GeminiAPIKey       string
}

func Load() *Config {
	_ = godotenv.Load()

	addr := ":4000"
	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			addr = envPort
		} else {
			addr = ":" + envPort
		}
	}

	return &Config{
		Addr:               addr,
		SupabaseURL:        strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseServiceKey: strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GOOGLE_GEMINI_API_KEY")),
	}
}

// SupabaseConfigured reports whether the store client can be constructed.
// The URL must carry an http scheme; a bare hostname is treated as absent.
func (c *Config) SupabaseConfigured() bool {
	if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
		return false
	}
	return strings.HasPrefix(c.SupabaseURL, "http://") || strings.HasPrefix(c.SupabaseURL, "https://")
}

func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}
