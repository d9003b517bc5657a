package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Backend the front-end calls for sessions, catalog and conversions.
	BackendBaseURL string

	// Session cookie settings. Expiry defaults to 60 days to match the
	// backend's social-login session lifetime.
	SessionExpiryDuration time.Duration
	SessionCookieDomain   string
	SessionCookieSecure   bool

	// External OAuth provider (Google)
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Device identification sent to the backend on every request.
	DeviceModel string
	// Development proxy bypass header value.
	ProxyBypassValue string

	PosthogAPIKey  string
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BACKEND_BASE_URL", "https://currency-converter-backend-two.vercel.app")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "1440h")
	viper.SetDefault("SESSION_COOKIE_DOMAIN", "")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("DEVICE_MODEL", "Unknown")
	viper.SetDefault("PROXY_BYPASS_VALUE", "69420")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BackendBaseURL = strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/")
	if cfg.BackendBaseURL == "" {
		log.Println("Warning: BACKEND_BASE_URL environment variable not set.")
	}

	sessionExpiryStr := viper.GetString("SESSION_EXPIRY_DURATION")
	sessionExpiry, err := time.ParseDuration(sessionExpiryStr)
	if err != nil {
		sessionExpiry = time.Hour * 24 * 60 // 60 days
		if sessionExpiryStr != "" {
			log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", sessionExpiryStr, sessionExpiry.String())
		}
	}
	cfg.SessionExpiryDuration = sessionExpiry
	cfg.SessionCookieDomain = viper.GetString("SESSION_COOKIE_DOMAIN")
	cfg.SessionCookieSecure = viper.GetBool("SESSION_COOKIE_SECURE")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google login will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google login will not function.")
	}
	if cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_REDIRECT_URL not set. Google login will not function.")
	}

	cfg.DeviceModel = viper.GetString("DEVICE_MODEL")
	cfg.ProxyBypassValue = viper.GetString("PROXY_BYPASS_VALUE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if origins := viper.GetString("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
