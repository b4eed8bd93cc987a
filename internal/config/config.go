package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config holds all application configuration. Values are loaded once at
// startup; components receive what they need through constructors, nothing
// reads the environment at call time.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		// Three independent secrets: compromising one token type must not
		// allow forging another.
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		ResetSecret   string `yaml:"reset_secret"`
		AccessTTL     string `yaml:"access_ttl"`
		RefreshTTL    string `yaml:"refresh_ttl"`
		ResetTTL      string `yaml:"reset_ttl"`
	} `yaml:"jwt"`

	Twilio struct {
		AccountSID string `yaml:"account_sid"`
		AuthToken  string `yaml:"auth_token"`
		// Separate Verify services keep the registration and the
		// password-recovery code channels isolated.
		RegisterServiceSID string `yaml:"register_service_sid"`
		RecoverServiceSID  string `yaml:"recover_service_sid"`
	} `yaml:"twilio"`

	FirstAdminPhone    string `yaml:"first_admin_phone"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
	defaultResetTTL   = 15 * time.Minute
)

var AppConfig *Config

// LoadConfig populates AppConfig from config.yaml, with environment
// variables taking precedence (and replacing the file entirely when
// DATABASE_URL is set, which is how the test harness runs).
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
	} else {
		cfg.Database.DSN = os.Getenv("DATABASE_URL")
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	}

	applyEnvOverrides(&cfg)

	// The three secrets are required; the service must not come up with a
	// guessable or empty signing key.
	if cfg.JWT.AccessSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET must be set")
	}
	if cfg.JWT.RefreshSecret == "" {
		log.Fatal("JWT_REFRESH_SECRET must be set")
	}
	if cfg.JWT.ResetSecret == "" {
		log.Fatal("JWT_RESET_SECRET must be set")
	}

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	setFromEnv(&cfg.JWT.AccessSecret, "JWT_ACCESS_SECRET")
	setFromEnv(&cfg.JWT.RefreshSecret, "JWT_REFRESH_SECRET")
	setFromEnv(&cfg.JWT.ResetSecret, "JWT_RESET_SECRET")
	setFromEnv(&cfg.JWT.AccessTTL, "JWT_ACCESS_TTL")
	setFromEnv(&cfg.JWT.RefreshTTL, "JWT_REFRESH_TTL")
	setFromEnv(&cfg.JWT.ResetTTL, "JWT_RESET_TTL")
	setFromEnv(&cfg.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setFromEnv(&cfg.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setFromEnv(&cfg.Twilio.RegisterServiceSID, "TWILIO_REGISTER_SERVICE_SID")
	setFromEnv(&cfg.Twilio.RecoverServiceSID, "TWILIO_RECOVER_SERVICE_SID")
	setFromEnv(&cfg.FirstAdminPhone, "FIRST_ADMIN_PHONE")
	setFromEnv(&cfg.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
}

func setFromEnv(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*dst = value
	}
}

// AccessTTL returns the configured access-token lifetime (default 15m).
func (c *Config) AccessTTL() time.Duration {
	return parseTTL(c.JWT.AccessTTL, defaultAccessTTL)
}

// RefreshTTL returns the configured refresh-token lifetime (default 7d).
func (c *Config) RefreshTTL() time.Duration {
	return parseTTL(c.JWT.RefreshTTL, defaultRefreshTTL)
}

// ResetTTL returns the configured reset-token lifetime (default 15m).
func (c *Config) ResetTTL() time.Duration {
	return parseTTL(c.JWT.ResetTTL, defaultResetTTL)
}

func parseTTL(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid TTL duration %q: %v", value, err)
	}
	return d
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
