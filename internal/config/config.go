package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string        `mapstructure:"PORT"`
	Env                 string        `mapstructure:"ENV"`
	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDB             string        `mapstructure:"MONGO_DB"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	SessionSecret       string        `mapstructure:"SESSION_SECRET"`
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL"`
	AdminPassword       string        `mapstructure:"ADMIN_PASSWORD"`
	CORSOrigins         []string      `mapstructure:"CORS_ORIGINS"`
	RequestTimeout      time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit           string        `mapstructure:"BODY_LIMIT"`
	LoginRateRPS        float64       `mapstructure:"LOGIN_RATE_RPS"`
	LoginRateBurst      int           `mapstructure:"LOGIN_RATE_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGO_DB", "ncd_database")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "5s")
	v.SetDefault("SESSION_TTL", "8760h") // one-year sessions for field devices
	v.SetDefault("ADMIN_PASSWORD", "password123")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("BODY_LIMIT", "1M")
	// Login throttling is per client IP; the burst absorbs a worker retyping
	// a password a few times.
	v.SetDefault("LOGIN_RATE_RPS", 2.0)
	v.SetDefault("LOGIN_RATE_BURST", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("MONGO_URI")
	v.BindEnv("MONGO_DB")
	v.BindEnv("MONGO_CONNECT_TIMEOUT")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("LOGIN_RATE_RPS")
	v.BindEnv("LOGIN_RATE_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDev() {
			return nil, fmt.Errorf("SESSION_SECRET is required when ENV is not development")
		}
		cfg.SessionSecret = "dev-session-secret"
		log.Println("WARNING: SESSION_SECRET not set; using the development default.")
		log.Println("WARNING: Do NOT use this configuration in production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}
