package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string `mapstructure:"PORT"`
	LogMode              string `mapstructure:"LOG_MODE"`
	FrontendURL          string `mapstructure:"FRONTEND_URL"`
	AllowedOriginsCSV    string `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL          string `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns       int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns       int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMin int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	RedisURL             string `mapstructure:"REDIS_URL"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	TicketSecret         string `mapstructure:"TICKET_SECRET"`
	TicketTTLMin         int    `mapstructure:"TICKET_TTL_MINUTES"`
	SearchDepth          int    `mapstructure:"SEARCH_DEPTH"`
	BotDifficulty        string `mapstructure:"BOT_DIFFICULTY"`
	BotMoveDelayMs       int    `mapstructure:"BOT_MOVE_DELAY_MS"`
	SessionIdleMin       int    `mapstructure:"SESSION_IDLE_MINUTES"`
	FinishedSessionMin   int    `mapstructure:"FINISHED_SESSION_MINUTES"`
	CleanupIntervalMin   int    `mapstructure:"CLEANUP_INTERVAL_MINUTES"`

	// AllowedOrigins is built from FrontendURL, localhost and ALLOWED_ORIGINS.
	// Warnings lists values that were rejected and replaced by defaults.
	AllowedOrigins []string `mapstructure:"-"`
	Warnings       []string `mapstructure:"-"`
}

var defaults = map[string]any{
	"PORT":                         "8080",
	"LOG_MODE":                     "production",
	"FRONTEND_URL":                 "http://localhost:5173",
	"ALLOWED_ORIGINS":              "",
	"DATABASE_URL":                 "",
	"DB_MAX_OPEN_CONNS":            25,
	"DB_MAX_IDLE_CONNS":            25,
	"DB_CONN_MAX_LIFETIME_MINUTES": 5,
	"REDIS_URL":                    "localhost:6379",
	"REDIS_PASSWORD":               "",
	"TICKET_SECRET":                "change-this-ticket-secret",
	"TICKET_TTL_MINUTES":           60,
	"SEARCH_DEPTH":                 4,
	"BOT_DIFFICULTY":               "hard",
	"BOT_MOVE_DELAY_MS":            500,
	"SESSION_IDLE_MINUTES":         30,
	"FINISHED_SESSION_MINUTES":     60,
	"CLEANUP_INTERVAL_MINUTES":     60,
}

// LoadConfig reads the environment (after godotenv has populated it) on top
// of the defaults above.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	// Non-numeric integers fall back to their defaults instead of failing
	// the decode below.
	var warnings []string
	for _, key := range intKeys() {
		raw := v.GetString(key)
		if _, err := strconv.Atoi(raw); err != nil {
			warnings = append(warnings,
				fmt.Sprintf("invalid value for %s: %q, using default: %v", key, raw, defaults[key]))
			v.Set(key, defaults[key])
		}
	}

	cfg := Config{Warnings: warnings}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.positive("SEARCH_DEPTH", &cfg.SearchDepth)
	cfg.positive("DB_MAX_OPEN_CONNS", &cfg.DBMaxOpenConns)
	cfg.positive("DB_MAX_IDLE_CONNS", &cfg.DBMaxIdleConns)
	cfg.positive("DB_CONN_MAX_LIFETIME_MINUTES", &cfg.DBConnMaxLifetimeMin)
	cfg.positive("TICKET_TTL_MINUTES", &cfg.TicketTTLMin)
	cfg.positive("SESSION_IDLE_MINUTES", &cfg.SessionIdleMin)
	cfg.positive("FINISHED_SESSION_MINUTES", &cfg.FinishedSessionMin)
	cfg.positive("CLEANUP_INTERVAL_MINUTES", &cfg.CleanupIntervalMin)
	if cfg.BotMoveDelayMs < 0 {
		cfg.reject("BOT_MOVE_DELAY_MS", cfg.BotMoveDelayMs)
		cfg.BotMoveDelayMs = defaults["BOT_MOVE_DELAY_MS"].(int)
	}

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	cfg.AllowedOrigins = []string{cfg.FrontendURL}
	if cfg.FrontendURL != "http://localhost:5173" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, "http://localhost:5173")
	}
	if cfg.AllowedOriginsCSV != "" {
		for _, origin := range strings.Split(cfg.AllowedOriginsCSV, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	return &cfg, nil
}

func intKeys() []string {
	var keys []string
	for key, value := range defaults {
		if _, ok := value.(int); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) positive(key string, value *int) {
	if *value >= 1 {
		return
	}
	c.reject(key, *value)
	*value = defaults[key].(int)
}

func (c *Config) reject(key string, value int) {
	c.Warnings = append(c.Warnings,
		fmt.Sprintf("invalid value for %s: %d, using default: %v", key, value, defaults[key]))
}

func (c *Config) BotMoveDelay() time.Duration {
	return time.Duration(c.BotMoveDelayMs) * time.Millisecond
}

func (c *Config) TicketTTL() time.Duration {
	return time.Duration(c.TicketTTLMin) * time.Minute
}

func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleMin) * time.Minute
}

func (c *Config) FinishedSessionTTL() time.Duration {
	return time.Duration(c.FinishedSessionMin) * time.Minute
}

func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMin) * time.Minute
}

func (c *Config) DBConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeMin) * time.Minute
}
