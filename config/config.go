package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"github.com/yeremiapane/restaurant-reservations/validation"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"gin_mode"`
	CORSOrigins []string `yaml:"cors_origins"`

	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	MetricsEnabled bool `yaml:"metrics_enabled"`

	Restaurant struct {
		Timezone        string `yaml:"timezone"`
		ClosedDay       string `yaml:"closed_day"`
		Opens           string `yaml:"opens"`
		LastBooking     string `yaml:"last_booking"`
		TrustClientTime bool   `yaml:"trust_client_time"`
	} `yaml:"restaurant"`
}

func Default() *Config {
	cfg := &Config{
		Port:           "8080",
		GinMode:        "debug",
		CORSOrigins:    []string{"*"},
		MetricsEnabled: true,
	}
	cfg.Database.Driver = "sqlite"
	cfg.Database.URL = "reservations.db"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.RateLimit.RPS = 20
	cfg.RateLimit.Burst = 40
	cfg.Restaurant.Timezone = "UTC"
	cfg.Restaurant.ClosedDay = "tuesday"
	cfg.Restaurant.Opens = "10:30"
	cfg.Restaurant.LastBooking = "21:30"
	cfg.Restaurant.TrustClientTime = true
	return cfg
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE, then environment variables (a .env file is read first).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.InfoLogger.Warnf("Warning: .env file could not be loaded: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path; keys it leaves out keep their
// current values.
func (c *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getenv("PORT", c.Port)
	c.GinMode = getenv("GIN_MODE", c.GinMode)
	c.Database.Driver = getenv("DB_DRIVER", c.Database.Driver)
	c.Database.URL = getenv("DATABASE_URL", c.Database.URL)
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	c.RateLimit.RPS = getenvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = getenvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.MetricsEnabled = getenvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.Restaurant.Timezone = getenv("RESTAURANT_TIMEZONE", c.Restaurant.Timezone)
	c.Restaurant.ClosedDay = getenv("RESTAURANT_CLOSED_DAY", c.Restaurant.ClosedDay)
	c.Restaurant.Opens = getenv("RESTAURANT_OPENS", c.Restaurant.Opens)
	c.Restaurant.LastBooking = getenv("RESTAURANT_LAST_BOOKING", c.Restaurant.LastBooking)
	c.Restaurant.TrustClientTime = getenvBool("TRUST_CLIENT_TIME", c.Restaurant.TrustClientTime)
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	switch c.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unsupported GIN_MODE %q", c.GinMode)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit must not be negative")
	}
	_, err := c.Policy()
	return err
}

// Policy turns the restaurant section into booking rules.
func (c *Config) Policy() (validation.Policy, error) {
	p := validation.DefaultPolicy()

	loc, err := time.LoadLocation(c.Restaurant.Timezone)
	if err != nil {
		return p, fmt.Errorf("restaurant timezone: %w", err)
	}
	p.Location = loc

	day, err := parseWeekday(c.Restaurant.ClosedDay)
	if err != nil {
		return p, err
	}
	p.ClosedDay = day

	if p.Opens, err = validation.ParseClock(c.Restaurant.Opens); err != nil {
		return p, fmt.Errorf("restaurant opens: %w", err)
	}
	if p.LastBooking, err = validation.ParseClock(c.Restaurant.LastBooking); err != nil {
		return p, fmt.Errorf("restaurant last booking: %w", err)
	}
	if !p.Opens.Before(p.LastBooking) {
		return p, fmt.Errorf("restaurant opens (%s) must be before last booking (%s)", p.Opens, p.LastBooking)
	}
	p.TrustClientTime = c.Restaurant.TrustClientTime
	return p, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown closed day %q", s)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		utils.InfoLogger.Warnf("Environment variable %s=%q is not an integer, using %d", k, v, def)
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		utils.InfoLogger.Warnf("Environment variable %s=%q is not a number, using %v", k, v, def)
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		utils.InfoLogger.Warnf("Environment variable %s=%q is not a boolean, using %t", k, v, def)
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
