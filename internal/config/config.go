package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AppName = "story-bias"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"db_name"`
}

type SessionConfig struct {
	CookieName   string        `yaml:"cookie_name"`
	Expiration   time.Duration `yaml:"expiration"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

type AnalyzerConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

type LogConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when neither a config file nor
// the environment says otherwise.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3000",
			Env:  "development",
		},
		Database: DatabaseConfig{
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "story_bias",
		},
		Session: SessionConfig{
			CookieName: "session_id",
			Expiration: 24 * time.Hour,
		},
		Analyzer: AnalyzerConfig{
			Timeout:     120 * time.Second,
			Concurrency: 2,
		},
	}
}

// DefaultConfigFile is $XDG_CONFIG_HOME/story-bias/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the configuration from defaults, then the YAML file at path
// (or DefaultConfigFile when path is empty and that file exists), then the
// environment, with .env merged into the environment first.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile()); err == nil {
			path = DefaultConfigFile()
		}
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Env = getEnv("ENV", c.Server.Env)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)

	c.Session.CookieName = getEnv("SESSION_COOKIE_NAME", c.Session.CookieName)
	c.Session.Expiration = getEnvAsDuration("SESSION_EXPIRATION", c.Session.Expiration)
	c.Session.CookieSecure = getEnvAsBool("SESSION_COOKIE_SECURE", c.Session.CookieSecure)

	c.Analyzer.URL = getEnv("ANALYZER_URL", c.Analyzer.URL)
	c.Analyzer.Timeout = getEnvAsDuration("ANALYZER_TIMEOUT", c.Analyzer.Timeout)
	c.Analyzer.Concurrency = getEnvAsInt("ANALYZER_CONCURRENCY", c.Analyzer.Concurrency)

	c.Log.Verbose = getEnvAsBool("LOG_VERBOSE", c.Log.Verbose)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Server.Port)
	}

	if c.Session.Expiration <= 0 {
		return ErrInvalidSessionExpiration
	}

	if c.Analyzer.Timeout <= 0 {
		return ErrInvalidAnalyzerTimeout
	}

	if c.Analyzer.Concurrency <= 0 {
		return ErrInvalidAnalyzerConcurrency
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// UseDatabase reports whether sessions and messages go to Postgres.
// Without DB_HOST everything stays in process memory.
func (c *Config) UseDatabase() bool {
	return c.Database.Host != ""
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
