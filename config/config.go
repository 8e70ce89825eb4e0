package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Users      []User           `yaml:"users"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Database   DatabaseConfig   `yaml:"database"`
	Automation AutomationConfig `yaml:"automation"`
	Storage    StorageConfig    `yaml:"storage"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// Requests per minute per client IP, negative disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig applies to the in-memory contract store used when no
// database is configured.
type StoreConfig struct {
	MaxContracts int `yaml:"max_contracts"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// AutomationConfig describes the external document automation service.
// An empty WebhookURL is a valid state: dispatch is reported as not
// configured and contracts are still created.
type AutomationConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	APIKey         string `yaml:"api_key"`
	CallbackURL    string `yaml:"callback_url"`
	CallbackSecret string `yaml:"callback_secret"`
	PlaceholderURL string `yaml:"placeholder_url"`
}

type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// BrowseURL replaces the endpoint-derived base of folder links.
	BrowseURL string `yaml:"browse_url"`
	// Locations overrides the storage location id of a contract type.
	Locations map[string]string `yaml:"locations"`
}

var GlobalConfig *Config

// DefaultTenant is assigned to users configured without a tenant.
const DefaultTenant = "default"

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Missing env files are fine.
	_ = godotenv.Load(".env", ".env.local")
	cfg.applyEnv()
	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 100
	}
	if c.Auth.TokenExpireHours == 0 {
		c.Auth.TokenExpireHours = 24
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Store.MaxContracts == 0 {
		c.Store.MaxContracts = 1000
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Automation.CallbackSecret == "" {
		c.Automation.CallbackSecret = c.Auth.JWTSecret
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "contracts"
	}
	// Tokens without a tenant are refused, so every user gets one.
	for i := range c.Users {
		if c.Users[i].Tenant == "" {
			c.Users[i].Tenant = DefaultTenant
		}
	}
}

func (c *Config) applyEnv() {
	setString(&c.Automation.WebhookURL, "AUTOMATION_WEBHOOK_URL")
	setString(&c.Automation.APIKey, "AUTOMATION_API_KEY")
	setString(&c.Automation.CallbackURL, "AUTOMATION_CALLBACK_URL")
	setString(&c.Automation.CallbackSecret, "AUTOMATION_CALLBACK_SECRET")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
