package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Email    EmailConfig    `yaml:"email"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"`      // debug, release, test
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessExpireMin   int    `yaml:"access_expire_min"`
	RefreshExpireDays int    `yaml:"refresh_expire_days"`
}

type EmailConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	From        string `yaml:"from"`
	UseTLS      bool   `yaml:"use_tls"`
	FrontendURL string `yaml:"frontend_url"` // base URL for password reset links
}

// RedisConfig for optional async email queue
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8080",
			Mode:     "debug",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "tallerplus.db",
		},
		JWT: JWTConfig{
			Secret:            "tallerplus-secret-key-change-in-production",
			AccessExpireMin:   60,
			RefreshExpireDays: 30,
		},
		Email: EmailConfig{
			Enabled:     false,
			Port:        587,
			FrontendURL: "http://localhost:3000",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if min := os.Getenv("JWT_ACCESS_EXPIRE_MIN"); min != "" {
		if v, err := strconv.Atoi(min); err == nil && v > 0 {
			c.JWT.AccessExpireMin = v
		}
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		c.Email.FrontendURL = frontend
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		c.Email.Enabled = true
		c.Email.Host = host
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		c.Email.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		c.Email.Password = pass
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Enabled = true
		c.Redis.Addr = addr
	}
}

// validate rejects configurations that cannot be allowed to reach production.
// The built-in JWT secret is acceptable in debug mode only.
func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is not configured")
	}
	if c.Server.Mode == "release" && c.JWT.Secret == DefaultConfig().JWT.Secret {
		return errors.New("jwt secret must be overridden in release mode")
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.JWT.AccessExpireMin <= 0 {
		c.JWT.AccessExpireMin = 60
	}
	if c.JWT.RefreshExpireDays <= 0 {
		c.JWT.RefreshExpireDays = 30
	}
	return nil
}

// IsProduction reports whether the server runs in release mode. Cookies are
// marked Secure only in production.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release"
}
