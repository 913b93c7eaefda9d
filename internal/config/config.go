package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
	AccessHeader  string `yaml:"access_header"`
	RefreshHeader string `yaml:"refresh_header"`
}

type LimiterConfig struct {
	Capacity      int    `yaml:"capacity"`
	RefillWindow  string `yaml:"refill_window"`
	SweepInterval string `yaml:"sweep_interval"`
	Retention     string `yaml:"retention"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret     string
	JWTIssuer     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AccessHeader  string
	RefreshHeader string

	LimiterCapacity      int
	LimiterRefillWindow  time.Duration
	LimiterSweepInterval time.Duration
	LimiterRetention     time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// secrets.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	refill, err := time.ParseDuration(configFile.Limiter.RefillWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid limiter refill window: %w", err)
	}

	sweep, err := time.ParseDuration(configFile.Limiter.SweepInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid limiter sweep interval: %w", err)
	}

	retention, err := time.ParseDuration(configFile.Limiter.Retention)
	if err != nil {
		return nil, fmt.Errorf("invalid limiter retention: %w", err)
	}

	accessHeader := configFile.JWT.AccessHeader
	if accessHeader == "" {
		accessHeader = "Authorization"
	}
	refreshHeader := configFile.JWT.RefreshHeader
	if refreshHeader == "" {
		refreshHeader = "X-Refresh-Token"
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:     env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:     configFile.JWT.Issuer,
		AccessTTL:     accTTL,
		RefreshTTL:    refTTL,
		AccessHeader:  accessHeader,
		RefreshHeader: refreshHeader,

		LimiterCapacity:      configFile.Limiter.Capacity,
		LimiterRefillWindow:  refill,
		LimiterSweepInterval: sweep,
		LimiterRetention:     retention,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  configFile.Twilio.FromNumber,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
