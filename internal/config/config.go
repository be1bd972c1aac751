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

type StoreConfig struct {
	// Backend is one of memory, redis, postgres.
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SecurityConfig struct {
	// Hasher is bcrypt or legacy. legacy is the prototype-compatible
	// rolling hash; insecure, kept for stores written by the prototype.
	Hasher string `yaml:"hasher"`
}

type OTPConfigFile struct {
	TTL         string `yaml:"ttl"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type SessionConfigFile struct {
	TTL         string `yaml:"ttl"`
	RememberTTL string `yaml:"remember_ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	OperatorTo string `yaml:"operator_to"`
}

type MailConfig struct {
	// Provider is one of console, smtp, twilio. console is the reference
	// demo channel: codes and lead mail go to the operator log.
	Provider  string       `yaml:"provider"`
	Recipient string       `yaml:"recipient"`
	SMTP      SMTPConfig   `yaml:"smtp"`
	Twilio    TwilioConfig `yaml:"twilio"`
}

type HTTPConfig struct {
	RateRPS   float64 `yaml:"rate_rps"`
	RateBurst int     `yaml:"rate_burst"`
}

type ConfigFile struct {
	App      AppConfig         `yaml:"app"`
	Store    StoreConfig       `yaml:"store"`
	Redis    RedisConfig       `yaml:"redis"`
	Security SecurityConfig    `yaml:"security"`
	OTP      OTPConfigFile     `yaml:"otp"`
	Session  SessionConfigFile `yaml:"session"`
	Mail     MailConfig        `yaml:"mail"`
	HTTP     HTTPConfig        `yaml:"http"`
}

// Config is the parsed runtime configuration.
type Config struct {
	Port          string
	GinMode       string
	StoreBackend  string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Hasher        string
	OTPTTL        time.Duration
	OTPAttempts   int
	SessionTTL    time.Duration
	RememberTTL   time.Duration
	MailProvider  string
	MailRecipient string
	SMTP          SMTPConfig
	Twilio        TwilioConfig
	RateRPS       float64
	RateBurst     int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml config, applying env overrides for secrets.
func Load() (*Config, error) {
	return LoadFile(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	otpTTL, err := time.ParseDuration(file.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	sessTTL, err := time.ParseDuration(file.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}
	remTTL, err := time.ParseDuration(file.Session.RememberTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid remember-me TTL: %w", err)
	}

	smtp := file.Mail.SMTP
	smtp.Username = env("SMTP_USERNAME", smtp.Username)
	smtp.Password = env("SMTP_PASSWORD", smtp.Password)

	twilio := file.Mail.Twilio
	twilio.AccountSID = env("TWILIO_ACCOUNT_SID", twilio.AccountSID)
	twilio.AuthToken = env("TWILIO_AUTH_TOKEN", twilio.AuthToken)

	return &Config{
		Port:          fmt.Sprintf("%d", file.App.Port),
		GinMode:       file.App.GinMode,
		StoreBackend:  file.Store.Backend,
		DSN:           env("DATABASE_DSN", file.Store.DSN),
		RedisAddr:     file.Redis.Addr,
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       file.Redis.DB,
		Hasher:        file.Security.Hasher,
		OTPTTL:        otpTTL,
		OTPAttempts:   file.OTP.MaxAttempts,
		SessionTTL:    sessTTL,
		RememberTTL:   remTTL,
		MailProvider:  file.Mail.Provider,
		MailRecipient: file.Mail.Recipient,
		SMTP:          smtp,
		Twilio:        twilio,
		RateRPS:       file.HTTP.RateRPS,
		RateBurst:     file.HTTP.RateBurst,
	}, nil
}
