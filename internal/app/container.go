package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/you/learnsphere/domain"
	"github.com/you/learnsphere/internal/config"
	"github.com/you/learnsphere/internal/infrastructure/auth"
	"github.com/you/learnsphere/internal/infrastructure/notifications"
	"github.com/you/learnsphere/internal/infrastructure/repositories"
	"github.com/you/learnsphere/internal/infrastructure/storage"
	"github.com/you/learnsphere/internal/services"
)

// Container holds all dependencies.
type Container struct {
	Config *config.Config
	Logger zerolog.Logger

	// Infrastructure
	Store       domain.Store
	RedisClient *redis.Client
	DB          *gorm.DB

	// Repositories
	UserRepo      domain.UserRepository
	OTPRepo       domain.OTPRepository
	SessionRepo   domain.SessionRepository
	LoginAttempts domain.AttemptRepository
	OTPAttempts   domain.AttemptRepository

	// Services
	Hasher       domain.PasswordHasher
	Notifier     domain.NotificationService
	LoginLimiter *services.RateLimiter
	OTPLimiter   *services.RateLimiter
	AccountSvc   *services.AccountService
	OTPSvc       *services.OTPService
	LeadsSvc     *services.LeadsService
}

// NewContainer creates and initializes all dependencies.
func NewContainer(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStore(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initStore() error {
	switch c.Config.StoreBackend {
	case "", "memory":
		c.Store = storage.NewMemoryStore()
	case "redis":
		c.RedisClient = redis.NewClient(&redis.Options{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
			DB:       c.Config.RedisDB,
		})
		c.Store = storage.NewRedisStore(c.RedisClient)
	case "postgres":
		db, err := gorm.Open(postgres.Open(c.Config.DSN), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		store, err := storage.NewGormStore(db)
		if err != nil {
			return err
		}
		c.DB = db
		c.Store = store
	default:
		return fmt.Errorf("unknown store backend %q", c.Config.StoreBackend)
	}
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.Store)
	c.OTPRepo = repositories.NewOTPRepository(c.Store)
	c.SessionRepo = repositories.NewSessionRepository(c.Store)
	c.LoginAttempts = repositories.NewLoginAttemptRepository(c.Store)
	c.OTPAttempts = repositories.NewOTPAttemptRepository(c.Store)
}

func (c *Container) initServices() error {
	switch c.Config.Hasher {
	case "", "bcrypt":
		c.Hasher = auth.NewPasswordService()
	case "legacy":
		c.Hasher = auth.NewLegacyHasher()
	default:
		return fmt.Errorf("unknown hasher %q", c.Config.Hasher)
	}

	switch c.Config.MailProvider {
	case "", "console":
		c.Notifier = notifications.NewConsoleService(c.Logger)
	case "smtp":
		s := c.Config.SMTP
		c.Notifier = notifications.NewSMTPService(s.Host, s.Port, s.Username, s.Password, s.From)
	case "twilio":
		t := c.Config.Twilio
		c.Notifier = notifications.NewTwilioService(t.AccountSID, t.AuthToken, t.FromNumber, t.OperatorTo, c.Logger)
	default:
		return fmt.Errorf("unknown mail provider %q", c.Config.MailProvider)
	}

	c.LoginLimiter = services.NewRateLimiter(c.LoginAttempts, services.LoginLimiterConfig())
	c.OTPLimiter = services.NewRateLimiter(c.OTPAttempts, services.OTPLimiterConfig())

	otpCfg := services.DefaultOTPConfig()
	if c.Config.OTPTTL > 0 {
		otpCfg.TTL = c.Config.OTPTTL
	}
	if c.Config.OTPAttempts > 0 {
		otpCfg.MaxAttempts = c.Config.OTPAttempts
	}
	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.OTPLimiter, c.LoginLimiter, c.Notifier, c.Logger, otpCfg)

	sessCfg := services.DefaultSessionConfig()
	if c.Config.SessionTTL > 0 {
		sessCfg.TTL = c.Config.SessionTTL
	}
	if c.Config.RememberTTL > 0 {
		sessCfg.RememberTTL = c.Config.RememberTTL
	}
	c.AccountSvc = services.NewAccountService(c.UserRepo, c.SessionRepo, c.Hasher, c.LoginLimiter, c.Logger, sessCfg)

	c.LeadsSvc = services.NewLeadsService(c.Notifier, c.Logger, c.Config.MailRecipient)
	return nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
