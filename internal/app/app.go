package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/you/learnsphere/internal/config"
	httpx "github.com/you/learnsphere/internal/http"
	"github.com/you/learnsphere/internal/http/handlers"
	"github.com/you/learnsphere/internal/http/middleware"
)

// Run wires the container and serves HTTP until the process ends.
func Run(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	ah := handlers.NewAuthHandlers(c.AccountSvc, c.OTPSvc, c.UserRepo)
	lh := handlers.NewLeadsHandlers(c.LeadsSvc)

	rps, burst := cfg.RateRPS, cfg.RateBurst
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}
	ipLimiter := middleware.NewIPRateLimiter(rps, burst)
	metrics := middleware.NewPrometheusMiddleware()

	r := httpx.BuildRouter(ah, lh, ipLimiter, metrics, logger)

	logger.Info().Str("port", cfg.Port).Str("store", cfg.StoreBackend).Msg("starting server")
	return r.Run(":" + cfg.Port)
}
