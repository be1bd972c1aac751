package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/you/learnsphere/internal/http/handlers"
	"github.com/you/learnsphere/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface.
func BuildRouter(ah *handlers.AuthHandlers, lh *handlers.LeadsHandlers, ipLimiter *middleware.IPRateLimiter, metrics *middleware.PrometheusMiddleware, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.Instrument())
	r.Use(middleware.CORS())
	r.Use(ipLimiter.Limit())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/signup/verify", ah.SignupVerify)
	auth.POST("/login", ah.Login)
	auth.POST("/login/verify", ah.LoginVerify)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.GET("/me", ah.Me)
	auth.POST("/logout", ah.Logout)

	api := r.Group("/api")
	api.POST("/apply", lh.Apply)
	api.POST("/contact", lh.Contact)

	return r
}
