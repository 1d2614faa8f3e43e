package routes

import (
	"fmt"

	"signyard/internal/core/config"
	"signyard/internal/core/container"
	"signyard/internal/middleware"
	"signyard/internal/rate_limiter"
	"signyard/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRouter builds the gin engine with public and operator-only routes.
func NewRouter(cfg *config.Config, c *container.Container, log *zap.Logger) (*gin.Engine, error) {
	auth, err := security.NewAuthenticator(cfg.JWTSecret, cfg.OperatorUsername, cfg.OperatorPasswordHash, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	router.Use(
		middleware.RequestLogger(log),
		middleware.RecoveryMiddleware(log),
	)

	RegisterUtilityRoutes(router, c)
	RegisterPublicRoutes(router, auth, log)
	RegisterProtectedRoutes(router, c, auth, cfg)

	return router, nil
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	c.HealthChecker.RegisterRoutes(router)
}

func RegisterPublicRoutes(router *gin.Engine, auth *security.Authenticator, log *zap.Logger) {
	security.NewLoginHandler(auth, log).RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container, auth *security.Authenticator, cfg *config.Config) {
	limiter := rate_limiter.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	protectedRoutes := router.Group("")
	protectedRoutes.Use(
		limiter.Middleware(),
		auth.JWTMiddleware(),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
	)

	c.CatalogHandler.RegisterRoutes(protectedRoutes)
	c.DeploymentHandler.RegisterRoutes(protectedRoutes)
	c.ReportHandler.RegisterRoutes(protectedRoutes)
	c.SyncHandler.RegisterRoutes(protectedRoutes)
}
