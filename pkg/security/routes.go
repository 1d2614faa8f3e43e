package security

import (
	"errors"
	"net/http"
	"time"

	"signyard/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginAttempts = 10
	loginWindow   = 5 * time.Minute
)

type LoginHandler struct {
	auth        *Authenticator
	rateLimiter *rate_limiter.RateLimiter
	log         *zap.Logger
}

func NewLoginHandler(auth *Authenticator, log *zap.Logger) *LoginHandler {
	return &LoginHandler{
		auth:        auth,
		rateLimiter: rate_limiter.NewWindowLimiter(loginAttempts, loginWindow),
		log:         log,
	}
}

func (l *LoginHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/auth", l.rateLimiter.Middleware(), l.Login)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (l *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := l.auth.Authenticate(req.Username, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.log.Warn("Failed login attempt", zap.String("client", rate_limiter.ClientKey(c)))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := l.auth.GenerateJWT(req.Username)
	if err != nil {
		l.log.Error("Failed to generate token", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
