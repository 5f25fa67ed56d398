package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/application/services"
	"document-manager-api/internal/interface/api/rest/dto/auth"
	"document-manager-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := ac.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to authenticate"},
		)
		ac.logger.Error("Authenticate() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"error": services.ErrInvalidCredentials.Error()},
		)
		return
	}

	token, err := ac.authService.GenerateToken(u)
	if err != nil {
		ac.logger.Error("GenerateToken() error", zap.Error(err), zap.String("user_id", u.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
	})
}
