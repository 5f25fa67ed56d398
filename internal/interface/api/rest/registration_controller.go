package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/registration"
	domain "document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	dto "document-manager-api/internal/interface/api/rest/dto/registration"
	"document-manager-api/internal/interface/api/rest/dto/user"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/internal/interface/api/rest/validator"
)

type RegistrationController struct {
	registrationService ports.RegistrationService
	logger              *zap.Logger
}

func NewRegistrationController(
	r *gin.Engine,
	registrationService ports.RegistrationService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *RegistrationController {
	rc := &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	r.POST(RouteRegistrations, rc.SubmitRegistrationHandler)
	r.GET(RouteRegistrations, auth, admin, rc.GetRegistrationsHandler)
	r.DELETE(RouteRegistration, auth, admin, rc.RejectRegistrationHandler)
	r.POST(RouteRegistrationApprove, auth, admin, rc.ApproveRegistrationHandler)

	return rc
}

func (rc *RegistrationController) SubmitRegistrationHandler(c *gin.Context) {
	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegistration(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	reg, err := rc.registrationService.Submit(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExistingUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to save a registration"},
		)
		rc.logger.Error("Submit() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToResponseRegistration(*reg))
}

func (rc *RegistrationController) GetRegistrationsHandler(c *gin.Context) {
	regs, err := rc.registrationService.List(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get registrations"},
		)
		rc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseRegistrations(regs))
}

func (rc *RegistrationController) ApproveRegistrationHandler(c *gin.Context) {
	u, err := rc.registrationService.Approve(c.Request.Context(), c.Param("username"), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrAlreadyExistingUsername):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to approve a registration"},
			)
			rc.logger.Error("Approve() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (rc *RegistrationController) RejectRegistrationHandler(c *gin.Context) {
	err := rc.registrationService.Reject(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to reject a registration"},
		)
		rc.logger.Error("Reject() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
