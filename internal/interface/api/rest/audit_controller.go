package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	dto "document-manager-api/internal/interface/api/rest/dto/auditlog"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/internal/interface/api/rest/validator"
)

type AuditController struct {
	auditService ports.AuditService
	logger       *zap.Logger
}

func NewAuditController(
	r *gin.Engine,
	auditService ports.AuditService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AuditController {
	ac := &AuditController{
		auditService: auditService,
		logger:       logger,
	}

	r.GET(RouteAuditLogs,
		middleware.AuthMiddleware(jwtService),
		middleware.RequireRole(user.RoleAdmin),
		ac.GetAuditLogsHandler,
	)

	return ac
}

func (ac *AuditController) GetAuditLogsHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("offset"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	crit := auditlog.Criteria{
		EntityID: c.Query("entity_id"),
		UserID:   c.Query("user_id"),
	}
	res, err := ac.auditService.List(c.Request.Context(), crit, page)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get audit logs"},
		)
		ac.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToResponsePage(res))
}
