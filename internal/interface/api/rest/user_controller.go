package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/application/services"
	domain "document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	"document-manager-api/internal/interface/api/rest/dto/document"
	"document-manager-api/internal/interface/api/rest/dto/user"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService     ports.UserService
	documentService ports.DocumentService
	logger          *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	documentService ports.DocumentService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService:     userService,
		documentService: documentService,
		logger:          logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	r.GET(RouteMe, auth, uc.GetMeHandler)
	r.PUT(RouteMePassword, auth, uc.UpdateMyPasswordHandler)
	r.PUT(RouteMeOnboarding, auth, uc.UpdateMyOnboardingHandler)

	r.GET(RouteUsers, auth, admin, uc.GetUsersHandler)
	r.POST(RouteUsers, auth, admin, uc.CreateUserHandler)
	r.GET(RouteUser, auth, admin, uc.GetUserHandler)
	r.PUT(RouteUser, auth, admin, uc.UpdateUserHandler)
	r.DELETE(RouteUser, auth, admin, uc.DeleteUserHandler)
	r.GET(RouteUserDocuments, auth, admin, uc.GetUserDocumentsHandler)
	r.GET(RouteStats, auth, admin, uc.GetStatsHandler)

	return uc
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	u, err := uc.userService.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("GetByID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateMyPasswordHandler(c *gin.Context) {
	var req user.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidatePassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	err := uc.userService.UpdatePassword(c.Request.Context(), middleware.UserID(c), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update password"},
		)
		uc.logger.Error("UpdatePassword() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) UpdateMyOnboardingHandler(c *gin.Context) {
	var req user.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Onboarding == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": gin.H{"onboarding": "onboarding is required"},
		})
		return
	}

	err := uc.userService.UpdateOnboarding(c.Request.Context(), middleware.UserID(c), *req.Onboarding)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update onboarding"},
		)
		uc.logger.Error("UpdateOnboarding() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	sort, err := validator.ValidateSort(c.Query("sort_column"), c.Query("asc"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": err.Error()},
		)
		return
	}

	users, err := uc.userService.List(c.Request.Context(), domain.Criteria{Search: c.Query("search")}, sort)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	u, err := uc.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("Get() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateCreateUser(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.Create(c.Request.Context(), user.ToDomainUser(req), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExistingUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		uc.logger.Error("Create() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateUpdateUser(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	u, err := uc.userService.Update(
		c.Request.Context(),
		c.Param("username"),
		user.ToDomainPatch(req),
		middleware.UserID(c),
	)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user"},
		)
		uc.logger.Error("Update() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	err := uc.userService.Delete(c.Request.Context(), c.Param("username"), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "the admin user cannot be deleted"})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to delete user"},
			)
			uc.logger.Error("Delete() error", zap.Error(err))
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetUserDocumentsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := uc.userService.Get(ctx, c.Param("username"))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("Get() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	docs, err := uc.documentService.ListByOwner(ctx, u.ID)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get documents"},
		)
		uc.logger.Error("ListByOwner() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, document.ToResponseDocuments(docs))
}

func (uc *UserController) GetStatsHandler(c *gin.Context) {
	s, err := uc.userService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get stats"},
		)
		uc.logger.Error("Stats() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseStats(s))
}
