package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/domain/group"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	dto "document-manager-api/internal/interface/api/rest/dto/group"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/internal/interface/api/rest/validator"
)

type GroupController struct {
	groupService ports.GroupService
	logger       *zap.Logger
}

func NewGroupController(
	r *gin.Engine,
	groupService ports.GroupService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *GroupController {
	gc := &GroupController{
		groupService: groupService,
		logger:       logger,
	}

	auth := middleware.AuthMiddleware(jwtService)
	admin := middleware.RequireRole(user.RoleAdmin)

	r.GET(RouteGroups, auth, admin, gc.GetGroupsHandler)
	r.POST(RouteGroups, auth, admin, gc.CreateGroupHandler)
	r.DELETE(RouteGroup, auth, admin, gc.DeleteGroupHandler)
	r.GET(RouteGroupMembers, auth, admin, gc.GetMembersHandler)
	r.PUT(RouteGroupMember, auth, admin, gc.AddMemberHandler)
	r.DELETE(RouteGroupMember, auth, admin, gc.RemoveMemberHandler)

	return gc
}

func (gc *GroupController) GetGroupsHandler(c *gin.Context) {
	gs, err := gc.groupService.List(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get groups"},
		)
		gc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseGroups(gs))
}

func (gc *GroupController) CreateGroupHandler(c *gin.Context) {
	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateGroup(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	g, err := gc.groupService.Create(c.Request.Context(), req.Name, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, group.ErrAlreadyExistingName) {
			c.JSON(http.StatusConflict, gin.H{"error": "group already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a group"},
		)
		gc.logger.Error("Create() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, dto.ToResponseGroup(*g))
}

func (gc *GroupController) DeleteGroupHandler(c *gin.Context) {
	err := gc.groupService.Delete(c.Request.Context(), c.Param("name"), middleware.UserID(c))
	if err != nil {
		gc.writeError(c, "Delete", "failed to delete a group", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (gc *GroupController) GetMembersHandler(c *gin.Context) {
	ms, err := gc.groupService.Members(c.Request.Context(), c.Param("name"))
	if err != nil {
		gc.writeError(c, "Members", "failed to get group members", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseMembers(ms))
}

func (gc *GroupController) AddMemberHandler(c *gin.Context) {
	err := gc.groupService.AddMember(c.Request.Context(), c.Param("name"), c.Param("username"))
	if err != nil {
		gc.writeError(c, "AddMember", "failed to add a group member", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (gc *GroupController) RemoveMemberHandler(c *gin.Context) {
	err := gc.groupService.RemoveMember(c.Request.Context(), c.Param("name"), c.Param("username"))
	if err != nil {
		gc.writeError(c, "RemoveMember", "failed to remove a group member", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (gc *GroupController) writeError(c *gin.Context, op, msg string, err error) {
	switch {
	case errors.Is(err, group.ErrNotFound),
		errors.Is(err, group.ErrMemberNotFound),
		errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	gc.logger.Error(op+"() error", zap.Error(err))
}
