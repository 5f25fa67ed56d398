package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/application/services"
	"document-manager-api/internal/domain/acl"
	domain "document-manager-api/internal/domain/document"
	"document-manager-api/internal/domain/user"
	"document-manager-api/internal/infrastructure/jwt"
	"document-manager-api/internal/interface/api/rest/dto/document"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/internal/interface/api/rest/validator"
)

type DocumentController struct {
	documentService ports.DocumentService
	logger          *zap.Logger
}

func NewDocumentController(
	r *gin.Engine,
	documentService ports.DocumentService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *DocumentController {
	dc := &DocumentController{
		documentService: documentService,
		logger:          logger,
	}

	auth := middleware.AuthMiddleware(jwtService)

	r.GET(RouteDocuments, auth, dc.GetDocumentsHandler)
	r.POST(RouteDocuments, auth, dc.CreateDocumentHandler)
	r.GET(RouteDocument, auth, dc.GetDocumentHandler)
	r.PUT(RouteDocument, auth, dc.UpdateDocumentHandler)
	r.DELETE(RouteDocument, auth, dc.DeleteDocumentHandler)
	r.PUT(RouteDocumentFile, auth, dc.UpdateDocumentFileHandler)
	r.PUT(RouteDocumentAcls, auth, dc.ShareDocumentHandler)
	r.DELETE(RouteDocumentAcl, auth, dc.UnshareDocumentHandler)
	r.GET(RouteAdminDocuments, auth, middleware.RequireRole(user.RoleAdmin), dc.GetAllDocumentsHandler)

	return dc
}

// documentCriteria reads the listing filters from the query string.
func documentCriteria(c *gin.Context) (domain.Criteria, map[string]string) {
	errs := make(map[string]string)
	dc := domain.Criteria{
		Search:    c.Query("search"),
		Language:  c.Query("language"),
		CreatorID: c.Query("creator_id"),
	}

	if dc.Language != "" && !validator.IsLanguage(dc.Language) {
		errs["language"] = "unknown language code"
	}
	var err error
	if dc.CreateDateMin, err = validator.ValidateDate("create_date_min", c.Query("create_date_min")); err != nil {
		errs["create_date_min"] = err.Error()
	}
	if dc.CreateDateMax, err = validator.ValidateDate("create_date_max", c.Query("create_date_max")); err != nil {
		errs["create_date_max"] = err.Error()
	}
	if len(errs) > 0 {
		return dc, errs
	}

	return dc, nil
}

func (dc *DocumentController) GetDocumentsHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("offset"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sort, err := validator.ValidateSort(c.Query("sort_column"), c.Query("asc"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	crit, errs := documentCriteria(c)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid query",
			"details": errs,
		})
		return
	}

	res, err := dc.documentService.List(c.Request.Context(), middleware.UserID(c), crit, page, sort)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get documents"},
		)
		dc.logger.Error("List() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, document.ToResponsePage(res))
}

func (dc *DocumentController) GetAllDocumentsHandler(c *gin.Context) {
	page, err := validator.ValidatePage(c.Query("offset"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docs, err := dc.documentService.ListAll(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get documents"},
		)
		dc.logger.Error("ListAll() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, document.ToResponseDocuments(docs))
}

func (dc *DocumentController) GetDocumentHandler(c *gin.Context) {
	d, err := dc.documentService.Get(c.Request.Context(), c.Param("document_id"), middleware.UserID(c))
	if err != nil {
		dc.writeError(c, "Get", "failed to get a document", err)
		return
	}

	c.JSON(http.StatusOK, document.ToResponseDetails(*d))
}

func (dc *DocumentController) CreateDocumentHandler(c *gin.Context) {
	req, ok := bindDocument(c)
	if !ok {
		return
	}

	d, err := dc.documentService.Create(c.Request.Context(), document.ToDomainDocument(req), middleware.UserID(c))
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a document"},
		)
		dc.logger.Error("Create() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, document.ToResponseDocument(*d))
}

func (dc *DocumentController) UpdateDocumentHandler(c *gin.Context) {
	req, ok := bindDocument(c)
	if !ok {
		return
	}

	in := document.ToDomainDocument(req)
	in.ID = c.Param("document_id")

	d, err := dc.documentService.Update(c.Request.Context(), in, middleware.UserID(c))
	if err != nil {
		dc.writeError(c, "Update", "failed to update a document", err)
		return
	}

	c.JSON(http.StatusOK, document.ToResponseDocument(*d))
}

func (dc *DocumentController) UpdateDocumentFileHandler(c *gin.Context) {
	var req document.FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	err := dc.documentService.UpdateFileID(c.Request.Context(), c.Param("document_id"), req.FileID, middleware.UserID(c))
	if err != nil {
		dc.writeError(c, "UpdateFileID", "failed to update a document", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (dc *DocumentController) DeleteDocumentHandler(c *gin.Context) {
	err := dc.documentService.Delete(c.Request.Context(), c.Param("document_id"), middleware.UserID(c))
	if err != nil {
		dc.writeError(c, "Delete", "failed to delete a document", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (dc *DocumentController) ShareDocumentHandler(c *gin.Context) {
	var req document.AclRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateAcl(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	a, err := dc.documentService.Share(
		c.Request.Context(),
		c.Param("document_id"),
		acl.PermType(req.Perm),
		req.Target,
		acl.TargetType(req.Type),
		middleware.UserID(c),
	)
	if err != nil {
		dc.writeError(c, "Share", "failed to share a document", err)
		return
	}

	c.JSON(http.StatusOK, document.ToResponseAcl(*a, req.Target))
}

func (dc *DocumentController) UnshareDocumentHandler(c *gin.Context) {
	perm := acl.PermType(strings.ToUpper(c.Param("perm")))
	if !perm.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "perm must be READ or WRITE"})
		return
	}

	err := dc.documentService.Unshare(c.Request.Context(), c.Param("document_id"), perm, c.Param("target_id"), middleware.UserID(c))
	if err != nil {
		dc.writeError(c, "Unshare", "failed to unshare a document", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func bindDocument(c *gin.Context) (document.Request, bool) {
	var req document.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return req, false
	}
	if errs := validator.ValidateDocument(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return req, false
	}

	return req, true
}

func (dc *DocumentController) writeError(c *gin.Context, op, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrShareTargetNotFound),
		errors.Is(err, services.ErrAclNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrAclAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	dc.logger.Error(op+"() error", zap.Error(err))
}
