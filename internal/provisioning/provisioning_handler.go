package provisioning

import (
	"net/http"

	"go-directory/internal/asset"
	"go-directory/internal/middleware"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("provisioning.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("provisioning.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) CreateTenant(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	var req CreateTenantRequest
	if err := c.ShouldBind(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	files, err := asset.FilesFromRequest(c, asset.FieldLogo, asset.FieldCover)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	defer files.Close()

	tenant, err := h.service.CreateTenant(c.Request.Context(), p, req, files)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tenant, nil)
}

func (h *Handler) OnboardEmployee(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	var req OnboardEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.AbortWithError(c, apperror.MapValidationError(err))
		return
	}

	files, err := asset.FilesFromRequest(c, asset.FieldAvatar, asset.FieldCover)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	defer files.Close()

	resp, err := h.service.OnboardEmployee(c.Request.Context(), p, req, files)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}
