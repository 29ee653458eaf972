package company

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
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetMe(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	comp, err := h.service.GetMine(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	companies, err := h.service.List(c.Request.Context(), p, c.Query("name"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, companies, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
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

	comp, err := h.service.Update(c.Request.Context(), p, c.Param("id"), req, files)
	if err != nil {
		h.logger.Debug("update company rejected", zap.String("company_id", c.Param("id")), zap.Error(err))
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
