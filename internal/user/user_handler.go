package user

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
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	users, err := h.svc.List(c.Request.Context(), p, c.Query("name"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	u, err := h.svc.GetByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
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

	u, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), req, files)
	if err != nil {
		h.logger.Debug("update employee rejected", zap.String("user_id", c.Param("id")), zap.Error(err))
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Roster(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	roster, err := h.svc.Roster(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, roster, nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	u, err := h.svc.GetProfile(c.Request.Context(), p)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
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

	u, err := h.svc.UpdateProfile(c.Request.Context(), p, req, files)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) ProfileCard(c *gin.Context) {
	card, err := h.svc.ProfileCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, card, nil)
}
