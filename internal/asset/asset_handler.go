package asset

import (
	"net/http"

	asseterrors "go-directory/internal/asset/errors"
	"go-directory/internal/shared/apperror"
	"go-directory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  BlobStore
	logger *zap.Logger
}

func NewHandler(store BlobStore, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("asset.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.handler")
	}
	return &Handler{store: store, logger: l}
}

// Get streams a stored blob.
func (h *Handler) Get(c *gin.Context) {
	bucket := Bucket(c.Param("bucket"))
	key := c.Param("key")
	if !bucket.Valid() {
		h.writeError(c, asseterrors.ErrUnknownBucket)
		return
	}

	obj, err := h.store.Get(c.Request.Context(), bucket, key)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("asset request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
