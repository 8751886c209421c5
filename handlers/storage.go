package handlers

import (
	"context"
	"io"
	"net/http"

	"poojaseva/services/storage"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

// MediaUploader stores provider media and records it on the profile.
type MediaUploader interface {
	UploadProviderMedia(ctx context.Context, providerID string, kind storage.MediaKind, file io.Reader) (*storage.Asset, error)
}

// StorageHandler accepts provider avatar and certificate uploads.
type StorageHandler struct {
	Media MediaUploader
}

func NewStorageHandler(media MediaUploader) *StorageHandler {
	return &StorageHandler{Media: media}
}

// Upload stores the multipart "file" field under the :folder kind for the calling provider.
func (h *StorageHandler) Upload(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	if u.ProviderID == "" {
		utils.JSONError(c, http.StatusForbidden, "only provider accounts can upload media", "")
		return
	}
	kind, err := storage.ParseMediaKind(c.Param("folder"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file could not be read", err.Error())
		return
	}
	defer file.Close()

	asset, err := h.Media.UploadProviderMedia(c.Request.Context(), u.ProviderID, kind, file)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("provider media stored",
		zap.String("provider", u.ProviderID), zap.String("kind", string(kind)))
	c.JSON(http.StatusOK, gin.H{
		"message": "file uploaded successfully",
		"url":     asset.URL,
		"id":      asset.PublicID,
	})
}
