package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uzeuro/association-api/internal/blob"
)

const blobCacheControl = "public, max-age=31536000"

type imageUploadPayload struct {
	Data string `json:"data"`
}

func (h *httpHandler) handleImageUpload(c *gin.Context) {
	var request imageUploadPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, _, err := h.blobs.PutImage(c.Request.Context(), request.Data)
	if errors.Is(err, blob.ErrInvalidData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
		return
	}
	if err != nil {
		h.internalError(c, "image upload", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": requestOrigin(c) + "/api/images/" + id})
}

type fileUploadPayload struct {
	Data     string `json:"data"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
}

func (h *httpHandler) handleFileUpload(c *gin.Context) {
	var request fileUploadPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.blobs.PutFile(c.Request.Context(), request.Data, request.FileName, request.MimeType)
	if errors.Is(err, blob.ErrInvalidData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file data"})
		return
	}
	if err != nil {
		h.internalError(c, "file upload", err)
		return
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = "file"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      requestOrigin(c) + "/api/files/" + id,
		"fileName": fileName,
	})
}

// Blob misses answer with a plain-text 404, not the JSON error envelope.
func (h *httpHandler) handleServeImage(c *gin.Context) {
	record, err := h.blobs.Get(c.Request.Context(), blob.NamespaceImages, c.Param("id"))
	if errors.Is(err, blob.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		h.internalError(c, "serve image", err)
		return
	}

	mimeType := record.MimeType
	if mimeType == "" {
		mimeType = blob.DefaultImageMime
	}
	c.Header("Cache-Control", blobCacheControl)
	c.Data(http.StatusOK, mimeType, record.Data)
}

func (h *httpHandler) handleServeFile(c *gin.Context) {
	record, err := h.blobs.Get(c.Request.Context(), blob.NamespaceFiles, c.Param("id"))
	if errors.Is(err, blob.ErrNotFound) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		h.internalError(c, "serve file", err)
		return
	}

	mimeType := record.MimeType
	if mimeType == "" {
		mimeType = blob.DefaultFileMime
	}
	fileName := record.FileName
	if fileName == "" {
		fileName = "download"
	}
	c.Header("Cache-Control", blobCacheControl)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, mimeType, record.Data)
}
