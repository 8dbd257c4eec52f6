package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uzeuro/association-api/internal/content"
)

func (h *httpHandler) handleContentList(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.content.List(c.Request.Context(), table, content.ListFilters{
			Status:    c.Query("status"),
			Timeframe: c.Query("filter"),
			Format:    c.Query("format"),
		})
		if err != nil {
			h.internalError(c, "content list", err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func (h *httpHandler) handleContentGet(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c)
		if !ok {
			return
		}

		row, err := h.content.Get(c.Request.Context(), table, id)
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			h.internalError(c, "content get", err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func (h *httpHandler) handleContentCreate(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body content.Row
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		if err := h.content.Create(c.Request.Context(), table, body); err != nil {
			h.internalError(c, "content create", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *httpHandler) handleContentUpdate(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c)
		if !ok {
			return
		}
		var body content.Row
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		err := h.content.Update(c.Request.Context(), table, id, body)
		if errors.Is(err, content.ErrUnknownField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			h.internalError(c, "content update", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *httpHandler) handleContentDelete(table string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.pathID(c)
		if !ok {
			return
		}

		err := h.content.Delete(c.Request.Context(), table, id)
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			h.internalError(c, "content delete", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *httpHandler) handlePublicationDownload(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	downloads, err := h.content.IncrementDownloads(c.Request.Context(), id)
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "publication download", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "downloads": downloads})
}
