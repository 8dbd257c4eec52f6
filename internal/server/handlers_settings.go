package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleGetSettings(c *gin.Context) {
	values, err := h.settings.All(c.Request.Context())
	if err != nil {
		h.internalError(c, "get settings", err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *httpHandler) handleSetSettings(c *gin.Context) {
	var entries map[string]string
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.settings.SetMany(c.Request.Context(), entries); err != nil {
		h.internalError(c, "set settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
