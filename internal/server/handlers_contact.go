package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uzeuro/association-api/internal/contact"
)

type contactSubmitPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *httpHandler) handleContactSubmit(c *gin.Context) {
	var request contactSubmitPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	_, err := h.contact.Submit(c.Request.Context(), contact.SubmitRequest{
		Name:    request.Name,
		Email:   request.Email,
		Subject: request.Subject,
		Message: request.Message,
	})
	if errors.Is(err, contact.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}
	if err != nil {
		h.internalError(c, "contact submit", err)
		return
	}

	h.notifier.Notify(fmt.Sprintf("New Contact Message: %s — UZEURO", request.Subject), fmt.Sprintf(
		`<h2>New Contact Message</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p><p>%s</p>`,
		request.Name, request.Email, request.Subject, request.Message))

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) handleListMessages(c *gin.Context) {
	messages, err := h.contact.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.internalError(c, "list messages", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *httpHandler) handleUpdateMessage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var request statusUpdatePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.contact.UpdateStatus(c.Request.Context(), id, request.Status)
	if errors.Is(err, contact.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "update message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) handleDeleteMessage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	err := h.contact.Delete(c.Request.Context(), id)
	if errors.Is(err, contact.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "delete message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
