package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uzeuro/association-api/internal/membership"
)

type membershipApplyPayload struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Company         string   `json:"company"`
	Position        string   `json:"position"`
	Country         string   `json:"country"`
	Experience      string   `json:"experience"`
	Tier            string   `json:"tier"`
	Specializations []string `json:"specializations"`
}

func (h *httpHandler) handleMembershipApply(c *gin.Context) {
	var request membershipApplyPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	application, err := h.membership.Submit(c.Request.Context(), membership.SubmitRequest{
		FirstName:       request.FirstName,
		LastName:        request.LastName,
		Email:           request.Email,
		Company:         request.Company,
		Position:        request.Position,
		Country:         request.Country,
		Experience:      request.Experience,
		Tier:            request.Tier,
		Specializations: request.Specializations,
	})
	if errors.Is(err, membership.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first name, last name and email are required"})
		return
	}
	if err != nil {
		h.internalError(c, "membership apply", err)
		return
	}

	h.notifier.Notify("New Membership Application — UZEURO", fmt.Sprintf(
		`<h2>New Membership Application</h2>
<p><strong>Name:</strong> %s %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
<p><strong>Position:</strong> %s</p>
<p><strong>Country:</strong> %s</p>
<p><strong>Tier:</strong> %s</p>`,
		request.FirstName, request.LastName, request.Email,
		dash(request.Company), dash(request.Position), dash(request.Country), application.Tier))

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) handleListApplications(c *gin.Context) {
	applications, err := h.membership.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.internalError(c, "list applications", err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

type statusUpdatePayload struct {
	Status string `json:"status"`
}

func (h *httpHandler) handleUpdateApplication(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var request statusUpdatePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.membership.UpdateStatus(c.Request.Context(), id, request.Status)
	if errors.Is(err, membership.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "update application", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) handleDeleteApplication(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	err := h.membership.Delete(c.Request.Context(), id)
	if errors.Is(err, membership.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "delete application", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
