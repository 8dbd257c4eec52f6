package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uzeuro/association-api/internal/registration"
)

type webinarRegisterPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Citizenship  string `json:"citizenship"`
	Telegram     string `json:"telegram"`
	WebinarID    *int64 `json:"webinarId"`
	WebinarTitle string `json:"webinarTitle"`
}

func (h *httpHandler) handleWebinarRegister(c *gin.Context) {
	var request webinarRegisterPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	admission, err := h.registration.RegisterWebinar(c.Request.Context(), registration.WebinarRequest{
		Request: registration.Request{
			Name:        request.Name,
			Email:       request.Email,
			Phone:       request.Phone,
			Citizenship: request.Citizenship,
			Telegram:    request.Telegram,
		},
		WebinarID:    request.WebinarID,
		WebinarTitle: request.WebinarTitle,
	})
	if errors.Is(err, registration.ErrCapacityFull) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webinar is full", "remaining": 0})
		return
	}
	if errors.Is(err, registration.ErrAlreadyRegistered) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already registered", "remaining": admission.Remaining})
		return
	}
	if err != nil {
		h.internalError(c, "webinar register", err)
		return
	}

	h.notifier.Notify("New Webinar Registration — UZEURO", fmt.Sprintf(
		`<h2>New Webinar Registration</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Citizenship:</strong> %s</p>
<p><strong>Telegram:</strong> %s</p>
<p><strong>Webinar:</strong> %s</p>`,
		request.Name, request.Email, dash(request.Phone),
		dash(request.Citizenship), dash(request.Telegram), dash(request.WebinarTitle)))

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type eventRegisterPayload struct {
	EventID     int64  `json:"eventId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Citizenship string `json:"citizenship"`
	Telegram    string `json:"telegram"`
}

func (h *httpHandler) handleEventRegister(c *gin.Context) {
	var request eventRegisterPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	admission, err := h.registration.RegisterEvent(c.Request.Context(), registration.EventRequest{
		Request: registration.Request{
			Name:        request.Name,
			Email:       request.Email,
			Phone:       request.Phone,
			Citizenship: request.Citizenship,
			Telegram:    request.Telegram,
		},
		EventID: request.EventID,
	})
	if errors.Is(err, registration.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if errors.Is(err, registration.ErrCapacityFull) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is full", "remaining": 0})
		return
	}
	if errors.Is(err, registration.ErrAlreadyRegistered) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already registered", "remaining": admission.Remaining})
		return
	}
	if err != nil {
		h.internalError(c, "event register", err)
		return
	}

	h.notifier.Notify("New Event Registration — "+admission.ResourceTitle, fmt.Sprintf(
		`<h2>New Event Registration</h2>
<p><strong>Event:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Spots remaining:</strong> %d</p>`,
		admission.ResourceTitle, request.Name, request.Email, admission.Remaining))

	c.JSON(http.StatusOK, gin.H{"success": true, "remaining": admission.Remaining})
}

func (h *httpHandler) handleListRegistrations(c *gin.Context) {
	var webinarID *int64
	if raw := c.Query("webinar_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webinar_id"})
			return
		}
		webinarID = &parsed
	}

	registrations, err := h.registration.ListWebinarRegistrations(c.Request.Context(), webinarID)
	if err != nil {
		h.internalError(c, "list registrations", err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *httpHandler) handleListEventRegistrations(c *gin.Context) {
	var eventID *int64
	if raw := c.Query("event_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id"})
			return
		}
		eventID = &parsed
	}

	registrations, err := h.registration.ListEventRegistrations(c.Request.Context(), eventID)
	if err != nil {
		h.internalError(c, "list event registrations", err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *httpHandler) handleUpdateRegistration(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var request statusUpdatePayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.registration.UpdateWebinarStatus(c.Request.Context(), id, request.Status)
	if errors.Is(err, registration.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "update registration", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *httpHandler) handleDeleteRegistration(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	err := h.registration.DeleteWebinarRegistration(c.Request.Context(), id)
	if errors.Is(err, registration.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		h.internalError(c, "delete registration", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
