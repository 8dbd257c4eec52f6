package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uzeuro/association-api/internal/auth"
	"github.com/uzeuro/association-api/internal/blob"
	"github.com/uzeuro/association-api/internal/contact"
	"github.com/uzeuro/association-api/internal/content"
	"github.com/uzeuro/association-api/internal/membership"
	"github.com/uzeuro/association-api/internal/notify"
	"github.com/uzeuro/association-api/internal/registration"
	"github.com/uzeuro/association-api/internal/settings"
)

var (
	errMissingContentService      = errors.New("content service dependency required")
	errMissingMembershipService   = errors.New("membership service dependency required")
	errMissingRegistrationService = errors.New("registration service dependency required")
	errMissingContactService      = errors.New("contact service dependency required")
	errMissingSettingsService     = errors.New("settings service dependency required")
	errMissingBlobStore           = errors.New("blob store dependency required")
	errMissingTokenIssuer         = errors.New("token issuer dependency required")
)

// Dependencies wires the services behind the HTTP surface.
type Dependencies struct {
	Content      *content.Service
	Membership   *membership.Service
	Registration *registration.Service
	Contact      *contact.Service
	Settings     *settings.Service
	Blobs        *blob.Store
	Notifier     *notify.Notifier
	Tokens       *auth.TokenIssuer
	Credentials  auth.Credentials
	Logger       *zap.Logger
}

// NewHTTPHandler builds the gin router for the whole /api surface.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Content == nil {
		return nil, errMissingContentService
	}
	if deps.Membership == nil {
		return nil, errMissingMembershipService
	}
	if deps.Registration == nil {
		return nil, errMissingRegistrationService
	}
	if deps.Contact == nil {
		return nil, errMissingContactService
	}
	if deps.Settings == nil {
		return nil, errMissingSettingsService
	}
	if deps.Blobs == nil {
		return nil, errMissingBlobStore
	}
	if deps.Tokens == nil {
		return nil, errMissingTokenIssuer
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		content:      deps.Content,
		membership:   deps.Membership,
		registration: deps.Registration,
		contact:      deps.Contact,
		settings:     deps.Settings,
		blobs:        deps.Blobs,
		notifier:     deps.Notifier,
		tokens:       deps.Tokens,
		credentials:  deps.Credentials,
		logger:       logger,
	}

	api := router.Group("/api")

	api.GET("/health", handler.handleHealth)
	api.GET("/stats", handler.handleStats)
	api.POST("/admin/login", handler.handleAdminLogin)

	api.POST("/membership-apply", handler.handleMembershipApply)
	api.GET("/applications", handler.handleListApplications)
	api.PUT("/applications/:id", handler.handleUpdateApplication)
	api.DELETE("/applications/:id", handler.handleDeleteApplication)

	api.POST("/webinar-register", handler.handleWebinarRegister)
	api.GET("/registrations", handler.handleListRegistrations)
	api.PUT("/registrations/:id", handler.handleUpdateRegistration)
	api.DELETE("/registrations/:id", handler.handleDeleteRegistration)

	api.POST("/event-register", handler.handleEventRegister)
	api.GET("/event-registrations", handler.handleListEventRegistrations)

	api.POST("/contact", handler.handleContactSubmit)
	api.GET("/messages", handler.handleListMessages)
	api.PUT("/messages/:id", handler.handleUpdateMessage)
	api.DELETE("/messages/:id", handler.handleDeleteMessage)

	for _, table := range content.Tables() {
		table := table
		api.GET("/"+table, handler.handleContentList(table))
		api.POST("/"+table, handler.handleContentCreate(table))
		api.GET("/"+table+"/:id", handler.handleContentGet(table))
		api.PUT("/"+table+"/:id", handler.handleContentUpdate(table))
		api.DELETE("/"+table+"/:id", handler.handleContentDelete(table))
	}
	api.POST("/publications/:id/download", handler.handlePublicationDownload)

	api.POST("/upload", handler.handleImageUpload)
	api.POST("/upload-file", handler.handleFileUpload)
	api.GET("/images/:id", handler.handleServeImage)
	api.GET("/files/:id", handler.handleServeFile)

	api.GET("/settings", handler.handleGetSettings)
	api.PUT("/settings", handler.handleSetSettings)

	return router, nil
}

type httpHandler struct {
	content      *content.Service
	membership   *membership.Service
	registration *registration.Service
	contact      *contact.Service
	settings     *settings.Service
	blobs        *blob.Store
	notifier     *notify.Notifier
	tokens       *auth.TokenIssuer
	credentials  auth.Credentials
	logger       *zap.Logger
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func (h *httpHandler) handleStats(c *gin.Context) {
	ctx := c.Request.Context()

	applications, err := h.membership.Count(ctx)
	if err != nil {
		h.internalError(c, "stats", err)
		return
	}
	registrations, err := h.registration.CountWebinarRegistrations(ctx)
	if err != nil {
		h.internalError(c, "stats", err)
		return
	}
	messages, err := h.contact.Count(ctx)
	if err != nil {
		h.internalError(c, "stats", err)
		return
	}
	contentCounts, err := h.content.Counts(ctx)
	if err != nil {
		h.internalError(c, "stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications":  applications,
		"registrations": gin.H{"total": registrations},
		"messages":      messages,
		"events":        gin.H{"total": contentCounts[content.TableEvents]},
		"webinars":      gin.H{"total": contentCounts[content.TableWebinars]},
		"publications":  gin.H{"total": contentCounts[content.TablePublications]},
		"news":          gin.H{"total": contentCounts[content.TableNews]},
	})
}

type adminLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *httpHandler) handleAdminLogin(c *gin.Context) {
	var request adminLoginPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.credentials.Match(request.Username, request.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token, expiresIn, err := h.tokens.IssueToken(request.Username)
	if err != nil {
		h.internalError(c, "admin login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_in":   expiresIn,
		"token_type":   "Bearer",
	})
}

// pathID parses the :id path segment. The second return is false when the
// segment is not numeric; a response has already been written in that case.
func (h *httpHandler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *httpHandler) internalError(c *gin.Context, operation string, err error) {
	h.logger.Error("request failed", zap.String("operation", operation), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// dash substitutes the em dash placeholder used by notification bodies.
func dash(value string) string {
	if value == "" {
		return "—"
	}
	return value
}

// requestOrigin rebuilds the absolute origin for blob retrieval URLs.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
