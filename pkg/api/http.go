package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
	"github.com/jakechorley/volunteer-hours/pkg/db"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The record store the endpoints read and write.
	Store db.Database

	// Builds the spreadsheet client for each sync.
	NewWriter services.WorksheetWriterFactory

	Logger *zap.Logger

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the /api endpoints on the router.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}

	r.GET("/health", h.healthHandler)

	r.GET("/volunteers", h.listVolunteersHandler)
	r.GET("/volunteers/:id", h.getVolunteerHandler)
	r.POST("/volunteers", h.createVolunteerHandler)
	r.DELETE("/volunteers/:id", h.deleteVolunteerHandler)
	r.GET("/volunteers/:id/events", h.listVolunteerEventsHandler)

	r.GET("/events", h.listEventsHandler)
	r.POST("/events", h.createEventHandler)

	r.GET("/admin/password", h.getAdminPasswordHandler)
	r.POST("/admin/password", h.setAdminPasswordHandler)

	r.GET("/sheets/config", h.getSheetsConfigHandler)
	r.POST("/sheets/config", h.setSheetsConfigHandler)

	r.GET("/export/csv", h.exportCSVHandler)
	r.POST("/sync/sheets", h.syncSheetsHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// abortWithError writes a JSON error body and records err for the request log
func (s *httpHandler) abortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// abortWithServiceError maps service sentinel errors onto status codes
func (s *httpHandler) abortWithServiceError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		s.abortWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, services.ErrNotFound):
		s.abortWithError(c, http.StatusNotFound, notFoundMessage, err)
	default:
		s.Logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		s.abortWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func invalidBody(err error) string {
	return fmt.Sprintf("Invalid request body: %v", err)
}
