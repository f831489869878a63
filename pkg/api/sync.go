package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

func (s *httpHandler) exportCSVHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "CSV export is available for the following files",
		"files":   []string{"volunteers.csv", "events.csv"},
	})
}

func (s *httpHandler) syncSheetsHandler(c *gin.Context) {
	result, err := services.RunSheetsSync(c, s.Store, s.NewWriter, s.Logger)
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}

	if result.Success {
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"message":         fmt.Sprintf("Synced %d volunteers and %d events to Google Sheets", result.VolunteersCount, result.EventsCount),
			"volunteersCount": result.VolunteersCount,
			"eventsCount":     result.EventsCount,
		})
		return
	}

	switch result.ErrorKind {
	case services.SyncErrorConfig:
		s.abortWithError(c, http.StatusBadRequest, result.Error, nil)
	case services.SyncErrorPermission:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":          PermissionHint(result.ServiceAccount),
			"details":        result.Error,
			"serviceAccount": result.ServiceAccount,
		})
	default:
		s.abortWithError(c, http.StatusInternalServerError, result.Error, nil)
	}
}

// PermissionHint explains how to grant the service account access to the spreadsheet
func PermissionHint(serviceAccount string) string {
	if serviceAccount == "" {
		serviceAccount = "the service account in your credentials"
	}
	return fmt.Sprintf(
		"Permission denied. Share the spreadsheet with %s and give it Editor access, then try again.",
		serviceAccount,
	)
}
