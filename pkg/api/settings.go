package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

type passwordRequest struct {
	Password string `json:"password"`
}

func (s *httpHandler) getAdminPasswordHandler(c *gin.Context) {
	password, err := services.GetAdminPassword(c, s.Store)
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"password": password})
}

func (s *httpHandler) setAdminPasswordHandler(c *gin.Context) {
	var request passwordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, http.StatusBadRequest, "Password is required", err)
		return
	}

	if err := services.SetAdminPassword(c, s.Store, s.Logger, request.Password); err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *httpHandler) getSheetsConfigHandler(c *gin.Context) {
	view, err := services.GetSheetsConfig(c, s.Store)
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *httpHandler) setSheetsConfigHandler(c *gin.Context) {
	var request services.SheetsConfigInput
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, http.StatusBadRequest, "Sheets configuration is required", err)
		return
	}

	if err := services.SetSheetsConfig(c, s.Store, s.Logger, request); err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
