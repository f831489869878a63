package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

func (s *httpHandler) listEventsHandler(c *gin.Context) {
	events, err := services.ListEvents(c, s.Store)
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *httpHandler) listVolunteerEventsHandler(c *gin.Context) {
	events, err := services.ListVolunteerEvents(c, s.Store, c.Param("id"))
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *httpHandler) createEventHandler(c *gin.Context) {
	var request services.EventInput
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, http.StatusBadRequest, invalidBody(err), err)
		return
	}

	event, err := services.CreateEvent(c, s.Store, s.Logger, request)
	if err != nil {
		s.abortWithServiceError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, event)
}
