package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakechorley/volunteer-hours/pkg/core/services"
)

const volunteerNotFound = "Volunteer not found"

func (s *httpHandler) listVolunteersHandler(c *gin.Context) {
	volunteers, err := services.ListVolunteers(c, s.Store)
	if err != nil {
		s.abortWithServiceError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, volunteers)
}

func (s *httpHandler) getVolunteerHandler(c *gin.Context) {
	volunteer, err := services.GetVolunteer(c, s.Store, c.Param("id"))
	if err != nil {
		s.abortWithServiceError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, volunteer)
}

func (s *httpHandler) createVolunteerHandler(c *gin.Context) {
	var request services.VolunteerInput
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, http.StatusBadRequest, invalidBody(err), err)
		return
	}

	volunteer, err := services.CreateVolunteer(c, s.Store, s.Logger, request)
	if err != nil {
		s.abortWithServiceError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusCreated, volunteer)
}

func (s *httpHandler) deleteVolunteerHandler(c *gin.Context) {
	if err := services.DeleteVolunteer(c, s.Store, s.Logger, c.Param("id")); err != nil {
		s.abortWithServiceError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
