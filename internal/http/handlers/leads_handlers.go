package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/learnsphere/domain"
	"github.com/you/learnsphere/internal/services"
)

// LeadsHandlers exposes the apply and contact form endpoints. On delivery
// failure the caller gets a generic retry message; resubmission is manual.
type LeadsHandlers struct {
	leads *services.LeadsService
}

// NewLeadsHandlers creates new lead-capture handlers.
func NewLeadsHandlers(leads *services.LeadsService) *LeadsHandlers {
	return &LeadsHandlers{leads: leads}
}

// Apply handles course application submissions.
func (h *LeadsHandlers) Apply(c *gin.Context) {
	var sub services.ApplicationSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	if err := h.leads.SubmitApplication(sub); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send application. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Application submitted successfully!"})
}

// Contact handles contact form submissions.
func (h *LeadsHandlers) Contact(c *gin.Context) {
	var sub services.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if err := h.leads.SubmitContact(sub); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send message. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully!"})
}
