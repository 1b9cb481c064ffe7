package controllers

import (
	"errors"
	"log"
	"net/http"
	"permit-management-api/services"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user id set by AuthMiddleware.
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int)
	return userID, ok
}

// respondServiceError maps workflow errors to HTTP statuses. Internal errors
// are logged server-side and surfaced as a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, services.ErrNotStaff):
		c.JSON(http.StatusForbidden, gin.H{"error": "Caller has no staff assignment"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, services.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "Inspection already completed"})
	case errors.Is(err, services.ErrActiveInspection):
		c.JSON(http.StatusConflict, gin.H{"error": "Application already has an active inspection"})
	case errors.Is(err, services.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Application was modified concurrently, please retry"})
	case errors.Is(err, services.ErrLocked):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed attempts, try again later"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func ptr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
