package controllers

import (
	"net/http"
	"strconv"
	"time"

	"permit-management-api/config"
	"permit-management-api/services"

	"github.com/gin-gonic/gin"
)

type decisionRequest struct {
	Status          string     `json:"status" binding:"required"`
	Comments        string     `json:"comments"`
	RequiredChanges string     `json:"required_changes"`
	InspectionDate  *time.Time `json:"inspection_date"`
	InspectionNotes string     `json:"inspection_notes"`
}

type startReviewRequest struct {
	Comments string `json:"comments"`
}

type completeStepRequest struct {
	StepName string `json:"step_name" binding:"required"`
}

type flagStepRequest struct {
	StepName string `json:"step_name" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

func applicationIDParam(c *gin.Context) (int, bool) {
	appID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return 0, false
	}
	return appID, true
}

// SubmitDecision applies one reviewer decision to an application: target
// status token, optional comments and an optional inspection booking.
func SubmitDecision(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision status is required"})
		return
	}

	service := services.NewReviewService(config.DB)
	result, err := service.SubmitDecision(userID, services.DecisionInput{
		ApplicationID:   appID,
		TargetStatus:    req.Status,
		Comments:        req.Comments,
		RequiredChanges: req.RequiredChanges,
		InspectionDate:  req.InspectionDate,
		InspectionNotes: req.InspectionNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StartReview moves the application under review and opens the caller's
// review record.
func StartReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req startReviewRequest
	_ = c.ShouldBindJSON(&req)

	service := services.NewReviewService(config.DB)
	review, err := service.StartReview(userID, appID, req.Comments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// CompleteReviewStep marks one checklist step complete for the caller.
func CompleteReviewStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req completeStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Step name is required"})
		return
	}

	service := services.NewReviewService(config.DB)
	step, err := service.CompleteStep(userID, appID, req.StepName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// FlagReviewStep records an exception against a checklist step.
func FlagReviewStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	var req flagStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Step name and reason are required"})
		return
	}

	service := services.NewReviewService(config.DB)
	step, err := service.FlagStep(userID, appID, req.StepName, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, step)
}

// GetReviewProgress reports the caller's checklist position on an
// application.
func GetReviewProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	appID, ok := applicationIDParam(c)
	if !ok {
		return
	}

	service := services.NewReviewService(config.DB)
	progress, err := service.Progress(userID, appID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
